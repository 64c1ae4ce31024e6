// Package simulator implements the provisioning SDK over a fleet of
// simulated devices.
//
// The fleet is described in YAML. Every request is answered on its own
// goroutine after a configurable latency, so completions arrive
// concurrently and out of order just as they do from a real network.
// Discovery responses can be re-broadcast and completions duplicated to
// exercise deduplication in the core.
//
// Devices keep their ownership state, credential resource and ACL (stored
// in its CBOR wire form). The tool's own credentials and trust anchors live
// in a cert.Store, optionally persisted to the credential directory.
package simulator
