// Package sdk defines the boundary to the provisioning SDK.
//
// The SDK owns the wire protocol, the cryptography of ownership transfer and
// certificate handling, and credential storage. Every request-issuing method
// returns immediately: a non-negative Handle when the request was sent, or a
// *Rejection when it was not. An accepted request completes later by calling
// its handler exactly once on an SDK goroutine. Discovery and resource
// discovery stream any number of results instead.
//
// Implementations live in pkg/simulator (in-process fleet) and pkg/dnssd
// (DNS-SD discovery); pkg/sdk/mocks holds a generated mock.
package sdk
