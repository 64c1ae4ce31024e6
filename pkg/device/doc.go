// Package device holds device descriptors and the Registry that tracks which
// discovered devices are unowned and which are owned by this tool.
//
// # Ownership
//
// Ownership is implicit in collection membership. A device ID is present in at
// most one of the two collections at any time:
//
//   - An owned observation always wins. Observing an owned device that is
//     currently listed as unowned moves it to the owned collection.
//   - An unowned observation of an owned device is ignored.
//
// Both rules are idempotent, so replaying observations in any order converges
// to the same state.
//
// # Transfers
//
// BeginTransfer reserves an unowned device without moving it, so a request
// the SDK refuses leaves selection order untouched. CommitTransfer takes it
// out of the unowned collection once the request is issued. The transfer
// resolves with MoveToOwned or AbortTransfer. Unowned observations of an
// in-flight device are ignored so it is not offered for a second transfer.
//
// # Snapshots
//
// List methods return copies in first-observation order. Callers may iterate
// or index them while other goroutines mutate the registry.
package device
