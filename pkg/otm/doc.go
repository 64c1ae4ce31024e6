// Package otm drives ownership transfer of unowned devices.
//
// Each transfer follows
//
//	Discovered -> TransferRequested -> Owned | TransferFailed
//
// The device leaves the unowned collection when the request is issued, so it
// is not offered for a second transfer while the first is in flight. On
// success the orchestrator moves it into the owned collection. On failure the
// FailurePolicy decides: LeaveRemoved (default) forgets the device until it
// is rediscovered; RollbackOnFailure puts it back into the unowned collection.
// A request the SDK refuses to issue always puts the device back.
//
// Three methods are supported: Just-Works, Random-PIN (RequestRandomPIN
// then RandomPIN with the PIN the device displays) and certificate-based
// transfer, which relies on a manufacturer trust anchor installed earlier.
package otm
