package otm

import (
	"errors"
	"fmt"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// MaxPINLength is the maximum length of a random PIN.
const MaxPINLength = 24

// Operation names used in the journal.
const (
	OpJustWorks  = "otm.just-works"
	OpPINRequest = "otm.pin-request"
	OpRandomPIN  = "otm.random-pin"
	OpCert       = "otm.cert"
)

// OTM errors.
var (
	ErrNotUnowned    = errors.New("device is not unowned")
	ErrEmptyPIN      = errors.New("PIN is empty")
	ErrInvalidConfig = errors.New("invalid OTM configuration")
)

// TruncatePIN shortens pin to MaxPINLength characters.
func TruncatePIN(pin string) string {
	return acl.Truncate(pin, MaxPINLength)
}

// FailurePolicy decides what happens to a device whose transfer failed.
type FailurePolicy uint8

const (
	// LeaveRemoved keeps the device out of the registry until it is
	// rediscovered.
	LeaveRemoved FailurePolicy = iota

	// RollbackOnFailure restores the device to the unowned collection.
	RollbackOnFailure
)

// String returns the policy name.
func (p FailurePolicy) String() string {
	switch p {
	case LeaveRemoved:
		return "leave-removed"
	case RollbackOnFailure:
		return "rollback"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy parses a policy name.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "leave-removed":
		return LeaveRemoved, nil
	case "rollback", "rollback-on-failure":
		return RollbackOnFailure, nil
	default:
		return LeaveRemoved, fmt.Errorf("%w: unknown failure policy %q", ErrInvalidConfig, s)
	}
}

// State is the ownership transfer state of a device.
type State uint8

const (
	StateDiscovered State = iota
	StatePINRequested
	StateTransferRequested
	StateOwned
	StateTransferFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDiscovered:
		return "DISCOVERED"
	case StatePINRequested:
		return "PIN_REQUESTED"
	case StateTransferRequested:
		return "TRANSFER_REQUESTED"
	case StateOwned:
		return "OWNED"
	case StateTransferFailed:
		return "TRANSFER_FAILED"
	default:
		return "UNKNOWN"
	}
}

// StateChange is reported to OnStateChange handlers.
type StateChange struct {
	Device device.ID
	Method sdk.OTMMethod
	From   State
	To     State

	// Err is set when To is StateTransferFailed.
	Err error
}

// Transfer is an issued ownership transfer.
//
// The embedded Pending resolves after the registry reflects the outcome.
type Transfer struct {
	*result.Pending[sdk.Done]

	Method sdk.OTMMethod
	Device device.Descriptor
	Handle sdk.Handle

	op string
}

// Transferrer is the part of the SDK that performs ownership transfer.
type Transferrer interface {
	PerformJustWorksOTM(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
	RequestRandomPIN(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
	PerformRandomPinOTM(id device.ID, pin string, h result.Handler[sdk.Done]) (sdk.Handle, error)
	PerformCertOTM(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
}
