package sdk

import (
	"errors"

	"github.com/secure-iot/obt-go/pkg/result"
)

// Outcome classifies an error by where it was detected.
type Outcome uint8

const (
	// OutcomeOK means no error.
	OutcomeOK Outcome = iota

	// OutcomeLocal means the request was never built: invalid selection,
	// malformed ACE, unknown device.
	OutcomeLocal

	// OutcomeRejected means the SDK declined to send the request.
	OutcomeRejected

	// OutcomeFailed means the request was sent and failed asynchronously.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeLocal:
		return "local"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Classify returns the outcome class of err.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrRejected):
		return OutcomeRejected
	case errors.Is(err, result.ErrFailed):
		return OutcomeFailed
	default:
		return OutcomeLocal
	}
}

// IsLocal reports whether err is a local validation error.
func IsLocal(err error) bool {
	return Classify(err) == OutcomeLocal
}
