package provision

import "errors"

// Provisioning errors.
var (
	ErrNotOwned      = errors.New("device is not owned")
	ErrSameDevice    = errors.New("pairwise credentials need two distinct devices")
	ErrInvalidConfig = errors.New("invalid provisioning configuration")
	ErrNilACE        = errors.New("no ACE")
)
