package discovery

import (
	"errors"

	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Discovery errors.
var (
	ErrInvalidConfig       = errors.New("invalid discovery configuration")
	ErrNoResourceDiscovery = errors.New("resource discovery not available")
)

func rejectionCode(err error) int {
	var rej *sdk.Rejection
	if errors.As(err, &rej) {
		return rej.Code
	}
	return sdk.CodeError
}
