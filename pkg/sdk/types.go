package sdk

import (
	"errors"
	"fmt"

	"github.com/secure-iot/obt-go/pkg/device"
)

// SDK errors.
var (
	// ErrRejected matches every *Rejection with errors.Is.
	ErrRejected = errors.New("request not issued")

	// ErrClosed is returned by methods of a closed SDK.
	ErrClosed = errors.New("sdk closed")
)

// Rejection codes.
const (
	CodeError        = -1
	CodeNoInterface  = -2
	CodeUnknownPeer  = -3
	CodeBusy         = -4
	CodeInvalidInput = -5
	CodeClosed       = -6
)

// Handle identifies an accepted request. Valid handles are non-negative.
type Handle int

// Rejection reports that the SDK declined to issue a request.
type Rejection struct {
	Op   string
	Code int
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: request not issued (code %d)", r.Op, r.Code)
}

// Is reports whether target is ErrRejected, or ErrClosed for CodeClosed.
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected || (target == ErrClosed && r.Code == CodeClosed)
}

// Reject returns a *Rejection for op. Non-negative codes are mapped to
// CodeError.
func Reject(op string, code int) error {
	if code >= 0 {
		code = CodeError
	}
	return &Rejection{Op: op, Code: code}
}

// HandleOrError converts the legacy "handle or negative code" convention.
func HandleOrError(op string, ret int) (Handle, error) {
	if ret < 0 {
		return -1, &Rejection{Op: op, Code: ret}
	}
	return Handle(ret), nil
}

// Scope is the multicast scope of a discovery request.
type Scope uint8

const (
	// ScopeGeneral is the link-local scope (IPv6 ff02::158 and IPv4).
	ScopeGeneral Scope = iota

	// ScopeRealmLocal is the realm-local scope (IPv6 ff03::158).
	ScopeRealmLocal

	// ScopeSiteLocal is the site-local scope (IPv6 ff05::158).
	ScopeSiteLocal
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeGeneral:
		return "general"
	case ScopeRealmLocal:
		return "realm-local"
	case ScopeSiteLocal:
		return "site-local"
	default:
		return "unknown"
	}
}

// ParseScope parses a scope name.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "general", "link-local", "":
		return ScopeGeneral, nil
	case "realm-local", "realm":
		return ScopeRealmLocal, nil
	case "site-local", "site":
		return ScopeSiteLocal, nil
	default:
		return ScopeGeneral, fmt.Errorf("unknown discovery scope %q", s)
	}
}

// OTMMethod is an ownership transfer method.
type OTMMethod uint8

const (
	OTMJustWorks OTMMethod = iota
	OTMRandomPIN
	OTMCertificate
)

// String returns the method name.
func (m OTMMethod) String() string {
	switch m {
	case OTMJustWorks:
		return "just-works"
	case OTMRandomPIN:
		return "random-pin"
	case OTMCertificate:
		return "certificate"
	default:
		return "unknown"
	}
}

// TrustAnchorKind selects the trust store a certificate is installed into.
type TrustAnchorKind uint8

const (
	// AnchorManufacturer validates device manufacturer certificates during
	// certificate-based ownership transfer.
	AnchorManufacturer TrustAnchorKind = iota

	// AnchorRoot validates identity and role certificates.
	AnchorRoot
)

// String returns the kind name.
func (k TrustAnchorKind) String() string {
	if k == AnchorRoot {
		return "root"
	}
	return "manufacturer"
}

// Resource is one resource reported by resource discovery.
type Resource struct {
	Href       string
	Types      []string
	Interfaces []string
	Endpoints  []device.Endpoint
}

// ObserveHandler receives one device per discovery response.
type ObserveHandler func(device.Descriptor)

// ResourceHandler receives one resource per resource discovery response.
type ResourceHandler func(device.ID, Resource)
