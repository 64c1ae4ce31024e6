package cert

import (
	"crypto/x509"
	"errors"

	"github.com/secure-iot/obt-go/pkg/cred"
)

// Store errors.
var (
	ErrCertNotFound   = errors.New("credential not found")
	ErrInvalidCert    = errors.New("invalid certificate")
	ErrNotTrustAnchor = errors.New("usage is not a trust anchor usage")
)

// Store holds credentials and their certificate material.
// Implementations must be safe for concurrent access.
//
// Credential ids are assigned by the store, start at 1 and are never reused
// until Reset.
type Store interface {
	// AddTrustAnchor installs a DER certificate as a trust anchor with the
	// given usage (UsageTrustCA or UsageMfgTrustCA).
	AddTrustAnchor(usage cred.Usage, der []byte) (int, error)

	// TrustAnchors returns the installed anchors with the given usage.
	TrustAnchors(usage cred.Usage) []*x509.Certificate

	// AddCredential stores a credential. der is optional certificate
	// material. The credential's ID is replaced by the assigned id.
	AddCredential(c cred.Credential, der []byte) (int, error)

	// Credentials returns all credentials ordered by id.
	Credentials() []cred.Credential

	// Certificate returns the certificate stored with a credential.
	Certificate(id int) (*x509.Certificate, error)

	// Delete removes a credential.
	// Returns ErrCertNotFound if no credential has the id.
	Delete(id int) error

	// Reset removes every credential.
	Reset()

	// Save persists the store to its backing storage.
	// For in-memory stores, this may be a no-op.
	Save() error

	// Load reads the store from its backing storage.
	// For in-memory stores, this may be a no-op.
	Load() error
}

// IsTrustAnchorUsage reports whether u marks a trust anchor.
func IsTrustAnchorUsage(u cred.Usage) bool {
	return u == cred.UsageTrustCA || u == cred.UsageMfgTrustCA
}
