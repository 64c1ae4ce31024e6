package cert

import (
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/secure-iot/obt-go/pkg/device"
)

// Verification errors.
var (
	ErrCertExpired     = errors.New("certificate has expired")
	ErrCertNotYetValid = errors.New("certificate is not yet valid")
	ErrInvalidChain    = errors.New("invalid certificate chain")
	ErrNoTrustAnchor   = errors.New("no trust anchor installed")
	ErrNoDeviceID      = errors.New("certificate carries no device id")
)

// Verify checks that c is currently valid and chains to one of anchors.
func Verify(c *x509.Certificate, anchors []*x509.Certificate) error {
	return VerifyAt(c, anchors, time.Now())
}

// VerifyAt is Verify evaluated at the given time.
func VerifyAt(c *x509.Certificate, anchors []*x509.Certificate, now time.Time) error {
	if c == nil {
		return ErrInvalidCert
	}
	if len(anchors) == 0 {
		return ErrNoTrustAnchor
	}
	if now.Before(c.NotBefore) {
		return ErrCertNotYetValid
	}
	if now.After(c.NotAfter) {
		return ErrCertExpired
	}

	roots := x509.NewCertPool()
	for _, a := range anchors {
		roots.AddCert(a)
	}
	opts := x509.VerifyOptions{
		Roots:       roots,
		CurrentTime: now,
		KeyUsages:   []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	}
	if _, err := c.Verify(opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChain, err)
	}
	return nil
}

// DeviceIDFromCert extracts the device UUID from the subject common name.
func DeviceIDFromCert(c *x509.Certificate) (device.ID, error) {
	if c == nil {
		return device.Nil, ErrInvalidCert
	}
	cn, ok := strings.CutPrefix(c.Subject.CommonName, uuidPrefix)
	if !ok {
		return device.Nil, fmt.Errorf("%w: CN %q", ErrNoDeviceID, c.Subject.CommonName)
	}
	id, err := device.ParseID(cn)
	if err != nil {
		return device.Nil, fmt.Errorf("%w: %v", ErrNoDeviceID, err)
	}
	return id, nil
}

// Info is a human-readable summary of a certificate.
type Info struct {
	CommonName string
	Issuer     string
	NotBefore  time.Time
	NotAfter   time.Time
	IsCA       bool
	SKI        []byte
	AKI        []byte
}

// Describe summarizes a certificate.
func Describe(c *x509.Certificate) *Info {
	if c == nil {
		return nil
	}
	return &Info{
		CommonName: c.Subject.CommonName,
		Issuer:     c.Issuer.CommonName,
		NotBefore:  c.NotBefore,
		NotAfter:   c.NotAfter,
		IsCA:       c.IsCA,
		SKI:        c.SubjectKeyId,
		AKI:        c.AuthorityKeyId,
	}
}
