package cert

import (
	"crypto/x509"
	"errors"
	"testing"
	"time"

	"github.com/secure-iot/obt-go/pkg/device"
)

func TestVerify(t *testing.T) {
	mfg := mustAuthority(t)
	other := mustAuthority(t)
	kp, _ := GenerateKeyPair()

	leaf, err := mfg.IssueIdentity(device.NewID(), kp.PublicKey)
	if err != nil {
		t.Fatalf("IssueIdentity() error = %v", err)
	}

	if err := Verify(leaf, []*x509.Certificate{other.Certificate, mfg.Certificate}); err != nil {
		t.Errorf("Verify() against issuing anchor error = %v", err)
	}
	if err := Verify(leaf, []*x509.Certificate{other.Certificate}); !errors.Is(err, ErrInvalidChain) {
		t.Errorf("Verify() against foreign anchor error = %v, want ErrInvalidChain", err)
	}
	if err := Verify(leaf, nil); !errors.Is(err, ErrNoTrustAnchor) {
		t.Errorf("Verify() without anchors error = %v, want ErrNoTrustAnchor", err)
	}
	if err := Verify(nil, []*x509.Certificate{mfg.Certificate}); !errors.Is(err, ErrInvalidCert) {
		t.Errorf("Verify(nil) error = %v", err)
	}

	anchors := []*x509.Certificate{mfg.Certificate}
	if err := VerifyAt(leaf, anchors, leaf.NotAfter.Add(time.Hour)); !errors.Is(err, ErrCertExpired) {
		t.Errorf("expired error = %v", err)
	}
	if err := VerifyAt(leaf, anchors, leaf.NotBefore.Add(-time.Hour)); !errors.Is(err, ErrCertNotYetValid) {
		t.Errorf("not-yet-valid error = %v", err)
	}
}

func TestDeviceIDFromCert(t *testing.T) {
	ca := mustAuthority(t)
	if _, err := DeviceIDFromCert(ca.Certificate); !errors.Is(err, ErrNoDeviceID) {
		t.Errorf("CA certificate error = %v, want ErrNoDeviceID", err)
	}
	if _, err := DeviceIDFromCert(nil); !errors.Is(err, ErrInvalidCert) {
		t.Errorf("nil error = %v", err)
	}

	info := Describe(ca.Certificate)
	if !info.IsCA || info.CommonName != info.Issuer {
		t.Errorf("Describe() = %+v", info)
	}
}
