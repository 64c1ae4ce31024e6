package cert

import (
	"bytes"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/device"
)

func mustAuthority(t *testing.T) *Authority {
	t.Helper()
	ca, err := GenerateAuthority("Test Manufacturer CA", "Test Corp")
	if err != nil {
		t.Fatalf("GenerateAuthority() error = %v", err)
	}
	return ca
}

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	if kp.PrivateKey.Curve.Params().Name != "P-256" {
		t.Errorf("Expected P-256 curve, got %s", kp.PrivateKey.Curve.Params().Name)
	}

	ski, err := ComputeSKI(kp.PublicKey)
	if err != nil {
		t.Fatalf("ComputeSKI() error = %v", err)
	}
	if len(ski) != 20 {
		t.Errorf("SKI length = %d, want 20", len(ski))
	}
}

func TestGenerateAuthority(t *testing.T) {
	ca := mustAuthority(t)
	if !ca.Certificate.IsCA {
		t.Error("authority certificate should be a CA")
	}
	if ca.Certificate.Subject.CommonName != "Test Manufacturer CA" {
		t.Errorf("CommonName = %q", ca.Certificate.Subject.CommonName)
	}
	if len(ca.Certificate.SubjectKeyId) == 0 {
		t.Error("authority should carry a subject key id")
	}
}

func TestIssueIdentity(t *testing.T) {
	ca := mustAuthority(t)
	kp, _ := GenerateKeyPair()
	id := device.NewID()

	c, err := ca.IssueIdentity(id, kp.PublicKey)
	if err != nil {
		t.Fatalf("IssueIdentity() error = %v", err)
	}
	if c.IsCA {
		t.Error("identity certificate must not be a CA")
	}
	if !bytes.Equal(c.AuthorityKeyId, ca.Certificate.SubjectKeyId) {
		t.Error("AKI should match the authority SKI")
	}

	got, err := DeviceIDFromCert(c)
	if err != nil {
		t.Fatalf("DeviceIDFromCert() error = %v", err)
	}
	if got != id {
		t.Errorf("device id = %s, want %s", got, id)
	}
	if roles := RolesFromCert(c); len(roles) != 0 {
		t.Errorf("identity certificate carries roles %v", roles)
	}
}

func TestIssueRole(t *testing.T) {
	ca := mustAuthority(t)
	kp, _ := GenerateKeyPair()

	var chain acl.RoleChain
	chain.Add("admin", "org1")
	chain.Add("ops:night", "")

	c, err := ca.IssueRole(device.NewID(), kp.PublicKey, chain)
	if err != nil {
		t.Fatalf("IssueRole() error = %v", err)
	}

	roles := RolesFromCert(c)
	if len(roles) != 2 {
		t.Fatalf("RolesFromCert() = %v, want 2 roles", roles)
	}
	if roles[0] != (acl.Role{Name: "admin", Authority: "org1"}) {
		t.Errorf("roles[0] = %+v", roles[0])
	}
	if roles[1] != (acl.Role{Name: "ops:night"}) {
		t.Errorf("roles[1] = %+v", roles[1])
	}

	if _, err := ca.IssueRole(device.NewID(), kp.PublicKey, nil); !errors.Is(err, acl.ErrEmptyRoleChain) {
		t.Errorf("empty chain error = %v, want ErrEmptyRoleChain", err)
	}
}

func TestParseTrustAnchor(t *testing.T) {
	a := mustAuthority(t)
	b := mustAuthority(t)

	t.Run("DER", func(t *testing.T) {
		got, err := ParseTrustAnchor(a.Certificate.Raw)
		if err != nil {
			t.Fatalf("ParseTrustAnchor() error = %v", err)
		}
		if len(got) != 1 || !bytes.Equal(got[0], a.Certificate.Raw) {
			t.Error("DER input should round trip")
		}
	})

	t.Run("MultiplePEM", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString("\n")
		buf.Write(EncodeCertPEM(a.Certificate))
		buf.Write(pem.EncodeToMemory(&pem.Block{Type: "COMMENT", Bytes: []byte("x")}))
		buf.Write(EncodeCertPEM(b.Certificate))

		got, err := ParseTrustAnchor(buf.Bytes())
		if err != nil {
			t.Fatalf("ParseTrustAnchor() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d certificates, want 2", len(got))
		}
		if !bytes.Equal(got[1], b.Certificate.Raw) {
			t.Error("certificates should keep input order")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := ParseTrustAnchor([]byte("  \n")); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("blank input error = %v", err)
		}
		if _, err := ParseTrustAnchor([]byte("not a certificate")); !errors.Is(err, ErrInvalidCert) {
			t.Errorf("garbage error = %v", err)
		}
		key := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{1}})
		if _, err := ParseTrustAnchor(key); !errors.Is(err, ErrInvalidPEM) {
			t.Errorf("key-only PEM error = %v", err)
		}
	})
}

func TestKeyPEMRoundTrip(t *testing.T) {
	kp, _ := GenerateKeyPair()
	data, err := EncodeKeyPEM(kp.PrivateKey)
	if err != nil {
		t.Fatalf("EncodeKeyPEM() error = %v", err)
	}
	key, err := DecodeKeyPEM(data)
	if err != nil {
		t.Fatalf("DecodeKeyPEM() error = %v", err)
	}
	if !key.Equal(kp.PrivateKey) {
		t.Error("decoded key differs")
	}
	if _, err := DecodeKeyPEM(EncodeCertPEM(mustAuthority(t).Certificate)); !errors.Is(err, ErrInvalidPEM) {
		t.Errorf("certificate block error = %v", err)
	}
}
