package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/device"
)

// Certificate validity periods.
const (
	// AuthorityValidity is the validity of a locally generated authority.
	AuthorityValidity = 20 * 365 * 24 * time.Hour

	// IdentityValidity is the validity of identity and role certificates.
	IdentityValidity = 365 * 24 * time.Hour

	// clockSkew backdates NotBefore so freshly issued certificates verify
	// on peers whose clocks run slightly behind.
	clockSkew = 5 * time.Minute
)

// Subject common name prefix carrying the device UUID.
const uuidPrefix = "uuid:"

// Role URIs look like urn:oic:role:<authority>:<role>.
const roleURIPrefix = "oic:role:"

// KeyPair holds an ECDSA P-256 key pair.
type KeyPair struct {
	PrivateKey *ecdsa.PrivateKey
	PublicKey  *ecdsa.PublicKey
}

// GenerateKeyPair creates a new P-256 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeyPair{PrivateKey: key, PublicKey: &key.PublicKey}, nil
}

// ComputeSKI returns the SHA-1 subject key identifier of a public key.
func ComputeSKI(pub *ecdsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, err
	}
	sum := sha1.Sum(der)
	return sum[:], nil
}

// Authority is a certificate authority with its signing key.
type Authority struct {
	Certificate *x509.Certificate
	PrivateKey  *ecdsa.PrivateKey
}

// GenerateAuthority creates a self-signed authority.
func GenerateAuthority(commonName, organization string) (*Authority, error) {
	kp, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	ski, err := ComputeSKI(kp.PublicKey)
	if err != nil {
		return nil, err
	}
	serial, err := randomSerial()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName, Organization: nonEmpty(organization)},
		NotBefore:             now.Add(-clockSkew),
		NotAfter:              now.Add(AuthorityValidity),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
		SubjectKeyId:          ski,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, kp.PublicKey, kp.PrivateKey)
	if err != nil {
		return nil, err
	}
	c, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	return &Authority{Certificate: c, PrivateKey: kp.PrivateKey}, nil
}

// IssueIdentity issues an identity certificate binding pub to a device id.
func (a *Authority) IssueIdentity(id device.ID, pub *ecdsa.PublicKey) (*x509.Certificate, error) {
	return a.issue(id, pub, nil)
}

// IssueRole issues a role certificate for a device. The chain must not be
// empty.
func (a *Authority) IssueRole(id device.ID, pub *ecdsa.PublicKey, roles acl.RoleChain) (*x509.Certificate, error) {
	if err := roles.Validate(); err != nil {
		return nil, err
	}
	uris := make([]*url.URL, 0, len(roles))
	for _, r := range roles {
		uris = append(uris, roleURI(r))
	}
	return a.issue(id, pub, uris)
}

func (a *Authority) issue(id device.ID, pub *ecdsa.PublicKey, uris []*url.URL) (*x509.Certificate, error) {
	if a == nil || a.Certificate == nil || a.PrivateKey == nil {
		return nil, fmt.Errorf("%w: no authority", ErrInvalidCert)
	}
	ski, err := ComputeSKI(pub)
	if err != nil {
		return nil, err
	}
	serial, err := randomSerial()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:   serial,
		Subject:        pkix.Name{CommonName: uuidPrefix + id.String()},
		NotBefore:      now.Add(-clockSkew),
		NotAfter:       now.Add(IdentityValidity),
		KeyUsage:       x509.KeyUsageDigitalSignature | x509.KeyUsageKeyAgreement,
		ExtKeyUsage:    []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		SubjectKeyId:   ski,
		AuthorityKeyId: a.Certificate.SubjectKeyId,
		URIs:           uris,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, a.Certificate, pub, a.PrivateKey)
	if err != nil {
		return nil, err
	}
	return x509.ParseCertificate(der)
}

func roleURI(r acl.Role) *url.URL {
	return &url.URL{
		Scheme: "urn",
		Opaque: roleURIPrefix + url.QueryEscape(r.Authority) + ":" + url.QueryEscape(r.Name),
	}
}

// RolesFromCert returns the roles asserted by a role certificate.
func RolesFromCert(c *x509.Certificate) acl.RoleChain {
	if c == nil {
		return nil
	}
	var roles acl.RoleChain
	for _, u := range c.URIs {
		if u.Scheme != "urn" || !strings.HasPrefix(u.Opaque, roleURIPrefix) {
			continue
		}
		authority, name, ok := strings.Cut(strings.TrimPrefix(u.Opaque, roleURIPrefix), ":")
		if !ok {
			continue
		}
		authority, _ = url.QueryUnescape(authority)
		name, _ = url.QueryUnescape(name)
		roles = append(roles, acl.Role{Name: name, Authority: authority})
	}
	return roles
}

func randomSerial() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	return rand.Int(rand.Reader, limit)
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
