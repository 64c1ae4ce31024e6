// Package cred describes credentials as returned by credential retrieval.
//
// Credentials are read-only. Pairwise credentials are created by the SDK on
// request and identity credentials come from certificate provisioning; this
// package only models what a device or the tool reports back.
package cred

import (
	"fmt"
	"io"
	"strings"

	"github.com/secure-iot/obt-go/pkg/device"
)

// Type is the credential type bitmask.
type Type uint8

const (
	TypeNone Type = 0
	TypePSK  Type = 1
	TypeCert Type = 8
)

// String returns the display name of the credential type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "Empty credential used for testing"
	case TypePSK:
		return "Symmetric pair-wise key"
	case TypeCert:
		return "Asymmetric signing key with certificate"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Usage is the intended use of a certificate credential.
type Usage uint8

const (
	UsageNone Usage = iota
	UsageTrustCA
	UsageCert
	UsageRoleCert
	UsageMfgTrustCA
	UsageMfgCert
)

var usageNames = map[Usage]string{
	UsageNone:       "None",
	UsageTrustCA:    "oic.sec.cred.trustca",
	UsageCert:       "oic.sec.cred.cert",
	UsageRoleCert:   "oic.sec.cred.rolecert",
	UsageMfgTrustCA: "oic.sec.cred.mfgtrustca",
	UsageMfgCert:    "oic.sec.cred.mfgcert",
}

// String returns the resource name of the usage.
func (u Usage) String() string {
	if s, ok := usageNames[u]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", uint8(u))
}

// ParseUsage parses a usage resource name.
func ParseUsage(s string) (Usage, bool) {
	for u, name := range usageNames {
		if name == s {
			return u, true
		}
	}
	return UsageNone, false
}

// Encoding is the encoding of credential key material.
type Encoding uint8

const (
	EncodingUnknown Encoding = iota
	EncodingBase64
	EncodingRaw
	EncodingPEM
	EncodingDER
)

// String returns the resource name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingBase64:
		return "oic.sec.encoding.base64"
	case EncodingRaw:
		return "oic.sec.encoding.raw"
	case EncodingPEM:
		return "oic.sec.encoding.pem"
	case EncodingDER:
		return "oic.sec.encoding.der"
	default:
		return "Unknown"
	}
}

// Credential is one entry of a credential resource.
type Credential struct {
	ID      int
	Subject device.ID
	Type    Type
	Usage   Usage

	// PublicEncoding is EncodingUnknown when the credential carries no
	// public data.
	PublicEncoding  Encoding
	PrivateEncoding Encoding

	Role      string
	Authority string
}

// HasPublicData reports whether the credential carries public key material.
func (c Credential) HasPublicData() bool {
	return c.PublicEncoding != EncodingUnknown
}

// Display writes the credential in the tool's listing format.
func (c Credential) Display(w io.Writer) {
	var b strings.Builder
	fmt.Fprintf(&b, "credid: %d\n", c.ID)
	fmt.Fprintf(&b, "subjectuuid: %s\n", c.Subject)
	fmt.Fprintf(&b, "credtype: %s\n", c.Type)
	fmt.Fprintf(&b, "credusage: %s\n", c.Usage)
	if c.HasPublicData() {
		fmt.Fprintf(&b, "publicdata_encoding: %s\n", c.PublicEncoding)
	}
	fmt.Fprintf(&b, "privatedata_encoding: %s\n", c.PrivateEncoding)
	if c.Role != "" {
		fmt.Fprintf(&b, "roleid_role: %s\n", c.Role)
	}
	if c.Authority != "" {
		fmt.Fprintf(&b, "roleid_authority: %s\n", c.Authority)
	}
	io.WriteString(w, b.String())
}

// Find returns the credential with the given ID.
func Find(creds []Credential, id int) (Credential, bool) {
	for _, c := range creds {
		if c.ID == id {
			return c, true
		}
	}
	return Credential{}, false
}
