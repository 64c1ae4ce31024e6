package simulator

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/secure-iot/obt-go/pkg/device"
)

// PIN parameters.
const (
	PINLength = 8
	pinMax    = 99999999
)

// HKDF info labels.
const (
	infoJustWorks = "oic.sec.doxm.jw"
	infoRandomPIN = "oic.sec.doxm.rdp"
	infoCert      = "oic.sec.doxm.mfgcert"
	infoPairwise  = "oic.sec.cred.pairwise"
)

// pskLength is the length of derived symmetric keys.
const pskLength = 16

// GeneratePIN returns a random PIN of PINLength digits.
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinMax+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate random PIN: %w", err)
	}
	return fmt.Sprintf("%0*d", PINLength, n.Uint64()), nil
}

// deriveKey derives a symmetric key shared by two parties from secret.
func deriveKey(secret []byte, a, b device.ID, info string) ([]byte, error) {
	salt := make([]byte, 0, 32)
	salt = append(salt, a[:]...)
	salt = append(salt, b[:]...)

	key := make([]byte, pskLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, []byte(info)), key); err != nil {
		return nil, err
	}
	return key, nil
}

// randomSecret stands in for the key agreement output of an OTM handshake.
func randomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
