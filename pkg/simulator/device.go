package simulator

import (
	"crypto/x509"
	"slices"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cert"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// simDevice is the state of one simulated device. Guarded by Simulator.mu.
type simDevice struct {
	desc      device.Descriptor
	scope     sdk.Scope
	offline   bool
	fail      map[string]bool
	reject    map[string]bool
	resources []sdk.Resource

	key     *cert.KeyPair
	mfgCert *x509.Certificate

	owner device.ID
	psk   []byte
	pin   string

	creds    []cred.Credential
	nextCred int

	// acl holds the CBOR encoding of the device's ACL resource.
	acl     []byte
	nextACE int
}

func newSimDevice(spec DeviceSpec, scope sdk.Scope) *simDevice {
	d := &simDevice{
		desc: device.Descriptor{
			ID:        spec.ID,
			Name:      spec.Name,
			Endpoints: slices.Clone(spec.Endpoints),
		},
		scope:    scope,
		offline:  spec.Offline,
		fail:     toSet(spec.Fail),
		reject:   toSet(spec.Reject),
		nextCred: 1,
		nextACE:  1,
	}
	for _, r := range spec.Resources {
		d.resources = append(d.resources, sdk.Resource{
			Href:       r.Href,
			Types:      slices.Clone(r.Types),
			Interfaces: slices.Clone(r.Interfaces),
			Endpoints:  slices.Clone(spec.Endpoints),
		})
	}
	return d
}

func toSet(ops []string) map[string]bool {
	m := make(map[string]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// reachable reports whether a discovery request with scope s reaches d.
func (d *simDevice) reachable(s sdk.Scope) bool {
	return !d.offline && s >= d.scope
}

func (d *simDevice) addCred(c cred.Credential) int {
	c.ID = d.nextCred
	d.nextCred++
	d.creds = append(d.creds, c)
	return c.ID
}

func (d *simDevice) deleteCred(id int) bool {
	i := slices.IndexFunc(d.creds, func(c cred.Credential) bool { return c.ID == id })
	if i < 0 {
		return false
	}
	d.creds = slices.Delete(d.creds, i, i+1)
	return true
}

func (d *simDevice) hasCred(match func(cred.Credential) bool) bool {
	return slices.IndexFunc(d.creds, match) >= 0
}

func (d *simDevice) loadACL() (*acl.ACL, error) {
	if len(d.acl) == 0 {
		return &acl.ACL{ResourceOwner: d.owner}, nil
	}
	return acl.DecodeACL(d.acl)
}

func (d *simDevice) storeACL(list *acl.ACL) error {
	data, err := acl.EncodeACL(list)
	if err != nil {
		return err
	}
	d.acl = data
	return nil
}

// factoryReset returns the device to its manufacturer-default state.
func (d *simDevice) factoryReset() {
	d.owner = device.Nil
	d.psk = nil
	d.pin = ""
	d.creds = nil
	d.nextCred = 1
	d.acl = nil
	d.nextACE = 1
}
