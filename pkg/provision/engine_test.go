package provision

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cert"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
	"github.com/secure-iot/obt-go/pkg/sdk/mocks"
)

func newEngine(t *testing.T) (*Engine, *mocks.MockProvisioner, *device.Registry) {
	t.Helper()
	m := mocks.NewMockProvisioner(t)
	reg := device.NewRegistry()
	e, err := New(Config{SDK: m, Registry: reg})
	require.NoError(t, err)
	return e, m, reg
}

func owned(reg *device.Registry, name string) device.ID {
	d := device.Descriptor{ID: device.NewID(), Name: name}
	reg.ObserveOwned(d)
	return d.ID
}

func await[T any](t *testing.T, p *result.Pending[T]) result.Result[T] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r, err := p.Wait(ctx)
	require.NoError(t, err)
	return r
}

func complete[T any](v T) func(result.Handler[T]) {
	return func(h result.Handler[T]) { go h(result.OK(v)) }
}

func TestRoleACEForwardedExactly(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "light")

	ace := acl.NewACE(acl.RoleSubject("admin", "org1"))
	require.NoError(t, ace.AddResource(acl.HrefResource("/a/light")))
	ace.SetPermissions(acl.PermRetrieve | acl.PermUpdate)

	var sent *acl.ACE
	m.EXPECT().ProvisionACE(id, mock.Anything, mock.Anything).
		Run(func(_ device.ID, a *acl.ACE, h result.Handler[struct{}]) {
			sent = a
			go h(result.OK(sdk.Done{}))
		}).
		Return(sdk.Handle(7), nil)

	req, err := e.SubmitACE(id, ace)
	require.NoError(t, err)
	assert.Equal(t, sdk.Handle(7), req.Handle)
	require.NoError(t, await(t, req.Pending).Err)

	require.NotNil(t, sent)
	assert.Equal(t, acl.SubjectRole, sent.Subject.Kind)
	assert.Equal(t, acl.Role{Name: "admin", Authority: "org1"}, sent.Subject.Role)
	assert.Equal(t, []acl.ResourceMatch{{Href: "/a/light"}}, sent.Resources)
	assert.Equal(t, acl.PermRetrieve|acl.PermUpdate, sent.Permissions)

	// The caller's ACE and the sent copy are independent.
	ace.SetPermissions(acl.PermDelete)
	assert.Equal(t, acl.PermRetrieve|acl.PermUpdate, sent.Permissions)
}

func TestInvalidACENeverSent(t *testing.T) {
	e, _, reg := newEngine(t)
	id := owned(reg, "light")

	subjects := []acl.Subject{
		acl.ConnectionSubject(acl.ConnAnonClear),
		acl.ConnectionSubject(acl.ConnAuthCrypt),
		acl.DeviceSubject(device.NewID()),
		acl.RoleSubject("admin", ""),
	}
	for _, s := range subjects {
		ace := acl.NewACE(s)
		ace.SetPermissions(acl.PermAll)
		_, err := e.SubmitACE(id, ace)
		assert.ErrorIs(t, err, acl.ErrNoResources, s.String())
		assert.True(t, sdk.IsLocal(err))
	}

	ace := acl.NewACE(acl.ConnectionSubject(acl.ConnAuthCrypt))
	require.NoError(t, ace.AddResource(acl.WildcardResource(acl.WildcardAll)))
	_, err := e.SubmitACE(id, ace)
	assert.ErrorIs(t, err, acl.ErrNoPermissions)

	_, err = e.SubmitACE(id, nil)
	assert.ErrorIs(t, err, ErrNilACE)
	// The mock fails the test on any unexpected SDK call.
}

func TestOwnedDevicesOnly(t *testing.T) {
	e, _, reg := newEngine(t)
	unowned := device.Descriptor{ID: device.NewID()}
	reg.ObserveUnowned(unowned)
	a := owned(reg, "a")

	ace := acl.AuthCryptWildcardACE(acl.PermRetrieve)

	checks := map[string]func() error{
		"ace":           func() error { _, err := e.SubmitACE(unowned.ID, ace); return err },
		"identity":      func() error { _, err := e.ProvisionIdentityCertificate(unowned.ID); return err },
		"retrieveCreds": func() error { _, err := e.RetrieveCredentials(device.NewID()); return err },
		"deleteCred":    func() error { _, err := e.DeleteCredential(unowned.ID, 1); return err },
		"retrieveACL":   func() error { _, err := e.RetrieveACL(unowned.ID); return err },
		"deleteACE":     func() error { _, err := e.DeleteACE(unowned.ID, 1); return err },
		"reset":         func() error { _, err := e.ResetDevice(unowned.ID); return err },
		"pairwise":      func() error { _, err := e.ProvisionPairwise(a, device.NewID()); return err },
	}
	for name, fn := range checks {
		err := fn()
		assert.ErrorIs(t, err, ErrNotOwned, name)
		assert.Equal(t, sdk.OutcomeLocal, sdk.Classify(err), name)
	}

	_, err := e.ProvisionPairwise(a, a)
	assert.ErrorIs(t, err, ErrSameDevice)
}

func TestProvisionPairwise(t *testing.T) {
	e, m, reg := newEngine(t)
	a, b := owned(reg, "a"), owned(reg, "b")

	m.EXPECT().ProvisionPairwiseCredentials(a, b, mock.Anything).
		Run(func(_, _ device.ID, h result.Handler[struct{}]) {
			go h(result.Err[sdk.Done](result.Fail(OpPairwise, a, result.CodeUnreachable, "")))
		}).
		Return(sdk.Handle(3), nil)

	req, err := e.ProvisionPairwise(a, b)
	require.NoError(t, err)
	r := await(t, req.Pending)
	assert.Equal(t, sdk.OutcomeFailed, sdk.Classify(r.Err))
	assert.Equal(t, result.CodeUnreachable, result.CodeOf(r.Err))
}

func TestRejectionIsSynchronous(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "a")

	m.EXPECT().ProvisionIdentityCertificate(id, mock.Anything).
		Return(sdk.Handle(-1), sdk.Reject(OpIdentityCert, sdk.CodeBusy))

	req, err := e.ProvisionIdentityCertificate(id)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, sdk.ErrRejected)
	var rej *sdk.Rejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, sdk.CodeBusy, rej.Code)
}

func TestWildcardACEs(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "a")

	var got []*acl.ACE
	m.EXPECT().ProvisionACE(id, mock.Anything, mock.Anything).
		Run(func(_ device.ID, a *acl.ACE, h result.Handler[struct{}]) {
			got = append(got, a)
			go h(result.OK(sdk.Done{}))
		}).
		Return(sdk.Handle(1), nil).Times(2)

	r1, err := e.ProvisionAuthCryptWildcardACE(id, acl.PermRetrieve|acl.PermUpdate)
	require.NoError(t, err)
	await(t, r1.Pending)
	r2, err := e.ProvisionRoleWildcardACE(id, "operator", "", acl.PermAll)
	require.NoError(t, err)
	await(t, r2.Pending)

	require.Len(t, got, 2)
	assert.Equal(t, acl.ConnAuthCrypt, got[0].Subject.Connection)
	assert.Equal(t, acl.WildcardAll, got[0].Resources[0].Wildcard)
	assert.Equal(t, acl.PermRetrieve|acl.PermUpdate, got[0].Permissions)
	assert.Equal(t, "operator", got[1].Subject.Role.Name)
	assert.Equal(t, acl.PermAll, got[1].Permissions)

	_, err = e.ProvisionAuthCryptWildcardACE(id, acl.PermNone)
	assert.ErrorIs(t, err, acl.ErrNoPermissions)
}

func TestRoleCertificate(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "a")

	_, err := e.ProvisionRoleCertificate(nil, id)
	assert.ErrorIs(t, err, acl.ErrEmptyRoleChain)

	var chain acl.RoleChain
	chain.Add("admin", "org1")
	chain.Add("viewer", "")

	var sent acl.RoleChain
	m.EXPECT().ProvisionRoleCertificate(mock.Anything, id, mock.Anything).
		Run(func(roles acl.RoleChain, _ device.ID, h result.Handler[struct{}]) {
			sent = roles
			go h(result.OK(sdk.Done{}))
		}).
		Return(sdk.Handle(2), nil)

	req, err := e.ProvisionRoleCertificate(chain, id)
	require.NoError(t, err)
	await(t, req.Pending)
	assert.Equal(t, chain, sent)
}

func TestOverlongFieldsTruncatedBeforeSending(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "a")

	ace := &acl.ACE{
		Subject: acl.Subject{
			Kind: acl.SubjectRole,
			Role: acl.Role{Name: strings.Repeat("r", 80), Authority: strings.Repeat("o", 90)},
		},
		Resources:   []acl.ResourceMatch{{Href: "/" + strings.Repeat("h", 99)}, {Wildcard: acl.WildcardAll}},
		Permissions: acl.PermRetrieve,
	}

	var sentACE *acl.ACE
	m.EXPECT().ProvisionACE(id, mock.Anything, mock.Anything).
		Run(func(_ device.ID, a *acl.ACE, h result.Handler[struct{}]) {
			sentACE = a
			go h(result.OK(sdk.Done{}))
		}).
		Return(sdk.Handle(1), nil)

	req, err := e.SubmitACE(id, ace)
	require.NoError(t, err)
	await(t, req.Pending)

	require.NotNil(t, sentACE)
	assert.Len(t, sentACE.Subject.Role.Name, acl.MaxRoleLength)
	assert.Len(t, sentACE.Subject.Role.Authority, acl.MaxAuthorityLength)
	assert.Len(t, sentACE.Resources[0].Href, acl.MaxHrefLength)
	assert.Equal(t, acl.WildcardAll, sentACE.Resources[1].Wildcard)
	assert.Len(t, ace.Subject.Role.Name, 80, "caller's ACE is left untouched")

	chain := acl.RoleChain{{Name: strings.Repeat("n", 70), Authority: "org1"}}
	var sentChain acl.RoleChain
	m.EXPECT().ProvisionRoleCertificate(mock.Anything, id, mock.Anything).
		Run(func(roles acl.RoleChain, _ device.ID, h result.Handler[struct{}]) {
			sentChain = roles
			go h(result.OK(sdk.Done{}))
		}).
		Return(sdk.Handle(2), nil)

	req, err = e.ProvisionRoleCertificate(chain, id)
	require.NoError(t, err)
	await(t, req.Pending)

	require.Len(t, sentChain, 1)
	assert.Len(t, sentChain[0].Name, acl.MaxRoleLength)
	assert.Equal(t, "org1", sentChain[0].Authority)
	assert.Len(t, chain[0].Name, 70)
}

func TestRetrieveAndDelete(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "a")

	creds := []cred.Credential{{ID: 1, Subject: device.NewID(), Type: cred.TypePSK}}
	m.EXPECT().RetrieveCredentials(id, mock.Anything).
		Run(func(_ device.ID, h result.Handler[[]cred.Credential]) { complete(creds)(h) }).
		Return(sdk.Handle(1), nil)

	list := &acl.ACL{ResourceOwner: id, Entries: []acl.ACE{*acl.AuthCryptWildcardACE(acl.PermRetrieve)}}
	m.EXPECT().RetrieveACL(id, mock.Anything).
		Run(func(_ device.ID, h result.Handler[*acl.ACL]) { complete(list)(h) }).
		Return(sdk.Handle(2), nil)

	m.EXPECT().DeleteCredential(id, 1, mock.Anything).
		Run(func(_ device.ID, _ int, h result.Handler[struct{}]) { complete(sdk.Done{})(h) }).
		Return(sdk.Handle(3), nil)
	m.EXPECT().DeleteACE(id, 4, mock.Anything).
		Run(func(_ device.ID, _ int, h result.Handler[struct{}]) { complete(sdk.Done{})(h) }).
		Return(sdk.Handle(4), nil)

	rc, err := e.RetrieveCredentials(id)
	require.NoError(t, err)
	assert.Equal(t, creds, await(t, rc.Pending).Value)

	ra, err := e.RetrieveACL(id)
	require.NoError(t, err)
	assert.Same(t, list, await(t, ra.Pending).Value)

	dc, err := e.DeleteCredential(id, 1)
	require.NoError(t, err)
	require.NoError(t, await(t, dc.Pending).Err)

	da, err := e.DeleteACE(id, 4)
	require.NoError(t, err)
	require.NoError(t, await(t, da.Pending).Err)
}

func TestResetDeviceRemovesFromRegistry(t *testing.T) {
	e, m, reg := newEngine(t)
	id := owned(reg, "a")
	other := owned(reg, "b")

	m.EXPECT().HardReset(id, mock.Anything).
		Run(func(_ device.ID, h result.Handler[struct{}]) { complete(sdk.Done{})(h) }).
		Return(sdk.Handle(9), nil)
	m.EXPECT().HardReset(other, mock.Anything).
		Run(func(_ device.ID, h result.Handler[struct{}]) {
			go h(result.Err[sdk.Done](result.Fail(OpHardReset, other, result.CodeForbidden, "")))
		}).
		Return(sdk.Handle(10), nil)

	req, err := e.ResetDevice(id)
	require.NoError(t, err)
	assert.Equal(t, sdk.Handle(9), req.Handle)
	require.NoError(t, await(t, req.Pending).Err)
	_, _, known := reg.Lookup(id)
	assert.False(t, known)

	req, err = e.ResetDevice(other)
	require.NoError(t, err)
	assert.Error(t, await(t, req.Pending).Err)
	assert.True(t, reg.IsOwned(other), "failed reset keeps the device")
}

func TestOwnCredentials(t *testing.T) {
	e, m, _ := newEngine(t)

	own := []cred.Credential{{ID: 1, Type: cred.TypeCert, Usage: cred.UsageTrustCA}}
	m.EXPECT().RetrieveOwnCredentials().Return(own, nil).Once()
	got, err := e.RetrieveOwnCredentials()
	require.NoError(t, err)
	assert.Equal(t, own, got)

	m.EXPECT().DeleteOwnCredential(5).Return(sdk.Reject(OpDeleteOwnCred, sdk.CodeInvalidInput))
	assert.ErrorIs(t, e.DeleteOwnCredential(5), sdk.ErrRejected)
}

func TestInstallTrustAnchor(t *testing.T) {
	e, m, _ := newEngine(t)

	a, err := cert.GenerateAuthority("Mfg A", "")
	require.NoError(t, err)
	b, err := cert.GenerateAuthority("Mfg B", "")
	require.NoError(t, err)

	var pemData bytes.Buffer
	pemData.Write(cert.EncodeCertPEM(a.Certificate))
	pemData.Write(cert.EncodeCertPEM(b.Certificate))

	m.EXPECT().AddTrustAnchor(sdk.AnchorManufacturer, a.Certificate.Raw).Return(1, nil)
	m.EXPECT().AddTrustAnchor(sdk.AnchorManufacturer, b.Certificate.Raw).Return(2, nil)

	ids, err := e.InstallTrustAnchor(sdk.AnchorManufacturer, pemData.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)

	m.EXPECT().AddTrustAnchor(sdk.AnchorRoot, a.Certificate.Raw).Return(3, nil)
	ids, err = e.InstallTrustAnchor(sdk.AnchorRoot, a.Certificate.Raw)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids)

	_, err = e.InstallTrustAnchor(sdk.AnchorRoot, []byte("done"))
	assert.ErrorIs(t, err, cert.ErrInvalidCert)
	assert.True(t, sdk.IsLocal(err))
}

func TestConfigValidate(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(Config{SDK: mocks.NewMockProvisioner(t)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
