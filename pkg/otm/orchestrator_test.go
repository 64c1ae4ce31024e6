package otm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
	"github.com/secure-iot/obt-go/pkg/sdk/mocks"
)

type fixture struct {
	orch     *Orchestrator
	sdk      *mocks.MockProvisioner
	registry *device.Registry
}

func newFixture(t *testing.T, policy FailurePolicy) *fixture {
	t.Helper()
	m := mocks.NewMockProvisioner(t)
	reg := device.NewRegistry()
	cfg := DefaultConfig()
	cfg.SDK = m
	cfg.Registry = reg
	cfg.Policy = policy
	o, err := New(cfg)
	require.NoError(t, err)
	return &fixture{orch: o, sdk: m, registry: reg}
}

func (f *fixture) add(names ...string) []device.Descriptor {
	out := make([]device.Descriptor, len(names))
	for i, n := range names {
		out[i] = device.Descriptor{ID: device.NewID(), Name: n}
		f.registry.ObserveUnowned(out[i])
	}
	return out
}

func ids(ds []device.Descriptor) []device.ID {
	out := make([]device.ID, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func wait(t *testing.T, tr *Transfer) result.Result[sdk.Done] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r, err := tr.Wait(ctx)
	require.NoError(t, err)
	return r
}

// captureJustWorks makes the mock accept the request and hands back the
// completion handler.
func (f *fixture) captureJustWorks(id device.ID) *result.Handler[sdk.Done] {
	var h result.Handler[sdk.Done]
	f.sdk.EXPECT().PerformJustWorksOTM(id, mock.Anything).
		Run(func(_ device.ID, cb result.Handler[sdk.Done]) { h = cb }).
		Return(sdk.Handle(1), nil)
	return &h
}

func TestJustWorksRemovesImmediately(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	devs := f.add("A", "B", "C")

	sel, err := f.registry.UnownedAt(1)
	require.NoError(t, err)
	f.captureJustWorks(sel.ID)

	tr, err := f.orch.JustWorks(sel.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int(tr.Handle), 0)
	assert.Equal(t, "B", tr.Device.Name)

	assert.Equal(t, []device.ID{devs[0].ID, devs[2].ID}, ids(f.registry.ListUnowned()))
	assert.Empty(t, f.registry.ListOwned())

	st, ok := f.orch.State(sel.ID)
	require.True(t, ok)
	assert.Equal(t, StateTransferRequested, st)

	_, done := tr.Result()
	assert.False(t, done)
}

func TestJustWorksSuccessMovesToOwned(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]
	h := f.captureJustWorks(d.ID)

	var changes []StateChange
	f.orch.OnStateChange(func(c StateChange) { changes = append(changes, c) })

	tr, err := f.orch.JustWorks(d.ID)
	require.NoError(t, err)

	go (*h)(result.OK(sdk.Done{}))
	r := wait(t, tr)
	require.NoError(t, r.Err)

	assert.True(t, f.registry.IsOwned(d.ID))
	assert.False(t, f.registry.InFlight(d.ID))
	st, _ := f.orch.State(d.ID)
	assert.Equal(t, StateOwned, st)

	require.Len(t, changes, 2)
	assert.Equal(t, StateDiscovered, changes[0].From)
	assert.Equal(t, StateTransferRequested, changes[0].To)
	assert.Equal(t, StateOwned, changes[1].To)
}

func TestFailureLeaveRemoved(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]
	h := f.captureJustWorks(d.ID)

	tr, err := f.orch.JustWorks(d.ID)
	require.NoError(t, err)

	go (*h)(result.Err[sdk.Done](result.Fail(OpJustWorks, d.ID, result.CodeTimeout, "")))
	r := wait(t, tr)
	assert.ErrorIs(t, r.Err, result.ErrFailed)

	assert.Empty(t, f.registry.All())
	assert.False(t, f.registry.InFlight(d.ID))
	st, _ := f.orch.State(d.ID)
	assert.Equal(t, StateTransferFailed, st)

	// Lost until rediscovered.
	assert.Equal(t, device.ChangeAdded, f.registry.ObserveUnowned(d))
}

func TestFailureRollback(t *testing.T) {
	f := newFixture(t, RollbackOnFailure)
	devs := f.add("A", "B")
	h := f.captureJustWorks(devs[0].ID)

	tr, err := f.orch.JustWorks(devs[0].ID)
	require.NoError(t, err)

	go (*h)(result.Err[sdk.Done](result.Fail(OpJustWorks, devs[0].ID, result.CodeUnreachable, "")))
	wait(t, tr)

	assert.ElementsMatch(t, []device.ID{devs[0].ID, devs[1].ID}, ids(f.registry.ListUnowned()))
}

func TestFailureAfterOwnedObservation(t *testing.T) {
	f := newFixture(t, RollbackOnFailure)
	d := f.add("A")[0]
	h := f.captureJustWorks(d.ID)

	tr, err := f.orch.JustWorks(d.ID)
	require.NoError(t, err)

	// Owned discovery races ahead of the failure report.
	f.registry.ObserveOwned(d)
	go (*h)(result.Err[sdk.Done](result.Fail(OpJustWorks, d.ID, result.CodeError, "")))
	wait(t, tr)

	assert.True(t, f.registry.IsOwned(d.ID))
	assert.Empty(t, f.registry.ListUnowned())
}

func TestRejectionRestoresDevice(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	devs := f.add("A", "B", "C")
	var got []device.Transition
	f.registry.OnChange(func(tr device.Transition) { got = append(got, tr) })

	var listedDuringCall []device.ID
	f.sdk.EXPECT().PerformJustWorksOTM(devs[0].ID, mock.Anything).
		Run(func(device.ID, result.Handler[sdk.Done]) {
			listedDuringCall = ids(f.registry.ListUnowned())
		}).
		Return(sdk.Handle(-1), sdk.Reject(OpJustWorks, sdk.CodeBusy))

	tr, err := f.orch.JustWorks(devs[0].ID)
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, sdk.ErrRejected)

	want := []device.ID{devs[0].ID, devs[1].ID, devs[2].ID}
	assert.Equal(t, want, listedDuringCall)
	assert.Equal(t, want, ids(f.registry.ListUnowned()))
	assert.Empty(t, got)
	assert.False(t, f.registry.InFlight(devs[0].ID))
	_, ok := f.orch.State(devs[0].ID)
	assert.False(t, ok)
}

func TestTransferRequiresUnownedDevice(t *testing.T) {
	f := newFixture(t, LeaveRemoved)

	owned := device.Descriptor{ID: device.NewID(), Name: "O"}
	f.registry.ObserveOwned(owned)

	_, err := f.orch.JustWorks(owned.ID)
	assert.ErrorIs(t, err, ErrNotUnowned)
	_, err = f.orch.Certificate(device.NewID())
	assert.ErrorIs(t, err, ErrNotUnowned)
	assert.ErrorIs(t, err, device.ErrNotFound)
	assert.True(t, sdk.IsLocal(err))
}

func TestSecondTransferWhileInFlight(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]
	f.captureJustWorks(d.ID)

	_, err := f.orch.JustWorks(d.ID)
	require.NoError(t, err)

	_, err = f.orch.Certificate(d.ID)
	assert.ErrorIs(t, err, device.ErrTransferPending)
}

func TestRandomPIN(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]

	f.sdk.EXPECT().RequestRandomPIN(d.ID, mock.Anything).
		Run(func(_ device.ID, h result.Handler[sdk.Done]) { go h(result.OK(sdk.Done{})) }).
		Return(sdk.Handle(4), nil)

	req, err := f.orch.RequestRandomPIN(d.ID)
	require.NoError(t, err)
	r, err := req.Wait(context.Background())
	require.NoError(t, err)
	require.NoError(t, r.Err)

	assert.True(t, f.registry.IsUnowned(d.ID), "PIN request does not start the transfer")
	st, _ := f.orch.State(d.ID)
	assert.Equal(t, StatePINRequested, st)

	long := strings.Repeat("7", 30)
	var sent string
	f.sdk.EXPECT().PerformRandomPinOTM(d.ID, mock.Anything, mock.Anything).
		Run(func(_ device.ID, pin string, h result.Handler[sdk.Done]) {
			sent = pin
			go h(result.OK(sdk.Done{}))
		}).
		Return(sdk.Handle(5), nil)

	tr, err := f.orch.RandomPIN(d.ID, long)
	require.NoError(t, err)
	require.NoError(t, wait(t, tr).Err)

	assert.Len(t, sent, MaxPINLength)
	assert.Equal(t, long[:24], sent)
	assert.True(t, f.registry.IsOwned(d.ID))
	assert.Equal(t, sdk.OTMRandomPIN, tr.Method)
}

func TestRandomPINValidation(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]

	_, err := f.orch.RandomPIN(d.ID, "")
	assert.ErrorIs(t, err, ErrEmptyPIN)
	assert.True(t, f.registry.IsUnowned(d.ID))

	_, err = f.orch.RequestRandomPIN(device.NewID())
	assert.ErrorIs(t, err, ErrNotUnowned)
}

func TestCertificate(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]
	f.sdk.EXPECT().PerformCertOTM(d.ID, mock.Anything).
		Run(func(_ device.ID, h result.Handler[sdk.Done]) {
			go h(result.Err[sdk.Done](result.Fail(OpCert, d.ID, result.CodeVerifyFailed, "no trust anchor")))
		}).
		Return(sdk.Handle(0), nil)

	tr, err := f.orch.Certificate(d.ID)
	require.NoError(t, err)
	r := wait(t, tr)
	assert.Equal(t, result.CodeVerifyFailed, result.CodeOf(r.Err))
	assert.Empty(t, f.registry.All())
}

func TestDuplicateCompletionIgnored(t *testing.T) {
	f := newFixture(t, RollbackOnFailure)
	d := f.add("A")[0]
	h := f.captureJustWorks(d.ID)

	tr, err := f.orch.JustWorks(d.ID)
	require.NoError(t, err)

	(*h)(result.OK(sdk.Done{}))
	wait(t, tr)
	(*h)(result.Err[sdk.Done](result.Fail(OpJustWorks, d.ID, result.CodeError, "")))

	time.Sleep(10 * time.Millisecond)
	assert.True(t, f.registry.IsOwned(d.ID))
	st, _ := f.orch.State(d.ID)
	assert.Equal(t, StateOwned, st)
}

func TestTransferAfterReset(t *testing.T) {
	f := newFixture(t, LeaveRemoved)
	d := f.add("A")[0]
	h := f.captureJustWorks(d.ID)

	tr, err := f.orch.JustWorks(d.ID)
	require.NoError(t, err)

	f.registry.ResetAll()
	f.orch.Forget()
	go (*h)(result.OK(sdk.Done{}))

	r := wait(t, tr)
	assert.ErrorIs(t, r.Err, device.ErrNotFound)
	assert.Empty(t, f.registry.All())
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("rollback")
	require.NoError(t, err)
	assert.Equal(t, RollbackOnFailure, p)

	p, err = ParseFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, LeaveRemoved, p)

	_, err = ParseFailurePolicy("retry")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(Config{SDK: mocks.NewMockProvisioner(t), Registry: device.NewRegistry(), Policy: 9})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
