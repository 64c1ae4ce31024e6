package discovery

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/secure-iot/obt-go/pkg/device"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/sdk"
	"github.com/secure-iot/obt-go/pkg/sdk/mocks"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *mocks.MockProvisioner, *device.Registry, *obtlog.MemoryLogger) {
	t.Helper()
	m := mocks.NewMockProvisioner(t)
	reg := device.NewRegistry()
	journal := &obtlog.MemoryLogger{}
	d, err := NewDispatcher(Config{
		Devices:   m,
		Resources: m,
		Registry:  reg,
		Journal:   journal,
	})
	require.NoError(t, err)
	return d, m, reg, journal
}

func desc(name string) device.Descriptor {
	return device.Descriptor{
		ID:        device.NewID(),
		Name:      name,
		Endpoints: []device.Endpoint{{Scheme: "coaps", Host: "fe80::10", Port: 5684}},
	}
}

func TestDiscoverUnownedFeedsRegistry(t *testing.T) {
	d, m, reg, journal := newTestDispatcher(t)

	var observe sdk.ObserveHandler
	m.EXPECT().DiscoverUnowned(sdk.ScopeRealmLocal, mock.Anything).
		Run(func(_ sdk.Scope, h sdk.ObserveHandler) { observe = h }).
		Return(sdk.Handle(3), nil)

	h, err := d.DiscoverUnowned(sdk.ScopeRealmLocal)
	require.NoError(t, err)
	assert.Equal(t, sdk.Handle(3), h)

	// Accepted, nothing found yet.
	assert.Empty(t, reg.ListUnowned())

	a, b := desc("A"), desc("B")
	observe(a)
	observe(b)
	observe(a)

	got := reg.ListUnowned()
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)

	events := journal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, OpDiscoverUnowned, events[0].Op)
	assert.Equal(t, "realm-local", events[0].Request.Scope)
}

func TestDiscoverOwnedPromotes(t *testing.T) {
	d, m, reg, _ := newTestDispatcher(t)
	x := desc("X")
	reg.ObserveUnowned(x)

	m.EXPECT().DiscoverOwned(sdk.ScopeGeneral, mock.Anything).
		Run(func(_ sdk.Scope, h sdk.ObserveHandler) { h(x) }).
		Return(sdk.Handle(0), nil)

	var observed []Observation
	d.OnObserved(func(o Observation) { observed = append(observed, o) })

	_, err := d.DiscoverOwned(sdk.ScopeGeneral)
	require.NoError(t, err)

	assert.Empty(t, reg.ListUnowned())
	assert.True(t, reg.IsOwned(x.ID))
	require.Len(t, observed, 1)
	assert.Equal(t, device.Owned, observed[0].Ownership)
	assert.Equal(t, device.ChangePromoted, observed[0].Change)
}

func TestDiscoverRejected(t *testing.T) {
	d, m, reg, journal := newTestDispatcher(t)

	m.EXPECT().DiscoverUnowned(sdk.ScopeSiteLocal, mock.Anything).
		Return(sdk.Handle(-1), sdk.Reject("discover", sdk.CodeNoInterface))

	h, err := d.DiscoverUnowned(sdk.ScopeSiteLocal)
	assert.ErrorIs(t, err, sdk.ErrRejected)
	assert.Equal(t, sdk.Handle(-1), h)
	assert.Empty(t, reg.All())

	events := journal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, obtlog.CategoryRejection, events[0].Category)
	assert.Equal(t, sdk.CodeNoInterface, events[0].Rejection.Code)
}

func TestDiscoverDropsNilID(t *testing.T) {
	d, m, reg, _ := newTestDispatcher(t)
	m.EXPECT().DiscoverUnowned(sdk.ScopeGeneral, mock.Anything).
		Run(func(_ sdk.Scope, h sdk.ObserveHandler) { h(device.Descriptor{Name: "anonymous"}) }).
		Return(sdk.Handle(1), nil)

	_, err := d.DiscoverUnowned(sdk.ScopeGeneral)
	require.NoError(t, err)
	assert.Empty(t, reg.All())
}

func TestConcurrentResponses(t *testing.T) {
	d, m, reg, _ := newTestDispatcher(t)

	var unowned, owned sdk.ObserveHandler
	m.EXPECT().DiscoverUnowned(sdk.ScopeGeneral, mock.Anything).
		Run(func(_ sdk.Scope, h sdk.ObserveHandler) { unowned = h }).
		Return(sdk.Handle(1), nil)
	m.EXPECT().DiscoverOwned(sdk.ScopeGeneral, mock.Anything).
		Run(func(_ sdk.Scope, h sdk.ObserveHandler) { owned = h }).
		Return(sdk.Handle(2), nil)

	_, err := d.DiscoverUnowned(sdk.ScopeGeneral)
	require.NoError(t, err)
	_, err = d.DiscoverOwned(sdk.ScopeGeneral)
	require.NoError(t, err)

	devices := make([]device.Descriptor, 20)
	for i := range devices {
		devices[i] = desc(fmt.Sprintf("dev-%d", i))
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for _, dv := range devices {
				unowned(dv)
			}
		}()
		go func() {
			defer wg.Done()
			for i, dv := range devices {
				if i%2 == 0 {
					owned(dv)
				}
			}
		}()
	}
	wg.Wait()

	uc, oc := reg.Counts()
	assert.Equal(t, 10, oc)
	assert.Equal(t, 10, uc)
	for i, dv := range devices {
		assert.Equal(t, i%2 == 0, reg.IsOwned(dv.ID))
		assert.Equal(t, i%2 != 0, reg.IsUnowned(dv.ID))
	}
}

func TestDiscoverResources(t *testing.T) {
	d, m, reg, _ := newTestDispatcher(t)
	x := desc("X")
	reg.ObserveOwned(x)

	m.EXPECT().DiscoverResources(x.ID, mock.Anything).
		Run(func(id device.ID, h sdk.ResourceHandler) {
			h(id, sdk.Resource{Href: "/a/light", Types: []string{"oic.r.switch.binary"}})
			h(device.NewID(), sdk.Resource{Href: "/other"})
			h(id, sdk.Resource{Href: "/oic/d"})
		}).
		Return(sdk.Handle(9), nil)

	var hrefs []string
	h, err := d.DiscoverResources(x.ID, func(r sdk.Resource) { hrefs = append(hrefs, r.Href) })
	require.NoError(t, err)
	assert.Equal(t, sdk.Handle(9), h)
	assert.Equal(t, []string{"/a/light", "/oic/d"}, hrefs)
}

func TestDiscoverResourcesUnknownDevice(t *testing.T) {
	d, _, _, _ := newTestDispatcher(t)

	_, err := d.DiscoverResources(device.NewID(), func(sdk.Resource) {})
	assert.ErrorIs(t, err, device.ErrNotFound)
	assert.True(t, sdk.IsLocal(err))
}

func TestConfigValidate(t *testing.T) {
	_, err := NewDispatcher(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	d, err := NewDispatcher(Config{Devices: mocks.NewMockProvisioner(t), Registry: device.NewRegistry()})
	require.NoError(t, err)
	_, err = d.DiscoverResources(device.NewID(), func(sdk.Resource) {})
	assert.ErrorIs(t, err, ErrNoResourceDiscovery)
}
