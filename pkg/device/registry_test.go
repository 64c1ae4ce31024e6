package device

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevice(name string) Descriptor {
	return Descriptor{
		ID:   NewID(),
		Name: name,
		Endpoints: []Endpoint{
			{Scheme: "coap", Host: "fe80::1", Port: 5683},
		},
	}
}

func ids(ds []Descriptor) []ID {
	out := make([]ID, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func TestObserveUnownedIdempotent(t *testing.T) {
	r := NewRegistry()
	d := testDevice("light")

	assert.Equal(t, ChangeAdded, r.ObserveUnowned(d))
	assert.Equal(t, ChangeNone, r.ObserveUnowned(d))
	assert.Equal(t, ChangeNone, r.ObserveUnowned(d.Clone()))

	unowned, owned := r.Counts()
	assert.Equal(t, 1, unowned)
	assert.Equal(t, 0, owned)
}

func TestObserveRefreshesNameOnly(t *testing.T) {
	r := NewRegistry()
	d := testDevice("light")
	r.ObserveUnowned(d)

	renamed := d.Clone()
	renamed.Name = "kitchen light"
	renamed.Endpoints = []Endpoint{{Scheme: "coaps", Host: "fe80::2", Port: 5684}}

	assert.Equal(t, ChangeRenamed, r.ObserveUnowned(renamed))

	got, err := r.UnownedAt(0)
	require.NoError(t, err)
	assert.Equal(t, "kitchen light", got.Name)
	assert.Equal(t, d.Endpoints, got.Endpoints, "endpoints are immutable once discovered")
}

func TestOwnedObservationTakesPrecedence(t *testing.T) {
	r := NewRegistry()
	x := testDevice("X")

	r.ObserveUnowned(x)
	assert.Equal(t, ChangePromoted, r.ObserveOwned(x))

	assert.Empty(t, r.ListUnowned())
	assert.Equal(t, []ID{x.ID}, ids(r.ListOwned()))
}

func TestUnownedObservationOfOwnedDeviceIgnored(t *testing.T) {
	r := NewRegistry()
	x := testDevice("X")

	r.ObserveOwned(x)
	assert.Equal(t, ChangeIgnored, r.ObserveUnowned(x))

	assert.Empty(t, r.ListUnowned())
	assert.Len(t, r.ListOwned(), 1)
}

func TestObservationOrderIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	x := testDevice("X")

	a.ObserveUnowned(x)
	a.ObserveOwned(x)
	a.ObserveUnowned(x)

	b.ObserveOwned(x)
	b.ObserveUnowned(x)
	b.ObserveOwned(x)

	assert.Equal(t, a.ListOwned(), b.ListOwned())
	assert.Equal(t, a.ListUnowned(), b.ListUnowned())
	assert.Empty(t, a.ListUnowned())
}

func TestSnapshotOrderAndIsolation(t *testing.T) {
	r := NewRegistry()
	a, b, c := testDevice("A"), testDevice("B"), testDevice("C")
	r.ObserveUnowned(a)
	r.ObserveUnowned(b)
	r.ObserveUnowned(c)

	snap := r.ListUnowned()
	require.Equal(t, []ID{a.ID, b.ID, c.ID}, ids(snap))

	snap[0].Name = "mutated"
	snap[0].Endpoints[0].Port = 1
	r.Remove(b.ID)

	assert.Len(t, snap, 3, "snapshot must not observe later mutation")
	got, err := r.UnownedAt(0)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, uint16(5683), got.Endpoints[0].Port)
}

func TestSelectionOutOfRange(t *testing.T) {
	r := NewRegistry()
	r.ObserveUnowned(testDevice("A"))

	_, err := r.UnownedAt(1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = r.UnownedAt(-1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = r.OwnedAt(0)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestBeginTransferReservesDevice(t *testing.T) {
	r := NewRegistry()
	a, b, c := testDevice("A"), testDevice("B"), testDevice("C")
	r.ObserveUnowned(a)
	r.ObserveUnowned(b)
	r.ObserveUnowned(c)
	var got []Transition
	r.OnChange(func(tr Transition) { got = append(got, tr) })

	sel, err := r.UnownedAt(1)
	require.NoError(t, err)
	require.Equal(t, b.ID, sel.ID)

	d, err := r.BeginTransfer(sel.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", d.Name)
	assert.Equal(t, []ID{a.ID, b.ID, c.ID}, ids(r.ListUnowned()))
	assert.True(t, r.InFlight(b.ID))
	assert.Empty(t, got)

	// Not offered again while the transfer is pending.
	assert.Equal(t, ChangeIgnored, r.ObserveUnowned(b))
	_, err = r.BeginTransfer(b.ID)
	assert.ErrorIs(t, err, ErrTransferPending)

	r.CommitTransfer(b.ID)
	assert.Equal(t, []ID{a.ID, c.ID}, ids(r.ListUnowned()))
	assert.True(t, r.InFlight(b.ID))
	require.Len(t, got, 1)
	assert.Equal(t, ChangeRemoved, got[0].Change)
	assert.Equal(t, b.ID, got[0].Device.ID)
}

func TestCommitTransferWithoutReservation(t *testing.T) {
	r := NewRegistry()
	d := testDevice("A")
	r.ObserveUnowned(d)

	r.CommitTransfer(d.ID)
	assert.Equal(t, []ID{d.ID}, ids(r.ListUnowned()))
}

func TestBeginTransferUnknownDevice(t *testing.T) {
	r := NewRegistry()
	_, err := r.BeginTransfer(NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveToOwnedAfterTransfer(t *testing.T) {
	r := NewRegistry()
	d := testDevice("A")
	r.ObserveUnowned(d)
	_, err := r.BeginTransfer(d.ID)
	require.NoError(t, err)
	r.CommitTransfer(d.ID)

	require.NoError(t, r.MoveToOwned(d.ID))
	assert.False(t, r.InFlight(d.ID))
	assert.True(t, r.IsOwned(d.ID))
	assert.False(t, r.IsUnowned(d.ID))

	// Idempotent.
	require.NoError(t, r.MoveToOwned(d.ID))
	assert.Len(t, r.ListOwned(), 1)
}

func TestMoveToOwnedUnknown(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.MoveToOwned(NewID()), ErrNotFound)
}

func TestAbortTransfer(t *testing.T) {
	t.Run("BeforeCommit", func(t *testing.T) {
		r := NewRegistry()
		a, b, c := testDevice("A"), testDevice("B"), testDevice("C")
		r.ObserveUnowned(a)
		r.ObserveUnowned(b)
		r.ObserveUnowned(c)
		var got []Transition
		r.OnChange(func(tr Transition) { got = append(got, tr) })
		_, _ = r.BeginTransfer(a.ID)

		r.AbortTransfer(a.ID, false)
		assert.Equal(t, []ID{a.ID, b.ID, c.ID}, ids(r.ListUnowned()))
		assert.False(t, r.InFlight(a.ID))
		assert.Empty(t, got)
	})

	t.Run("LeaveRemoved", func(t *testing.T) {
		r := NewRegistry()
		d := testDevice("A")
		r.ObserveUnowned(d)
		_, _ = r.BeginTransfer(d.ID)
		r.CommitTransfer(d.ID)

		r.AbortTransfer(d.ID, false)
		assert.Empty(t, r.ListUnowned())
		assert.False(t, r.InFlight(d.ID))

		// Rediscovery brings it back.
		assert.Equal(t, ChangeAdded, r.ObserveUnowned(d))
	})

	t.Run("Restore", func(t *testing.T) {
		r := NewRegistry()
		d := testDevice("A")
		r.ObserveUnowned(d)
		_, _ = r.BeginTransfer(d.ID)
		r.CommitTransfer(d.ID)

		r.AbortTransfer(d.ID, true)
		assert.Equal(t, []ID{d.ID}, ids(r.ListUnowned()))
	})

	t.Run("RestoreSkippedWhenOwned", func(t *testing.T) {
		r := NewRegistry()
		d := testDevice("A")
		r.ObserveUnowned(d)
		_, _ = r.BeginTransfer(d.ID)
		r.CommitTransfer(d.ID)
		r.ObserveOwned(d)

		r.AbortTransfer(d.ID, true)
		assert.Empty(t, r.ListUnowned())
		assert.True(t, r.IsOwned(d.ID))
	})
}

func TestRemoveAndResetAll(t *testing.T) {
	r := NewRegistry()
	a, b := testDevice("A"), testDevice("B")
	r.ObserveUnowned(a)
	r.ObserveOwned(b)

	assert.True(t, r.Remove(b.ID))
	assert.False(t, r.Remove(b.ID))
	assert.Empty(t, r.ListOwned())

	r.ObserveOwned(b)
	c := testDevice("C")
	r.ObserveUnowned(c)
	_, _ = r.BeginTransfer(c.ID)

	r.ResetAll()
	assert.Empty(t, r.ListUnowned())
	assert.Empty(t, r.ListOwned())
	assert.Empty(t, r.All())
	assert.False(t, r.InFlight(c.ID))
}

func TestAllOrdersOwnedFirst(t *testing.T) {
	r := NewRegistry()
	u := testDevice("U")
	o := testDevice("O")
	r.ObserveUnowned(u)
	r.ObserveOwned(o)

	assert.Equal(t, []ID{o.ID, u.ID}, ids(r.All()))
}

func TestOnChangeListener(t *testing.T) {
	r := NewRegistry()
	var got []Transition
	r.OnChange(func(tr Transition) {
		got = append(got, tr)
		// Listeners run outside the lock and may read the registry.
		_ = r.ListOwned()
	})

	d := testDevice("A")
	r.ObserveUnowned(d)
	r.ObserveUnowned(d)
	r.ObserveOwned(d)
	r.Remove(d.ID)

	require.Len(t, got, 3)
	assert.Equal(t, ChangeAdded, got[0].Change)
	assert.Equal(t, Unowned, got[0].Collection)
	assert.Equal(t, ChangePromoted, got[1].Change)
	assert.Equal(t, Owned, got[1].Collection)
	assert.Equal(t, ChangeRemoved, got[2].Change)
	assert.Equal(t, Owned, got[2].Collection)
}

func TestConcurrentObservationsNeverOverlap(t *testing.T) {
	r := NewRegistry()
	devices := make([]Descriptor, 32)
	for i := range devices {
		devices[i] = testDevice(fmt.Sprintf("dev-%d", i))
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i, d := range devices {
				if (i+w)%2 == 0 {
					r.ObserveOwned(d)
				} else {
					r.ObserveUnowned(d)
				}
				_ = r.ListUnowned()
				_ = r.ListOwned()
			}
		}(w)
	}
	wg.Wait()

	owned := make(map[ID]bool)
	for _, d := range r.ListOwned() {
		owned[d.ID] = true
	}
	for _, d := range r.ListUnowned() {
		assert.False(t, owned[d.ID], "device %s in both collections", d.ID)
	}
	// Every device was observed as owned by at least one worker.
	assert.Len(t, owned, len(devices))
}

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	assert.True(t, Nil.IsNil())
	assert.Len(t, id.Short(), 8)
}

func TestEndpointString(t *testing.T) {
	e := Endpoint{Scheme: "coaps", Host: "fe80::1", Port: 5684}
	assert.Equal(t, "coaps://[fe80::1]:5684", e.String())
	assert.True(t, e.Secured())
	assert.False(t, Endpoint{Host: "10.0.0.1", Port: 5683}.Secured())
}
