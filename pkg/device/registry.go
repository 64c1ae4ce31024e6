package device

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// collection is an insertion-ordered set of descriptors.
type collection struct {
	order []ID
	byID  map[ID]*Descriptor
}

func newCollection() *collection {
	return &collection{byID: make(map[ID]*Descriptor)}
}

func (c *collection) get(id ID) (*Descriptor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

func (c *collection) put(d Descriptor) {
	if _, exists := c.byID[d.ID]; !exists {
		c.order = append(c.order, d.ID)
	}
	cp := d.Clone()
	c.byID[d.ID] = &cp
}

func (c *collection) remove(id ID) (Descriptor, bool) {
	d, ok := c.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	delete(c.byID, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return *d, true
}

func (c *collection) snapshot() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

func (c *collection) at(i int) (Descriptor, bool) {
	if i < 0 || i >= len(c.order) {
		return Descriptor{}, false
	}
	return c.byID[c.order[i]].Clone(), true
}

// Registry tracks unowned and owned devices.
//
// All methods are safe for concurrent use. Listeners registered with OnChange
// are invoked after the registry lock is released, on the goroutine that
// performed the mutation.
type Registry struct {
	mu sync.RWMutex

	unowned *collection
	owned   *collection

	// inFlight holds devices reserved for an ownership transfer that has not
	// resolved yet. A committed transfer has left the unowned collection.
	inFlight map[ID]Descriptor

	listeners []func(Transition)
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		unowned:  newCollection(),
		owned:    newCollection(),
		inFlight: make(map[ID]Descriptor),
	}
}

// SetLogger sets the logger for the registry. A nil logger disables logging.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// OnChange registers a listener for registry transitions.
func (r *Registry) OnChange(fn func(Transition)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// ObserveUnowned records a device seen by unowned discovery.
//
// Observations of owned devices and of devices with a transfer in flight are
// ignored. Re-observing a known unowned device only refreshes its name.
func (r *Registry) ObserveUnowned(d Descriptor) Change {
	r.mu.Lock()
	var change Change
	var ts []Transition

	switch {
	case r.isOwnedLocked(d.ID):
		change = ChangeIgnored
		r.debugLocked("ignoring unowned observation of owned device", "device_id", d.ID)
	case r.isInFlightLocked(d.ID):
		change = ChangeIgnored
		r.debugLocked("ignoring unowned observation of device in transfer", "device_id", d.ID)
	default:
		change = upsert(r.unowned, d)
		if change != ChangeNone {
			cur, _ := r.unowned.get(d.ID)
			ts = append(ts, Transition{Change: change, Collection: Unowned, Device: cur.Clone()})
		}
	}
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
	return change
}

// ObserveOwned records a device seen by owned discovery.
//
// The device is removed from the unowned collection if present, and any
// in-flight transfer for it is considered resolved.
func (r *Registry) ObserveOwned(d Descriptor) Change {
	r.mu.Lock()
	ts := r.promoteLocked(d)
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
	if len(ts) == 0 {
		return ChangeNone
	}
	return ts[len(ts)-1].Change
}

// promoteLocked inserts d into the owned collection, removing it from the
// unowned collection and the in-flight set. Must be called with mu held.
func (r *Registry) promoteLocked(d Descriptor) []Transition {
	_, wasUnowned := r.unowned.remove(d.ID)
	_, wasInFlight := r.inFlight[d.ID]
	delete(r.inFlight, d.ID)

	change := upsert(r.owned, d)
	if change == ChangeAdded && (wasUnowned || wasInFlight) {
		change = ChangePromoted
	}
	if change == ChangeNone {
		return nil
	}
	cur, _ := r.owned.get(d.ID)
	return []Transition{{Change: change, Collection: Owned, Device: cur.Clone()}}
}

// upsert inserts d into c or refreshes the name of an existing entry.
func upsert(c *collection, d Descriptor) Change {
	existing, ok := c.get(d.ID)
	if !ok {
		c.put(d)
		return ChangeAdded
	}
	if d.Name != "" && existing.Name != d.Name {
		existing.Name = d.Name
		return ChangeRenamed
	}
	return ChangeNone
}

// BeginTransfer reserves an unowned device for an ownership transfer. The
// device stays listed as unowned until CommitTransfer; unowned observations
// of it are ignored and a second reservation fails.
func (r *Registry) BeginTransfer(id ID) (Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isInFlightLocked(id) {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrTransferPending, id)
	}
	d, ok := r.unowned.get(id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s is not unowned", ErrNotFound, id)
	}
	r.inFlight[id] = d.Clone()
	return d.Clone(), nil
}

// CommitTransfer takes a reserved device out of the unowned collection once
// its transfer request has been issued. It is a no-op if the reservation was
// cleared in the meantime.
func (r *Registry) CommitTransfer(id ID) {
	r.mu.Lock()
	var ts []Transition
	if r.isInFlightLocked(id) {
		if d, ok := r.unowned.remove(id); ok {
			ts = append(ts, Transition{Change: ChangeRemoved, Collection: Unowned, Device: d})
		}
	}
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
}

// MoveToOwned places a device into the owned collection.
//
// The device is taken from the in-flight set or the unowned collection.
// Moving a device that is already owned is a no-op.
func (r *Registry) MoveToOwned(id ID) error {
	r.mu.Lock()
	if r.isOwnedLocked(id) {
		delete(r.inFlight, id)
		r.mu.Unlock()
		return nil
	}

	d, ok := r.inFlight[id]
	if !ok {
		var cur *Descriptor
		cur, ok = r.unowned.get(id)
		if ok {
			d = cur.Clone()
		}
	}
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	ts := r.promoteLocked(d)
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
	return nil
}

// AbortTransfer clears the in-flight mark of a transfer. A reservation that
// was never committed leaves the device where it is. Otherwise, with restore
// set the device is put back into the unowned collection, unless it has been
// observed as owned in the meantime.
func (r *Registry) AbortTransfer(id ID, restore bool) {
	r.mu.Lock()
	d, ok := r.inFlight[id]
	delete(r.inFlight, id)

	var ts []Transition
	_, listed := r.unowned.get(id)
	if ok && !listed && restore && !r.isOwnedLocked(id) {
		if change := upsert(r.unowned, d); change != ChangeNone {
			cur, _ := r.unowned.get(id)
			ts = append(ts, Transition{Change: change, Collection: Unowned, Device: cur.Clone()})
		}
	}
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
}

// Remove deletes a device from both collections and the in-flight set.
// It reports whether the device was known.
func (r *Registry) Remove(id ID) bool {
	r.mu.Lock()
	var ts []Transition
	if d, ok := r.unowned.remove(id); ok {
		ts = append(ts, Transition{Change: ChangeRemoved, Collection: Unowned, Device: d})
	}
	if d, ok := r.owned.remove(id); ok {
		ts = append(ts, Transition{Change: ChangeRemoved, Collection: Owned, Device: d})
	}
	_, inFlight := r.inFlight[id]
	delete(r.inFlight, id)
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
	return len(ts) > 0 || inFlight
}

// ResetAll clears both collections and the in-flight set.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	var ts []Transition
	for _, d := range r.unowned.snapshot() {
		ts = append(ts, Transition{Change: ChangeRemoved, Collection: Unowned, Device: d})
	}
	for _, d := range r.owned.snapshot() {
		ts = append(ts, Transition{Change: ChangeRemoved, Collection: Owned, Device: d})
	}
	r.unowned = newCollection()
	r.owned = newCollection()
	r.inFlight = make(map[ID]Descriptor)
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, ts)
}

// ListUnowned returns a snapshot of the unowned devices.
func (r *Registry) ListUnowned() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unowned.snapshot()
}

// ListOwned returns a snapshot of the owned devices.
func (r *Registry) ListOwned() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owned.snapshot()
}

// All returns owned devices followed by unowned devices.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(r.owned.snapshot(), r.unowned.snapshot()...)
}

// UnownedAt returns the unowned device at index i of the current snapshot.
func (r *Registry) UnownedAt(i int) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.unowned.at(i)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrInvalidSelection, i)
	}
	return d, nil
}

// OwnedAt returns the owned device at index i of the current snapshot.
func (r *Registry) OwnedAt(i int) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.owned.at(i)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrInvalidSelection, i)
	}
	return d, nil
}

// Lookup returns the descriptor and collection of a device.
func (r *Registry) Lookup(id ID) (Descriptor, Ownership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.owned.get(id); ok {
		return d.Clone(), Owned, true
	}
	if d, ok := r.unowned.get(id); ok {
		return d.Clone(), Unowned, true
	}
	return Descriptor{}, Unowned, false
}

// IsOwned reports whether the device is in the owned collection.
func (r *Registry) IsOwned(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isOwnedLocked(id)
}

// IsUnowned reports whether the device is in the unowned collection.
func (r *Registry) IsUnowned(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.unowned.get(id)
	return ok
}

// InFlight reports whether an ownership transfer for the device is pending.
func (r *Registry) InFlight(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isInFlightLocked(id)
}

// Counts returns the sizes of the unowned and owned collections.
func (r *Registry) Counts() (unowned, owned int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.unowned.order), len(r.owned.order)
}

func (r *Registry) isOwnedLocked(id ID) bool {
	_, ok := r.owned.get(id)
	return ok
}

func (r *Registry) isInFlightLocked(id ID) bool {
	_, ok := r.inFlight[id]
	return ok
}

func (r *Registry) debugLocked(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func notify(listeners []func(Transition), ts []Transition) {
	for _, t := range ts {
		for _, fn := range listeners {
			fn(t)
		}
	}
}
