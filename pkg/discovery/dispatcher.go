package discovery

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/secure-iot/obt-go/pkg/device"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Operation names used in the journal.
const (
	OpDiscoverUnowned   = "discover.unowned"
	OpDiscoverOwned     = "discover.owned"
	OpDiscoverResources = "discover.resources"
)

// ResourceDiscoverer issues resource discovery requests.
type ResourceDiscoverer interface {
	DiscoverResources(id device.ID, h sdk.ResourceHandler) (sdk.Handle, error)
}

// Observation is one discovery response after it was applied to the registry.
type Observation struct {
	Device    device.Descriptor
	Ownership device.Ownership
	Change    device.Change
}

// Config configures a Dispatcher.
type Config struct {
	// Devices issues device discovery. Required.
	Devices sdk.Discoverer

	// Resources issues resource discovery. Optional; without it
	// DiscoverResources reports ErrNoResourceDiscovery.
	Resources ResourceDiscoverer

	// Registry receives observations. Required.
	Registry *device.Registry

	// Logger is used for operational logging. Nil disables logging.
	Logger *slog.Logger

	// Journal receives request events. Nil disables the journal.
	Journal obtlog.Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Devices == nil {
		return fmt.Errorf("%w: no discoverer", ErrInvalidConfig)
	}
	if c.Registry == nil {
		return fmt.Errorf("%w: no registry", ErrInvalidConfig)
	}
	return nil
}

// Dispatcher issues discovery requests and feeds the registry.
type Dispatcher struct {
	devices   sdk.Discoverer
	resources ResourceDiscoverer
	registry  *device.Registry
	logger    *slog.Logger
	journal   *obtlog.Journal

	mu       sync.RWMutex
	handlers []func(Observation)
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{
		devices:   cfg.Devices,
		resources: cfg.Resources,
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		journal:   obtlog.NewJournal(cfg.Journal, obtlog.ComponentDiscovery),
	}, nil
}

// OnObserved registers a handler called for every discovery response after
// it was applied to the registry. Handlers run on SDK goroutines.
func (d *Dispatcher) OnObserved(fn func(Observation)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, fn)
}

// DiscoverUnowned requests devices in the manufacturer-default state.
func (d *Dispatcher) DiscoverUnowned(scope sdk.Scope) (sdk.Handle, error) {
	return d.discover(OpDiscoverUnowned, device.Unowned, scope)
}

// DiscoverOwned requests devices owned by this tool.
func (d *Dispatcher) DiscoverOwned(scope sdk.Scope) (sdk.Handle, error) {
	return d.discover(OpDiscoverOwned, device.Owned, scope)
}

func (d *Dispatcher) discover(op string, kind device.Ownership, scope sdk.Scope) (sdk.Handle, error) {
	observe := func(desc device.Descriptor) {
		if desc.ID.IsNil() {
			d.debug("dropping observation without device ID", "op", op)
			return
		}
		var change device.Change
		if kind == device.Owned {
			change = d.registry.ObserveOwned(desc)
		} else {
			change = d.registry.ObserveUnowned(desc)
		}
		d.debug("device observed", "op", op, "device_id", desc.ID, "name", desc.Name, "change", change)
		d.notify(Observation{Device: desc, Ownership: kind, Change: change})
	}

	var h sdk.Handle
	var err error
	if kind == device.Owned {
		h, err = d.devices.DiscoverOwned(scope, observe)
	} else {
		h, err = d.devices.DiscoverUnowned(scope, observe)
	}
	if err != nil {
		d.journal.Rejection(op, "", rejectionCode(err))
		return -1, err
	}

	d.journal.Request(op, int(h), "", "", obtlog.RequestEvent{Scope: scope.String()})
	if d.logger != nil {
		d.logger.Info("discovery issued", "op", op, "scope", scope, "handle", h)
	}
	return h, nil
}

// DiscoverResources requests the resources of a known device. Each response
// is passed to fn on an SDK goroutine.
func (d *Dispatcher) DiscoverResources(id device.ID, fn func(sdk.Resource)) (sdk.Handle, error) {
	if d.resources == nil {
		return -1, ErrNoResourceDiscovery
	}
	if _, _, ok := d.registry.Lookup(id); !ok {
		return -1, fmt.Errorf("%w: %s", device.ErrNotFound, id)
	}

	h, err := d.resources.DiscoverResources(id, func(from device.ID, r sdk.Resource) {
		if from != id {
			return
		}
		fn(r)
	})
	if err != nil {
		d.journal.Rejection(OpDiscoverResources, id.String(), rejectionCode(err))
		return -1, err
	}
	d.journal.Request(OpDiscoverResources, int(h), id.String(), "", obtlog.RequestEvent{})
	return h, nil
}

func (d *Dispatcher) notify(o Observation) {
	d.mu.RLock()
	handlers := d.handlers
	d.mu.RUnlock()
	for _, fn := range handlers {
		fn(o)
	}
}

func (d *Dispatcher) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
