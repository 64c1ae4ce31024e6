package otm

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/secure-iot/obt-go/pkg/device"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Config configures an Orchestrator.
type Config struct {
	// SDK performs the transfers. Required.
	SDK Transferrer

	// Registry holds the devices. Required.
	Registry *device.Registry

	// Policy applies to failed transfers.
	Policy FailurePolicy

	// Logger is used for operational logging. Nil disables logging.
	Logger *slog.Logger

	// Journal receives request events. Nil disables the journal.
	Journal obtlog.Logger
}

// DefaultConfig returns a configuration with the LeaveRemoved policy.
// SDK and Registry must still be set.
func DefaultConfig() Config {
	return Config{Policy: LeaveRemoved}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SDK == nil {
		return fmt.Errorf("%w: no SDK", ErrInvalidConfig)
	}
	if c.Registry == nil {
		return fmt.Errorf("%w: no registry", ErrInvalidConfig)
	}
	if c.Policy != LeaveRemoved && c.Policy != RollbackOnFailure {
		return fmt.Errorf("%w: policy %d", ErrInvalidConfig, c.Policy)
	}
	return nil
}

// Orchestrator runs ownership transfers against the registry.
type Orchestrator struct {
	sdk      Transferrer
	registry *device.Registry
	policy   FailurePolicy
	logger   *slog.Logger
	journal  *obtlog.Journal

	mu       sync.RWMutex
	states   map[device.ID]State
	handlers []func(StateChange)
}

// New creates an Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{
		sdk:      cfg.SDK,
		registry: cfg.Registry,
		policy:   cfg.Policy,
		logger:   cfg.Logger,
		journal:  obtlog.NewJournal(cfg.Journal, obtlog.ComponentOTM),
		states:   make(map[device.ID]State),
	}, nil
}

// Policy returns the failure policy.
func (o *Orchestrator) Policy() FailurePolicy {
	return o.policy
}

// OnStateChange registers a handler for transfer state changes. Terminal
// changes are reported on SDK goroutines.
func (o *Orchestrator) OnStateChange(fn func(StateChange)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handlers = append(o.handlers, fn)
}

// State returns the last known transfer state of a device.
func (o *Orchestrator) State(id device.ID) (State, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s, ok := o.states[id]
	return s, ok
}

// JustWorks transfers ownership without out-of-band input.
func (o *Orchestrator) JustWorks(id device.ID) (*Transfer, error) {
	return o.transfer(sdk.OTMJustWorks, OpJustWorks, id, func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return o.sdk.PerformJustWorksOTM(id, h)
	})
}

// RequestRandomPIN asks an unowned device to generate and display a PIN.
// The device stays in the unowned collection.
func (o *Orchestrator) RequestRandomPIN(id device.ID) (*sdk.Request[sdk.Done], error) {
	if !o.registry.IsUnowned(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotUnowned, id)
	}
	req, err := sdk.Issue(o.journal, OpPINRequest, sdk.Target{Device: id}, func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return o.sdk.RequestRandomPIN(id, h)
	})
	if err != nil {
		return nil, err
	}
	o.setState(id, sdk.OTMRandomPIN, StatePINRequested, nil)
	return req, nil
}

// RandomPIN transfers ownership using the PIN displayed by the device.
// PINs longer than MaxPINLength are truncated.
func (o *Orchestrator) RandomPIN(id device.ID, pin string) (*Transfer, error) {
	if pin == "" {
		return nil, ErrEmptyPIN
	}
	pin = TruncatePIN(pin)
	return o.transfer(sdk.OTMRandomPIN, OpRandomPIN, id, func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return o.sdk.PerformRandomPinOTM(id, pin, h)
	})
}

// Certificate transfers ownership using the device's manufacturer
// certificate, validated against an installed manufacturer trust anchor.
func (o *Orchestrator) Certificate(id device.ID) (*Transfer, error) {
	return o.transfer(sdk.OTMCertificate, OpCert, id, func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return o.sdk.PerformCertOTM(id, h)
	})
}

func (o *Orchestrator) transfer(method sdk.OTMMethod, op string, id device.ID, issue func(result.Handler[sdk.Done]) (sdk.Handle, error)) (*Transfer, error) {
	desc, err := o.registry.BeginTransfer(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotUnowned, err)
	}

	req, err := sdk.Issue(o.journal, op, sdk.Target{Device: id, Detail: method.String()}, issue)
	if err != nil {
		// Never sent; the device was not moved.
		o.registry.AbortTransfer(id, true)
		return nil, err
	}
	o.registry.CommitTransfer(id)

	o.setState(id, method, StateTransferRequested, nil)
	if o.logger != nil {
		o.logger.Info("ownership transfer issued", "device_id", id, "method", method, "handle", req.Handle)
	}

	t := &Transfer{
		Pending: result.NewPending[sdk.Done](),
		Method:  method,
		Device:  desc,
		Handle:  req.Handle,
		op:      op,
	}
	req.Then(func(r result.Result[sdk.Done]) {
		o.resolve(t, r)
	})
	return t, nil
}

func (o *Orchestrator) resolve(t *Transfer, r result.Result[sdk.Done]) {
	id := t.Device.ID
	if r.Err == nil {
		if err := o.registry.MoveToOwned(id); err != nil {
			// Removed by a reset while in flight.
			o.journal.Error(t.op, id.String(), err)
			t.Resolve(result.Err[sdk.Done](err))
			return
		}
		o.setState(id, t.Method, StateOwned, nil)
		if o.logger != nil {
			o.logger.Info("ownership transfer succeeded", "device_id", id, "method", t.Method)
		}
		t.Resolve(r)
		return
	}

	o.registry.AbortTransfer(id, o.policy == RollbackOnFailure)
	o.setState(id, t.Method, StateTransferFailed, r.Err)
	if o.logger != nil {
		o.logger.Warn("ownership transfer failed", "device_id", id, "method", t.Method, "error", r.Err, "policy", o.policy)
	}
	t.Resolve(r)
}

func (o *Orchestrator) setState(id device.ID, method sdk.OTMMethod, to State, err error) {
	o.mu.Lock()
	from, ok := o.states[id]
	if !ok {
		from = StateDiscovered
	}
	o.states[id] = to
	handlers := o.handlers
	o.mu.Unlock()

	change := StateChange{Device: id, Method: method, From: from, To: to, Err: err}
	for _, fn := range handlers {
		fn(change)
	}
}

// Forget drops the transfer state of every device.
func (o *Orchestrator) Forget() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = make(map[device.ID]State)
}
