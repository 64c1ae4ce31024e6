package obt

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/discovery"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/metrics"
	"github.com/secure-iot/obt-go/pkg/otm"
	"github.com/secure-iot/obt-go/pkg/provision"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Service errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrClosed        = errors.New("service closed")
)

// OpResetTool is the journal operation name of a tool reset.
const OpResetTool = "tool.reset"

// Config configures a Service.
type Config struct {
	// SDK is the provisioning SDK. Required. The Service closes it.
	SDK sdk.Provisioner

	// Discovery overrides the SDK for device discovery. Optional. If it
	// implements io.Closer it is closed with the Service.
	Discovery sdk.Discoverer

	// Policy applies to failed ownership transfers.
	Policy otm.FailurePolicy

	// Logger is used for operational logging. Nil disables logging.
	Logger *slog.Logger

	// Journal receives operation events. If it implements io.Closer it is
	// closed with the Service. Nil disables the journal.
	Journal obtlog.Logger

	// Metrics, when set, receives operation events and registry sizes.
	Metrics *metrics.Metrics
}

// DefaultConfig returns a configuration with the LeaveRemoved policy.
func DefaultConfig() Config {
	return Config{Policy: otm.LeaveRemoved}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SDK == nil {
		return fmt.Errorf("%w: no SDK", ErrInvalidConfig)
	}
	if c.Policy != otm.LeaveRemoved && c.Policy != otm.RollbackOnFailure {
		return fmt.Errorf("%w: policy %d", ErrInvalidConfig, c.Policy)
	}
	return nil
}

// Service is the onboarding tool core.
type Service struct {
	sdk      sdk.Provisioner
	registry *device.Registry
	disc     *discovery.Dispatcher
	orch     *otm.Orchestrator
	engine   *provision.Engine

	logger  *slog.Logger
	journal *obtlog.Journal
	tool    *obtlog.Journal
	closer  io.Closer
	browser io.Closer
	metrics *metrics.Metrics

	mu        sync.Mutex
	closed    bool
	closeErr  error
	closeOnce sync.Once
}

// New creates a Service and its components.
func New(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var sinks []obtlog.Logger
	if cfg.Journal != nil {
		sinks = append(sinks, cfg.Journal)
	}
	if cfg.Metrics != nil {
		sinks = append(sinks, cfg.Metrics)
	}
	var journal obtlog.Logger
	switch len(sinks) {
	case 0:
	case 1:
		journal = sinks[0]
	default:
		journal = obtlog.NewMultiLogger(sinks...)
	}

	registry := device.NewRegistry()
	registry.SetLogger(cfg.Logger)

	discoverer := cfg.Discovery
	if discoverer == nil {
		discoverer = cfg.SDK
	}
	disc, err := discovery.NewDispatcher(discovery.Config{
		Devices:   discoverer,
		Resources: cfg.SDK,
		Registry:  registry,
		Logger:    cfg.Logger,
		Journal:   journal,
	})
	if err != nil {
		return nil, err
	}

	orch, err := otm.New(otm.Config{
		SDK:      cfg.SDK,
		Registry: registry,
		Policy:   cfg.Policy,
		Logger:   cfg.Logger,
		Journal:  journal,
	})
	if err != nil {
		return nil, err
	}

	engine, err := provision.New(provision.Config{
		SDK:      cfg.SDK,
		Registry: registry,
		Logger:   cfg.Logger,
		Journal:  journal,
	})
	if err != nil {
		return nil, err
	}

	s := &Service{
		sdk:      cfg.SDK,
		registry: registry,
		disc:     disc,
		orch:     orch,
		engine:   engine,
		logger:   cfg.Logger,
		journal:  obtlog.NewJournal(journal, obtlog.ComponentRegistry),
		tool:     obtlog.NewJournal(journal, obtlog.ComponentTool),
		metrics:  cfg.Metrics,
	}
	if c, ok := cfg.Journal.(io.Closer); ok {
		s.closer = c
	}
	if c, ok := cfg.Discovery.(io.Closer); ok {
		s.browser = c
	}
	registry.OnChange(s.onRegistryChange)
	return s, nil
}

func (s *Service) onRegistryChange(t device.Transition) {
	s.journal.Registry(t.Device.ID.String(), obtlog.RegistryEvent{
		Change:     t.Change.String(),
		Collection: t.Collection.String(),
		Name:       t.Device.Name,
	})
	if s.metrics != nil {
		s.metrics.SetDeviceCounts(s.registry.Counts())
	}
}

// Registry returns the device registry.
func (s *Service) Registry() *device.Registry {
	return s.registry
}

// Discovery returns the discovery dispatcher.
func (s *Service) Discovery() *discovery.Dispatcher {
	return s.disc
}

// OTM returns the ownership transfer orchestrator.
func (s *Service) OTM() *otm.Orchestrator {
	return s.orch
}

// Provisioning returns the provisioning engine.
func (s *Service) Provisioning() *provision.Engine {
	return s.engine
}

// Metrics returns the metrics collector, or nil.
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// AllDevices returns owned devices followed by unowned devices, the
// selection order for device-wide operations.
func (s *Service) AllDevices() []device.Descriptor {
	return s.registry.All()
}

// ResetTool resets the SDK and forgets every known device. Devices must be
// rediscovered afterwards.
func (s *Service) ResetTool() error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if err := s.sdk.Reset(); err != nil {
		s.tool.Error(OpResetTool, "", err)
		return fmt.Errorf("reset SDK: %w", err)
	}
	s.registry.ResetAll()
	s.orch.Forget()
	if s.logger != nil {
		s.logger.Info("tool reset")
	}
	return nil
}

// Close releases the discovery backend and the SDK, then closes the
// journal. Later calls return the first result.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		var errs []error
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close discovery: %w", err))
			}
		}
		if err := s.sdk.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close SDK: %w", err))
		}
		if s.closer != nil {
			if err := s.closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close journal: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
