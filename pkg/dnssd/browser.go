package dnssd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/enbility/zeroconf/v3"

	"github.com/secure-iot/obt-go/pkg/sdk"
)

const (
	opDiscoverUnowned = "dnssd.unowned"
	opDiscoverOwned   = "dnssd.owned"
)

// ErrInterfaceNotFound is returned when the configured interface does not exist.
var ErrInterfaceNotFound = errors.New("network interface not found")

// Config configures a Browser.
type Config struct {
	// Interface restricts browsing to one network interface. Empty browses
	// on all multicast-capable interfaces.
	Interface string

	// Window is how long each discovery request listens for responses.
	Window time.Duration

	// Logger is used for browse logging. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the default browser configuration.
func DefaultConfig() Config {
	return Config{Window: 3 * time.Second}
}

// Browser implements sdk.Discoverer over DNS-SD.
type Browser struct {
	config  Config
	opts    []zeroconf.ClientOption
	handles atomic.Int64

	mu      sync.Mutex
	closed  bool
	cancels map[sdk.Handle]context.CancelFunc
	wg      sync.WaitGroup
}

var _ sdk.Discoverer = (*Browser)(nil)

// NewBrowser creates a browser.
func NewBrowser(cfg Config) (*Browser, error) {
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	b := &Browser{
		config:  cfg,
		cancels: make(map[sdk.Handle]context.CancelFunc),
	}
	if cfg.Interface != "" {
		iface, err := net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, errors.Join(ErrInterfaceNotFound, err)
		}
		b.opts = append(b.opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
	}
	return b, nil
}

// DiscoverUnowned browses for devices announcing themselves as unowned.
func (b *Browser) DiscoverUnowned(scope sdk.Scope, h sdk.ObserveHandler) (sdk.Handle, error) {
	return b.browse(opDiscoverUnowned, scope, false, h)
}

// DiscoverOwned browses for devices announcing themselves as owned.
func (b *Browser) DiscoverOwned(scope sdk.Scope, h sdk.ObserveHandler) (sdk.Handle, error) {
	return b.browse(opDiscoverOwned, scope, true, h)
}

func (b *Browser) browse(op string, scope sdk.Scope, owned bool, h sdk.ObserveHandler) (sdk.Handle, error) {
	if scope > sdk.ScopeSiteLocal || h == nil {
		return -1, sdk.Reject(op, sdk.CodeInvalidInput)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return -1, sdk.Reject(op, sdk.CodeClosed)
	}
	handle := sdk.Handle(b.handles.Add(1) - 1)
	ctx, cancel := context.WithTimeout(context.Background(), b.config.Window)
	b.cancels[handle] = cancel
	b.wg.Add(2)
	b.mu.Unlock()

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		removals := removed
		defer b.wg.Done()
		defer b.finish(handle)

		seen := make(announced)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				a, err := fromZeroconf(entry).Decode(scope)
				if err != nil {
					b.debug("skipping service entry", "instance", entry.Instance, "error", err)
					continue
				}
				if a.Owned != owned || !seen.fresh(a.Device) {
					continue
				}
				h(a.Device)
			case _, ok := <-removals:
				if !ok {
					removals = nil
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer b.wg.Done()
		if err := zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, b.opts...); err != nil {
			b.debug("browse failed", "op", op, "error", err)
			cancel()
		}
	}()

	b.debug("browsing", "op", op, "handle", handle, "scope", scope)
	return handle, nil
}

func (b *Browser) finish(h sdk.Handle) {
	b.mu.Lock()
	cancel := b.cancels[h]
	delete(b.cancels, h)
	b.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close stops every running browse and waits for them to finish.
func (b *Browser) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for _, cancel := range b.cancels {
		cancel()
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

// fromZeroconf converts a zeroconf entry to a ServiceEntry.
func fromZeroconf(entry *zeroconf.ServiceEntry) *ServiceEntry {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return &ServiceEntry{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     uint16(entry.Port),
		Text:     entry.Text,
		Addrs:    addrs,
	}
}

func (b *Browser) debug(msg string, args ...any) {
	if b.config.Logger != nil {
		b.config.Logger.Debug(msg, args...)
	}
}
