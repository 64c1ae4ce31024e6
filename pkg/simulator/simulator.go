package simulator

import (
	"crypto/subtle"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cert"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Operation names used for tool-local requests.
const (
	opDiscoverUnowned = "discover-unowned"
	opDiscoverOwned   = "discover-owned"
	opOwnCreds        = "own-creds"
	opDeleteOwnCred   = "own-creds.delete"
	opTrustAnchor     = "trust-anchor"
	opReset           = "reset"
)

// Config configures a Simulator.
type Config struct {
	// Fleet describes the simulated devices. Nil uses DefaultFleet.
	Fleet *Fleet

	// Latency overrides the fleet latency when non-negative.
	Latency time.Duration

	// CredsDir persists the tool's credentials. Empty keeps them in memory.
	CredsDir string

	// Logger is used for simulator logging. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns a Config using the default fleet and its latency.
func DefaultConfig() Config {
	return Config{Latency: -1}
}

// Simulator implements sdk.Provisioner over simulated devices.
type Simulator struct {
	logger      *slog.Logger
	latency     time.Duration
	rebroadcast int
	duplicate   bool
	store       cert.Store
	mfg         *cert.Authority

	handles atomic.Int64
	wg      sync.WaitGroup
	done    chan struct{}

	mu      sync.Mutex
	closed  bool
	tool    device.ID
	toolCA  *cert.Authority
	order   []device.ID
	devices map[device.ID]*simDevice
}

var _ sdk.Provisioner = (*Simulator)(nil)

// New creates a simulator for the configured fleet.
func New(cfg Config) (*Simulator, error) {
	fleet := cfg.Fleet
	if fleet == nil {
		fleet = DefaultFleet()
	}
	if err := fleet.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		logger:      cfg.Logger,
		latency:     fleet.Latency,
		rebroadcast: fleet.Rebroadcast,
		duplicate:   fleet.DuplicateCompletions,
		done:        make(chan struct{}),
		devices:     make(map[device.ID]*simDevice),
	}
	if cfg.Latency >= 0 {
		s.latency = cfg.Latency
	}

	if cfg.CredsDir != "" {
		fs := cert.NewFileStore(cfg.CredsDir)
		if err := fs.Load(); err != nil {
			return nil, fmt.Errorf("loading credentials: %w", err)
		}
		s.store = fs
	} else {
		s.store = cert.NewMemoryStore()
	}

	var err error
	s.mfg, err = cert.GenerateAuthority("Simulated Manufacturer CA", "obt-go simulator")
	if err != nil {
		return nil, fmt.Errorf("generating manufacturer CA: %w", err)
	}
	if err := s.newToolIdentity(); err != nil {
		return nil, err
	}

	for _, spec := range fleet.Devices {
		if spec.ID.IsNil() {
			spec.ID = device.NewID()
		}
		scope, _ := sdk.ParseScope(spec.Scope)
		d := newSimDevice(spec, scope)
		if d.key, err = cert.GenerateKeyPair(); err != nil {
			return nil, fmt.Errorf("device %s: %w", spec.Name, err)
		}
		if spec.ManufacturerCert {
			if d.mfgCert, err = s.mfg.IssueIdentity(spec.ID, d.key.PublicKey); err != nil {
				return nil, fmt.Errorf("device %s: %w", spec.Name, err)
			}
		}
		if spec.Owned {
			secret, err := randomSecret()
			if err != nil {
				return nil, err
			}
			if err := s.ownLocked(d, secret, infoJustWorks); err != nil {
				return nil, fmt.Errorf("device %s: %w", spec.Name, err)
			}
		}
		s.order = append(s.order, spec.ID)
		s.devices[spec.ID] = d
	}
	s.saveStore()

	s.debug("simulator started", "devices", len(s.order), "tool_id", s.tool, "latency", s.latency)
	return s, nil
}

// newToolIdentity generates a tool UUID and authority and installs the
// authority as a root trust anchor. Must be called with mu held or before
// the simulator is shared.
func (s *Simulator) newToolIdentity() error {
	ca, err := cert.GenerateAuthority("Onboarding Tool CA", "")
	if err != nil {
		return fmt.Errorf("generating tool CA: %w", err)
	}
	if _, err := s.store.AddTrustAnchor(cred.UsageTrustCA, ca.Certificate.Raw); err != nil {
		return fmt.Errorf("installing tool CA: %w", err)
	}
	s.tool = device.NewID()
	s.toolCA = ca
	return nil
}

// ToolID returns the UUID the tool currently owns devices as.
func (s *Simulator) ToolID() device.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// ManufacturerCA returns the certificate that signs device manufacturer
// certificates.
func (s *Simulator) ManufacturerCA() *x509.Certificate {
	return s.mfg.Certificate
}

// Store returns the tool's credential store.
func (s *Simulator) Store() cert.Store {
	return s.store
}

// Devices returns the descriptors of every simulated device in fleet order.
func (s *Simulator) Devices() []device.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]device.Descriptor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.devices[id].desc.Clone())
	}
	return out
}

// DisplayedPIN returns the PIN a device currently shows.
func (s *Simulator) DisplayedPIN(id device.ID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok || d.pin == "" {
		return "", false
	}
	return d.pin, true
}

// Owner returns the owner UUID of a device. device.Nil means unowned.
func (s *Simulator) Owner(id device.ID) (device.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok {
		return device.Nil, false
	}
	return d.owner, true
}

// OwnerPSK returns the key a device shares with its owner.
func (s *Simulator) OwnerPSK(id device.ID) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.devices[id]; ok {
		return slices.Clone(d.psk)
	}
	return nil
}

// DiscoverUnowned implements sdk.Discoverer.
func (s *Simulator) DiscoverUnowned(scope sdk.Scope, h sdk.ObserveHandler) (sdk.Handle, error) {
	return s.discover(opDiscoverUnowned, scope, h, func(d *simDevice) bool {
		return d.owner.IsNil()
	})
}

// DiscoverOwned implements sdk.Discoverer.
func (s *Simulator) DiscoverOwned(scope sdk.Scope, h sdk.ObserveHandler) (sdk.Handle, error) {
	return s.discover(opDiscoverOwned, scope, h, func(d *simDevice) bool {
		return d.owner == s.tool
	})
}

func (s *Simulator) discover(op string, scope sdk.Scope, h sdk.ObserveHandler, match func(*simDevice) bool) (sdk.Handle, error) {
	if scope > sdk.ScopeSiteLocal || h == nil {
		return -1, sdk.Reject(op, sdk.CodeInvalidInput)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return -1, sdk.Reject(op, sdk.CodeClosed)
	}
	s.wg.Add(1)
	s.mu.Unlock()
	handle := s.nextHandle()

	go func() {
		defer s.wg.Done()
		for round := 0; round <= s.rebroadcast; round++ {
			if !s.wait() {
				return
			}
			s.mu.Lock()
			var found []device.Descriptor
			for _, id := range s.order {
				if d := s.devices[id]; d.reachable(scope) && match(d) {
					found = append(found, d.desc.Clone())
				}
			}
			s.mu.Unlock()
			for _, d := range found {
				h(d)
			}
		}
	}()
	return handle, nil
}

// DiscoverResources implements sdk.Provisioner.
func (s *Simulator) DiscoverResources(id device.ID, h sdk.ResourceHandler) (sdk.Handle, error) {
	if h == nil {
		return -1, sdk.Reject(OpDiscoverResources, sdk.CodeInvalidInput)
	}
	dev, handle, err := s.begin(OpDiscoverResources, id)
	if err != nil {
		return handle, err
	}
	go func() {
		defer s.wg.Done()
		for round := 0; round <= s.rebroadcast; round++ {
			if !s.wait() {
				return
			}
			s.mu.Lock()
			var found []sdk.Resource
			if !dev.offline && !dev.fail[OpDiscoverResources] {
				for _, r := range dev.resources {
					found = append(found, sdk.Resource{
						Href:       r.Href,
						Types:      slices.Clone(r.Types),
						Interfaces: slices.Clone(r.Interfaces),
						Endpoints:  slices.Clone(r.Endpoints),
					})
				}
			}
			s.mu.Unlock()
			for _, r := range found {
				h(id, r)
			}
		}
	}()
	return handle, nil
}

// PerformJustWorksOTM implements sdk.Provisioner.
func (s *Simulator) PerformJustWorksOTM(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpJustWorks, id, h, func(d *simDevice) error {
		if err := s.requireUnowned(OpJustWorks, d); err != nil {
			return err
		}
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		return s.ownLocked(d, secret, infoJustWorks)
	})
}

// RequestRandomPIN implements sdk.Provisioner. The device logs the PIN it
// displays; tests read it with DisplayedPIN.
func (s *Simulator) RequestRandomPIN(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpPINRequest, id, h, func(d *simDevice) error {
		if err := s.requireUnowned(OpPINRequest, d); err != nil {
			return err
		}
		pin, err := GeneratePIN()
		if err != nil {
			return err
		}
		d.pin = pin
		if s.logger != nil {
			s.logger.Info("device displays PIN", "device_id", d.desc.ID, "name", d.desc.Name, "pin", pin)
		}
		return nil
	})
}

// PerformRandomPinOTM implements sdk.Provisioner.
func (s *Simulator) PerformRandomPinOTM(id device.ID, pin string, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpRandomPIN, id, h, func(d *simDevice) error {
		if err := s.requireUnowned(OpRandomPIN, d); err != nil {
			return err
		}
		if d.pin == "" {
			return result.Fail(OpRandomPIN, d.desc.ID, result.CodeBadRequest, "no PIN displayed")
		}
		if subtle.ConstantTimeCompare([]byte(pin), []byte(d.pin)) != 1 {
			return result.Fail(OpRandomPIN, d.desc.ID, result.CodeVerifyFailed, "PIN mismatch")
		}
		return s.ownLocked(d, []byte(pin), infoRandomPIN)
	})
}

// PerformCertOTM implements sdk.Provisioner. The device's manufacturer
// certificate must chain to an installed manufacturer trust anchor.
func (s *Simulator) PerformCertOTM(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpCert, id, h, func(d *simDevice) error {
		if err := s.requireUnowned(OpCert, d); err != nil {
			return err
		}
		if d.mfgCert == nil {
			return result.Fail(OpCert, d.desc.ID, result.CodeVerifyFailed, "device has no manufacturer certificate")
		}
		if err := cert.Verify(d.mfgCert, s.store.TrustAnchors(cred.UsageMfgTrustCA)); err != nil {
			return result.Fail(OpCert, d.desc.ID, result.CodeVerifyFailed, err.Error())
		}
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		return s.ownLocked(d, secret, infoCert)
	})
}

// ProvisionPairwiseCredentials implements sdk.Provisioner.
func (s *Simulator) ProvisionPairwiseCredentials(a, b device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpPairwise, a, h, func(d *simDevice) error {
		peer := s.devices[b]
		if err := s.requireOwner(OpPairwise, d); err != nil {
			return err
		}
		if err := s.requireOwner(OpPairwise, peer); err != nil {
			return err
		}
		if peer.offline {
			return result.Fail(OpPairwise, b, result.CodeUnreachable, "peer unreachable")
		}
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		if _, err := deriveKey(secret, a, b, infoPairwise); err != nil {
			return err
		}
		d.addCred(cred.Credential{Subject: b, Type: cred.TypePSK, PrivateEncoding: cred.EncodingRaw})
		peer.addCred(cred.Credential{Subject: a, Type: cred.TypePSK, PrivateEncoding: cred.EncodingRaw})
		return nil
	}, b)
}

// ProvisionACE implements sdk.Provisioner.
func (s *Simulator) ProvisionACE(id device.ID, ace *acl.ACE, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	if ace == nil || ace.Validate() != nil {
		return -1, sdk.Reject(OpACE, sdk.CodeInvalidInput)
	}
	sent := ace.Clone()
	return s.issue(OpACE, id, h, func(d *simDevice) error {
		if err := s.requireOwner(OpACE, d); err != nil {
			return err
		}
		list, err := d.loadACL()
		if err != nil {
			return err
		}
		entry := sent.Clone()
		entry.ID = d.nextACE
		d.nextACE++
		list.Entries = append(list.Entries, *entry)
		return d.storeACL(list)
	})
}

// ProvisionIdentityCertificate implements sdk.Provisioner.
func (s *Simulator) ProvisionIdentityCertificate(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpIdentityCert, id, h, func(d *simDevice) error {
		if err := s.requireOwner(OpIdentityCert, d); err != nil {
			return err
		}
		if _, err := s.toolCA.IssueIdentity(d.desc.ID, d.key.PublicKey); err != nil {
			return err
		}
		s.ensureTrustCA(d)
		d.addCred(cred.Credential{
			Subject:         d.desc.ID,
			Type:            cred.TypeCert,
			Usage:           cred.UsageCert,
			PublicEncoding:  cred.EncodingDER,
			PrivateEncoding: cred.EncodingRaw,
		})
		return nil
	})
}

// ProvisionRoleCertificate implements sdk.Provisioner. One role
// credential is installed per role in the chain.
func (s *Simulator) ProvisionRoleCertificate(roles acl.RoleChain, id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	if roles.Validate() != nil {
		return -1, sdk.Reject(OpRoleCert, sdk.CodeInvalidInput)
	}
	chain := slices.Clone(roles)
	return s.issue(OpRoleCert, id, h, func(d *simDevice) error {
		if err := s.requireOwner(OpRoleCert, d); err != nil {
			return err
		}
		s.ensureTrustCA(d)
		for _, r := range chain {
			if _, err := s.toolCA.IssueRole(d.desc.ID, d.key.PublicKey, acl.RoleChain{r}); err != nil {
				return err
			}
			d.addCred(cred.Credential{
				Subject:        d.desc.ID,
				Type:           cred.TypeCert,
				Usage:          cred.UsageRoleCert,
				PublicEncoding: cred.EncodingPEM,
				Role:           r.Name,
				Authority:      r.Authority,
			})
		}
		return nil
	})
}

// RetrieveCredentials implements sdk.Provisioner.
func (s *Simulator) RetrieveCredentials(id device.ID, h result.Handler[[]cred.Credential]) (sdk.Handle, error) {
	dev, handle, err := s.begin(OpRetrieveCreds, id)
	if err != nil {
		return handle, err
	}
	respond(s, OpRetrieveCreds, dev, h, func(d *simDevice) ([]cred.Credential, error) {
		if err := s.requireOwner(OpRetrieveCreds, d); err != nil {
			return nil, err
		}
		return slices.Clone(d.creds), nil
	})
	return handle, nil
}

// DeleteCredential implements sdk.Provisioner.
func (s *Simulator) DeleteCredential(id device.ID, credID int, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpDeleteCred, id, h, func(d *simDevice) error {
		if err := s.requireOwner(OpDeleteCred, d); err != nil {
			return err
		}
		if !d.deleteCred(credID) {
			return result.Fail(OpDeleteCred, d.desc.ID, result.CodeNotFound, fmt.Sprintf("no credential %d", credID))
		}
		return nil
	})
}

// RetrieveACL implements sdk.Provisioner.
func (s *Simulator) RetrieveACL(id device.ID, h result.Handler[*acl.ACL]) (sdk.Handle, error) {
	dev, handle, err := s.begin(OpRetrieveACL, id)
	if err != nil {
		return handle, err
	}
	respond(s, OpRetrieveACL, dev, h, func(d *simDevice) (*acl.ACL, error) {
		if err := s.requireOwner(OpRetrieveACL, d); err != nil {
			return nil, err
		}
		return d.loadACL()
	})
	return handle, nil
}

// DeleteACE implements sdk.Provisioner.
func (s *Simulator) DeleteACE(id device.ID, aceID int, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpDeleteACE, id, h, func(d *simDevice) error {
		if err := s.requireOwner(OpDeleteACE, d); err != nil {
			return err
		}
		list, err := d.loadACL()
		if err != nil {
			return err
		}
		i := slices.IndexFunc(list.Entries, func(e acl.ACE) bool { return e.ID == aceID })
		if i < 0 {
			return result.Fail(OpDeleteACE, d.desc.ID, result.CodeNotFound, fmt.Sprintf("no ACE %d", aceID))
		}
		list.Entries = slices.Delete(list.Entries, i, i+1)
		return d.storeACL(list)
	})
}

// HardReset implements sdk.Provisioner. The tool's credentials for the
// device are removed along with the device's own state.
func (s *Simulator) HardReset(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error) {
	return s.issue(OpHardReset, id, h, func(d *simDevice) error {
		if err := s.requireOwner(OpHardReset, d); err != nil {
			return err
		}
		d.factoryReset()
		for _, c := range s.store.Credentials() {
			if c.Subject != id {
				continue
			}
			if err := s.store.Delete(c.ID); err != nil {
				s.debug("credential not removed on hard reset", "credid", c.ID, "device_id", id, "error", err)
			}
		}
		s.saveStore()
		return nil
	})
}

// RetrieveOwnCredentials implements sdk.Provisioner.
func (s *Simulator) RetrieveOwnCredentials() ([]cred.Credential, error) {
	if err := s.checkOpen(opOwnCreds); err != nil {
		return nil, err
	}
	return s.store.Credentials(), nil
}

// DeleteOwnCredential implements sdk.Provisioner.
func (s *Simulator) DeleteOwnCredential(credID int) error {
	if err := s.checkOpen(opDeleteOwnCred); err != nil {
		return err
	}
	if err := s.store.Delete(credID); err != nil {
		return sdk.Reject(opDeleteOwnCred, sdk.CodeInvalidInput)
	}
	s.saveStore()
	return nil
}

// AddTrustAnchor implements sdk.Provisioner.
func (s *Simulator) AddTrustAnchor(kind sdk.TrustAnchorKind, der []byte) (int, error) {
	if err := s.checkOpen(opTrustAnchor); err != nil {
		return -1, err
	}
	usage := cred.UsageMfgTrustCA
	if kind == sdk.AnchorRoot {
		usage = cred.UsageTrustCA
	}
	id, err := s.store.AddTrustAnchor(usage, der)
	if err != nil {
		s.debug("trust anchor rejected", "kind", kind, "error", err)
		return -1, sdk.Reject(opTrustAnchor, sdk.CodeInvalidInput)
	}
	s.saveStore()
	return id, nil
}

// Reset implements sdk.Provisioner. The tool gets a new UUID and authority;
// devices owned under the previous identity are no longer discovered as
// owned.
func (s *Simulator) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sdk.Reject(opReset, sdk.CodeClosed)
	}
	s.store.Reset()
	if err := s.newToolIdentity(); err != nil {
		return err
	}
	s.saveStore()
	s.debug("simulator reset", "tool_id", s.tool)
	return nil
}

// Close implements sdk.Provisioner. Outstanding requests complete
// immediately; Close returns once every handler has run.
func (s *Simulator) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	return s.store.Save()
}

func (s *Simulator) nextHandle() sdk.Handle {
	return sdk.Handle(s.handles.Add(1) - 1)
}

func (s *Simulator) checkOpen(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sdk.Reject(op, sdk.CodeClosed)
	}
	return nil
}

// begin checks that a request for id (and any peers) can be issued and
// registers it with the wait group.
func (s *Simulator) begin(op string, id device.ID, peers ...device.ID) (*simDevice, sdk.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, -1, sdk.Reject(op, sdk.CodeClosed)
	}
	dev, ok := s.devices[id]
	if !ok {
		return nil, -1, sdk.Reject(op, sdk.CodeUnknownPeer)
	}
	for _, p := range peers {
		if _, ok := s.devices[p]; !ok {
			return nil, -1, sdk.Reject(op, sdk.CodeUnknownPeer)
		}
	}
	if dev.reject[op] {
		return nil, -1, sdk.Reject(op, sdk.CodeBusy)
	}
	s.wg.Add(1)
	return dev, s.nextHandle(), nil
}

// issue starts an operation whose completion carries no payload.
func (s *Simulator) issue(op string, id device.ID, h result.Handler[sdk.Done], fn func(*simDevice) error, peers ...device.ID) (sdk.Handle, error) {
	dev, handle, err := s.begin(op, id, peers...)
	if err != nil {
		return handle, err
	}
	respond(s, op, dev, h, func(d *simDevice) (sdk.Done, error) {
		return sdk.Done{}, fn(d)
	})
	return handle, nil
}

// respond completes a request on its own goroutine. fn runs with mu held;
// the handler runs after it is released.
func respond[T any](s *Simulator, op string, dev *simDevice, h result.Handler[T], fn func(*simDevice) (T, error)) {
	go func() {
		defer s.wg.Done()
		s.wait()

		s.mu.Lock()
		id := dev.desc.ID
		var r result.Result[T]
		switch {
		case dev.offline:
			r = result.Err[T](result.Fail(op, id, result.CodeUnreachable, "device unreachable"))
		case dev.fail[op]:
			r = result.Err[T](result.Fail(op, id, result.CodeError, "request failed"))
		default:
			v, err := fn(dev)
			if err != nil {
				var f *result.Failure
				if !errors.As(err, &f) {
					err = result.Fail(op, id, result.CodeInternal, err.Error())
				}
				r = result.Err[T](err)
			} else {
				r = result.OK(v)
			}
		}
		s.mu.Unlock()

		if h == nil {
			return
		}
		h(r)
		if s.duplicate {
			h(r)
		}
	}()
}

// wait sleeps for the configured latency. It returns false if the
// simulator was closed first.
func (s *Simulator) wait() bool {
	if s.latency <= 0 {
		select {
		case <-s.done:
			return false
		default:
			return true
		}
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.done:
		return false
	}
}

func (s *Simulator) requireUnowned(op string, d *simDevice) error {
	if !d.owner.IsNil() {
		return result.Fail(op, d.desc.ID, result.CodeForbidden, "device already owned")
	}
	return nil
}

func (s *Simulator) requireOwner(op string, d *simDevice) error {
	if d.owner != s.tool {
		return result.Fail(op, d.desc.ID, result.CodeForbidden, "not owned by this tool")
	}
	return nil
}

// ownLocked completes an ownership transfer with a key derived from secret.
func (s *Simulator) ownLocked(d *simDevice, secret []byte, info string) error {
	psk, err := deriveKey(secret, s.tool, d.desc.ID, info)
	if err != nil {
		return err
	}
	d.owner = s.tool
	d.psk = psk
	d.pin = ""
	d.addCred(cred.Credential{Subject: s.tool, Type: cred.TypePSK, PrivateEncoding: cred.EncodingRaw})
	if err := d.storeACL(&acl.ACL{ResourceOwner: s.tool}); err != nil {
		return err
	}
	_, err = s.store.AddCredential(cred.Credential{
		Subject:         d.desc.ID,
		Type:            cred.TypePSK,
		PrivateEncoding: cred.EncodingRaw,
	}, nil)
	s.saveStore()
	return err
}

func (s *Simulator) ensureTrustCA(d *simDevice) {
	if d.hasCred(func(c cred.Credential) bool { return c.Usage == cred.UsageTrustCA }) {
		return
	}
	d.addCred(cred.Credential{
		Subject:        device.Nil,
		Type:           cred.TypeCert,
		Usage:          cred.UsageTrustCA,
		PublicEncoding: cred.EncodingPEM,
	})
}

func (s *Simulator) saveStore() {
	if err := s.store.Save(); err != nil && s.logger != nil {
		s.logger.Warn("failed to save credentials", "error", err)
	}
}

func (s *Simulator) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
