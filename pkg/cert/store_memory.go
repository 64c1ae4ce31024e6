package cert

import (
	"crypto/x509"
	"fmt"
	"slices"
	"sync"

	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
)

type entry struct {
	cred cred.Credential
	cert *x509.Certificate
}

// MemoryStore is an in-memory implementation of the Store interface.
type MemoryStore struct {
	mu      sync.RWMutex
	next    int
	entries map[int]*entry
}

// NewMemoryStore creates a new in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{next: 1, entries: make(map[int]*entry)}
}

// AddTrustAnchor installs a trust anchor.
func (s *MemoryStore) AddTrustAnchor(usage cred.Usage, der []byte) (int, error) {
	if !IsTrustAnchorUsage(usage) {
		return 0, fmt.Errorf("%w: %s", ErrNotTrustAnchor, usage)
	}
	c, err := x509.ParseCertificate(der)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCert, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Installing the same anchor twice returns the existing id.
	for id, e := range s.entries {
		if e.cred.Usage == usage && e.cert != nil && e.cert.Equal(c) {
			return id, nil
		}
	}
	return s.putLocked(cred.Credential{
		Subject:        device.Nil,
		Type:           cred.TypeCert,
		Usage:          usage,
		PublicEncoding: cred.EncodingDER,
	}, c), nil
}

// TrustAnchors returns the anchors with the given usage, ordered by id.
func (s *MemoryStore) TrustAnchors(usage cred.Usage) []*x509.Certificate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*x509.Certificate
	for _, id := range s.idsLocked() {
		e := s.entries[id]
		if e.cred.Usage == usage && e.cert != nil {
			out = append(out, e.cert)
		}
	}
	return out
}

// AddCredential stores a credential with optional DER certificate material.
func (s *MemoryStore) AddCredential(c cred.Credential, der []byte) (int, error) {
	var parsed *x509.Certificate
	if len(der) > 0 {
		var err error
		if parsed, err = x509.ParseCertificate(der); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidCert, err)
		}
		if c.PublicEncoding == cred.EncodingUnknown {
			c.PublicEncoding = cred.EncodingDER
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(c, parsed), nil
}

func (s *MemoryStore) putLocked(c cred.Credential, cert *x509.Certificate) int {
	id := s.next
	s.next++
	c.ID = id
	s.entries[id] = &entry{cred: c, cert: cert}
	return id
}

// Credentials returns all credentials ordered by id.
func (s *MemoryStore) Credentials() []cred.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.idsLocked()
	out := make([]cred.Credential, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entries[id].cred)
	}
	return out
}

// Certificate returns the certificate stored with a credential.
func (s *MemoryStore) Certificate(id int) (*x509.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.cert == nil {
		return nil, fmt.Errorf("%w: %d", ErrCertNotFound, id)
	}
	return e.cert, nil
}

// Delete removes a credential.
func (s *MemoryStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: %d", ErrCertNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Reset removes every credential and restarts id assignment.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]*entry)
	s.next = 1
}

// Save is a no-op for in-memory stores.
func (s *MemoryStore) Save() error {
	return nil
}

// Load is a no-op for in-memory stores.
func (s *MemoryStore) Load() error {
	return nil
}

func (s *MemoryStore) idsLocked() []int {
	ids := make([]int, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// restoreLocked inserts an entry under a fixed id.
func (s *MemoryStore) restoreLocked(c cred.Credential, cert *x509.Certificate) {
	s.entries[c.ID] = &entry{cred: c, cert: cert}
	if c.ID >= s.next {
		s.next = c.ID + 1
	}
}

// Verify MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
