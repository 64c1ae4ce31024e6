package cert

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
)

// File names inside the store directory.
const (
	indexFile  = "credentials.yaml"
	certPrefix = "cred-"
)

// FileStore is a file-based implementation of the Store interface.
// Credentials are indexed in a YAML file and certificates are kept as one
// PEM file per credential.
type FileStore struct {
	*MemoryStore
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{MemoryStore: NewMemoryStore(), baseDir: baseDir}
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.baseDir
}

type indexEntry struct {
	ID              int    `yaml:"id"`
	Subject         string `yaml:"subject,omitempty"`
	Type            uint8  `yaml:"type"`
	Usage           string `yaml:"usage,omitempty"`
	PublicEncoding  uint8  `yaml:"public_encoding,omitempty"`
	PrivateEncoding uint8  `yaml:"private_encoding,omitempty"`
	Role            string `yaml:"role,omitempty"`
	Authority       string `yaml:"authority,omitempty"`
	CertFile        string `yaml:"cert_file,omitempty"`
}

type index struct {
	Credentials []indexEntry `yaml:"credentials"`
}

// Save writes the index and certificate files, removing certificate files
// of deleted credentials.
func (s *FileStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return err
	}

	keep := make(map[string]bool)
	var idx index
	for _, id := range s.idsLocked() {
		e := s.entries[id]
		ie := indexEntry{
			ID:              id,
			Type:            uint8(e.cred.Type),
			PublicEncoding:  uint8(e.cred.PublicEncoding),
			PrivateEncoding: uint8(e.cred.PrivateEncoding),
			Role:            e.cred.Role,
			Authority:       e.cred.Authority,
		}
		if !e.cred.Subject.IsNil() {
			ie.Subject = e.cred.Subject.String()
		}
		if e.cred.Usage != cred.UsageNone {
			ie.Usage = e.cred.Usage.String()
		}
		if e.cert != nil {
			ie.CertFile = fmt.Sprintf("%s%d.pem", certPrefix, id)
			if err := WriteCertFile(filepath.Join(s.baseDir, ie.CertFile), e.cert); err != nil {
				return err
			}
			keep[ie.CertFile] = true
		}
		idx.Credentials = append(idx.Credentials, ie)
	}

	data, err := yaml.Marshal(&idx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.baseDir, indexFile), data, 0600); err != nil {
		return err
	}

	stale, _ := filepath.Glob(filepath.Join(s.baseDir, certPrefix+"*.pem"))
	for _, path := range stale {
		if !keep[filepath.Base(path)] {
			_ = os.Remove(path)
		}
	}
	return nil
}

// Load replaces the in-memory contents with the stored credentials.
// A missing directory yields an empty store.
func (s *FileStore) Load() error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var idx index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("parse %s: %w", indexFile, err)
	}

	type loaded struct {
		c    cred.Credential
		cert *x509.Certificate
	}
	entries := make([]loaded, 0, len(idx.Credentials))
	for _, ie := range idx.Credentials {
		c := cred.Credential{
			ID:              ie.ID,
			Type:            cred.Type(ie.Type),
			PublicEncoding:  cred.Encoding(ie.PublicEncoding),
			PrivateEncoding: cred.Encoding(ie.PrivateEncoding),
			Role:            ie.Role,
			Authority:       ie.Authority,
		}
		if ie.Subject != "" {
			if c.Subject, err = device.ParseID(ie.Subject); err != nil {
				return fmt.Errorf("credential %d: %w", ie.ID, err)
			}
		}
		if ie.Usage != "" {
			u, ok := cred.ParseUsage(ie.Usage)
			if !ok {
				return fmt.Errorf("credential %d: unknown usage %q", ie.ID, ie.Usage)
			}
			c.Usage = u
		}
		var parsed *x509.Certificate
		if ie.CertFile != "" {
			if parsed, err = ReadCertFile(filepath.Join(s.baseDir, filepath.Base(ie.CertFile))); err != nil {
				return fmt.Errorf("credential %d: %w", ie.ID, err)
			}
		}
		entries = append(entries, loaded{c: c, cert: parsed})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]*entry)
	s.next = 1
	for _, e := range entries {
		s.restoreLocked(e.c, e.cert)
	}
	return nil
}

// Verify FileStore implements Store.
var _ Store = (*FileStore)(nil)
