package simulator

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Operation keys used in fail and reject lists.
const (
	OpDiscoverResources = "discover-resources"
	OpJustWorks         = "just-works"
	OpPINRequest        = "pin-request"
	OpRandomPIN         = "random-pin"
	OpCert              = "cert"
	OpPairwise          = "pairwise"
	OpACE               = "ace"
	OpIdentityCert      = "identity-cert"
	OpRoleCert          = "role-cert"
	OpRetrieveCreds     = "retrieve-creds"
	OpDeleteCred        = "delete-cred"
	OpRetrieveACL       = "retrieve-acl"
	OpDeleteACE         = "delete-ace"
	OpHardReset         = "hard-reset"
)

var knownOps = map[string]bool{
	OpDiscoverResources: true,
	OpJustWorks:         true,
	OpPINRequest:        true,
	OpRandomPIN:         true,
	OpCert:              true,
	OpPairwise:          true,
	OpACE:               true,
	OpIdentityCert:      true,
	OpRoleCert:          true,
	OpRetrieveCreds:     true,
	OpDeleteCred:        true,
	OpRetrieveACL:       true,
	OpDeleteACE:         true,
	OpHardReset:         true,
}

// ErrInvalidFleet is returned for malformed fleet descriptions.
var ErrInvalidFleet = errors.New("invalid fleet")

// Fleet describes the simulated network.
type Fleet struct {
	// Latency delays every response.
	Latency time.Duration `yaml:"latency"`

	// Rebroadcast repeats every discovery response this many extra times.
	Rebroadcast int `yaml:"rebroadcast"`

	// DuplicateCompletions delivers every completion twice.
	DuplicateCompletions bool `yaml:"duplicate_completions"`

	Devices []DeviceSpec `yaml:"devices"`
}

// DeviceSpec describes one simulated device.
type DeviceSpec struct {
	// ID is the device UUID. Generated when empty.
	ID device.ID `yaml:"id"`

	Name      string            `yaml:"name"`
	Endpoints []device.Endpoint `yaml:"endpoints"`

	// Scope is the narrowest discovery scope that reaches the device:
	// general, realm-local or site-local. Defaults to general.
	Scope string `yaml:"scope"`

	// Owned starts the device owned by the tool.
	Owned bool `yaml:"owned"`

	// ManufacturerCert gives the device a certificate issued by the
	// simulated manufacturer authority, enabling certificate OTM.
	ManufacturerCert bool `yaml:"manufacturer_cert"`

	// Offline devices ignore discovery and fail every request as
	// unreachable.
	Offline bool `yaml:"offline"`

	// Fail lists operations that fail asynchronously.
	Fail []string `yaml:"fail"`

	// Reject lists operations the SDK refuses to issue.
	Reject []string `yaml:"reject"`

	Resources []ResourceSpec `yaml:"resources"`
}

// ResourceSpec describes a resource hosted by a device.
type ResourceSpec struct {
	Href       string   `yaml:"href"`
	Types      []string `yaml:"rt"`
	Interfaces []string `yaml:"if"`
}

// Validate checks the fleet description.
func (f *Fleet) Validate() error {
	if f.Latency < 0 {
		return fmt.Errorf("%w: negative latency", ErrInvalidFleet)
	}
	if f.Rebroadcast < 0 {
		return fmt.Errorf("%w: negative rebroadcast", ErrInvalidFleet)
	}
	seen := make(map[device.ID]bool)
	for i, d := range f.Devices {
		if !d.ID.IsNil() {
			if seen[d.ID] {
				return fmt.Errorf("%w: device %d: duplicate id %s", ErrInvalidFleet, i, d.ID)
			}
			seen[d.ID] = true
		}
		if d.Scope != "" {
			if _, err := sdk.ParseScope(d.Scope); err != nil {
				return fmt.Errorf("%w: device %d: %v", ErrInvalidFleet, i, err)
			}
		}
		for _, op := range append(append([]string(nil), d.Fail...), d.Reject...) {
			if !knownOps[op] {
				return fmt.Errorf("%w: device %d: unknown operation %q", ErrInvalidFleet, i, op)
			}
		}
		for _, r := range d.Resources {
			if r.Href == "" {
				return fmt.Errorf("%w: device %d: resource without href", ErrInvalidFleet, i)
			}
		}
	}
	return nil
}

// ParseFleet parses a fleet description from YAML bytes.
func ParseFleet(data []byte) (*Fleet, error) {
	var f Fleet
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fleet: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFleet loads and parses a fleet description from a file.
func LoadFleet(path string) (*Fleet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseFleet(data)
}

// DefaultFleet returns a small fleet used when no fleet file is given.
func DefaultFleet() *Fleet {
	return &Fleet{
		Latency: 50 * time.Millisecond,
		Devices: []DeviceSpec{
			{
				Name:      "Smart Light",
				Endpoints: []device.Endpoint{{Scheme: "coaps", Host: "fe80::a1", Port: 5684}},
				Resources: []ResourceSpec{
					{Href: "/a/light", Types: []string{"core.light"}, Interfaces: []string{"oic.if.rw", "oic.if.baseline"}},
					{Href: "/oic/d", Types: []string{"oic.wk.d"}, Interfaces: []string{"oic.if.r"}},
				},
			},
			{
				Name:             "Smart Switch",
				Endpoints:        []device.Endpoint{{Scheme: "coaps", Host: "fe80::a2", Port: 5684}},
				ManufacturerCert: true,
				Resources: []ResourceSpec{
					{Href: "/a/switch", Types: []string{"oic.r.switch.binary"}, Interfaces: []string{"oic.if.a"}},
				},
			},
			{
				Name:      "Thermostat",
				Scope:     "site-local",
				Endpoints: []device.Endpoint{{Scheme: "coaps", Host: "fd00::10", Port: 5684}},
				Resources: []ResourceSpec{
					{Href: "/a/temperature", Types: []string{"oic.r.temperature"}, Interfaces: []string{"oic.if.s"}},
				},
			},
		},
	}
}
