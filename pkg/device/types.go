package device

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/google/uuid"
)

// Registry errors.
var (
	ErrNotFound         = errors.New("device not found")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrTransferPending  = errors.New("ownership transfer already in flight")
	ErrInvalidID        = errors.New("invalid device ID")
)

// ID is the 128-bit device identifier.
type ID uuid.UUID

// Nil is the zero device ID.
var Nil ID

// NewID returns a random device ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical textual form of a device ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return ID(u), nil
}

// MustParseID is like ParseID but panics on error.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical textual form of the ID.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first eight hex digits, for compact display.
func (id ID) Short() string {
	return id.String()[:8]
}

// IsNil reports whether id is the zero ID.
func (id ID) IsNil() bool {
	return id == Nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	*id = ID(u)
	return nil
}

// Endpoint is one network endpoint of a device.
type Endpoint struct {
	// Scheme is the transport scheme, e.g. "coap" or "coaps".
	Scheme string `yaml:"scheme"`

	// Host is an IP address or hostname.
	Host string `yaml:"host"`

	// Port is the transport port.
	Port uint16 `yaml:"port"`
}

// Secured reports whether the endpoint uses a secured scheme.
func (e Endpoint) Secured() bool {
	return e.Scheme == "coaps" || e.Scheme == "coaps+tcp"
}

// String returns the endpoint as a URI.
func (e Endpoint) String() string {
	scheme := e.Scheme
	if scheme == "" {
		scheme = "coap"
	}
	return scheme + "://" + net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// Descriptor describes a discovered device.
// Only Name may change after the first observation.
type Descriptor struct {
	ID        ID
	Name      string
	Endpoints []Endpoint
}

// Clone returns a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	c := d
	if d.Endpoints != nil {
		c.Endpoints = make([]Endpoint, len(d.Endpoints))
		copy(c.Endpoints, d.Endpoints)
	}
	return c
}

// String returns "<id> - <name>", the form used in selection lists.
func (d Descriptor) String() string {
	return d.ID.String() + " - " + d.Name
}

// Ownership identifies the registry collection a device belongs to.
type Ownership uint8

const (
	// Unowned devices are in their manufacturer-default state.
	Unowned Ownership = iota

	// Owned devices have been claimed by this tool.
	Owned
)

// String returns the ownership name.
func (o Ownership) String() string {
	switch o {
	case Unowned:
		return "UNOWNED"
	case Owned:
		return "OWNED"
	default:
		return "UNKNOWN"
	}
}

// Change describes the effect of a registry operation.
type Change uint8

const (
	// ChangeNone means the registry already held identical state.
	ChangeNone Change = iota

	// ChangeAdded means the device was inserted into a collection.
	ChangeAdded

	// ChangeRenamed means an existing entry received a new name.
	ChangeRenamed

	// ChangePromoted means the device moved from unowned to owned.
	ChangePromoted

	// ChangeIgnored means the observation conflicted with current state
	// (already owned, or transfer in flight) and was dropped.
	ChangeIgnored

	// ChangeRemoved means the device left a collection.
	ChangeRemoved
)

// String returns the change name.
func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "NONE"
	case ChangeAdded:
		return "ADDED"
	case ChangeRenamed:
		return "RENAMED"
	case ChangePromoted:
		return "PROMOTED"
	case ChangeIgnored:
		return "IGNORED"
	case ChangeRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// Transition is reported to OnChange listeners after a mutation.
type Transition struct {
	Change Change

	// Collection is the collection affected. For ChangeRemoved it is the
	// collection the device left.
	Collection Ownership

	Device Descriptor
}
