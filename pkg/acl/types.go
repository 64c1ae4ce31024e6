package acl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/secure-iot/obt-go/pkg/device"
)

// Field limits.
const (
	// MaxRoleLength is the maximum role name length in characters.
	MaxRoleLength = 64

	// MaxAuthorityLength is the maximum role authority length in characters.
	MaxAuthorityLength = 64

	// MaxHrefLength is the maximum resource href length in characters.
	MaxHrefLength = 63

	// MaxResources is the maximum number of resources in one ACE.
	MaxResources = 100
)

// Validation errors.
var (
	ErrNoResources       = errors.New("ACE has no resources")
	ErrNoPermissions     = errors.New("ACE has no permissions")
	ErrTooManyResources  = errors.New("ACE has too many resources")
	ErrInvalidSubject    = errors.New("invalid ACE subject")
	ErrInvalidResource   = errors.New("invalid ACE resource")
	ErrInvalidPermission = errors.New("invalid permission")
	ErrEmptyRoleChain    = errors.New("role chain is empty")
)

// Truncate shortens s to at most n characters.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Permission is a bitset of ACE permissions.
type Permission uint8

// Permission bits.
const (
	PermCreate Permission = 1 << iota
	PermRetrieve
	PermUpdate
	PermDelete
	PermNotify

	// PermNone is the empty permission set.
	PermNone Permission = 0

	// PermAll grants every operation.
	PermAll = PermCreate | PermRetrieve | PermUpdate | PermDelete | PermNotify
)

var permissionNames = []struct {
	bit  Permission
	name string
	flag byte
}{
	{PermCreate, "CREATE", 'c'},
	{PermRetrieve, "RETRIEVE", 'r'},
	{PermUpdate, "UPDATE", 'u'},
	{PermDelete, "DELETE", 'd'},
	{PermNotify, "NOTIFY", 'n'},
}

// Has reports whether all bits of q are set in p.
func (p Permission) Has(q Permission) bool {
	return p&q == q
}

// String returns the permission names joined by "|".
func (p Permission) String() string {
	if p == PermNone {
		return "NONE"
	}
	var names []string
	for _, pn := range permissionNames {
		if p.Has(pn.bit) {
			names = append(names, pn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParsePermissions parses a flag string such as "ru" or "crudn".
func ParsePermissions(s string) (Permission, error) {
	var p Permission
	for _, c := range strings.ToLower(strings.TrimSpace(s)) {
		found := false
		for _, pn := range permissionNames {
			if byte(c) == pn.flag {
				p |= pn.bit
				found = true
				break
			}
		}
		if !found {
			return PermNone, fmt.Errorf("%w: %q", ErrInvalidPermission, c)
		}
	}
	return p, nil
}

// ConnectionType is the connection-type subject of an ACE.
type ConnectionType uint8

const (
	// ConnAnonClear matches unauthenticated, unencrypted requests.
	ConnAnonClear ConnectionType = iota

	// ConnAuthCrypt matches authenticated, encrypted requests.
	ConnAuthCrypt
)

// String returns the connection type name.
func (c ConnectionType) String() string {
	switch c {
	case ConnAnonClear:
		return "anon-clear"
	case ConnAuthCrypt:
		return "auth-crypt"
	default:
		return "unknown"
	}
}

// Role is a role identity: a role name with an optional authority.
type Role struct {
	Name      string
	Authority string
}

// NewRole returns a role with name and authority truncated to their limits.
func NewRole(name, authority string) Role {
	return Role{
		Name:      Truncate(name, MaxRoleLength),
		Authority: Truncate(authority, MaxAuthorityLength),
	}
}

// Truncated returns r with name and authority cut to their limits.
func (r Role) Truncated() Role {
	return NewRole(r.Name, r.Authority)
}

// String returns "name" or "name@authority".
func (r Role) String() string {
	if r.Authority == "" {
		return r.Name
	}
	return r.Name + "@" + r.Authority
}

// RoleChain is an ordered list of role identities for a role certificate.
type RoleChain []Role

// Add appends a role identity, truncating its fields.
func (c *RoleChain) Add(name, authority string) {
	*c = append(*c, NewRole(name, authority))
}

// Truncated returns a copy of the chain with every role truncated.
func (c RoleChain) Truncated() RoleChain {
	if c == nil {
		return nil
	}
	out := make(RoleChain, len(c))
	for i, r := range c {
		out[i] = r.Truncated()
	}
	return out
}

// Validate checks that the chain is non-empty and every role has a name.
func (c RoleChain) Validate() error {
	if len(c) == 0 {
		return ErrEmptyRoleChain
	}
	for i, r := range c {
		if r.Name == "" {
			return fmt.Errorf("%w: role %d has no name", ErrInvalidSubject, i)
		}
	}
	return nil
}

// SubjectKind identifies the subject variant of an ACE.
type SubjectKind uint8

const (
	SubjectConnection SubjectKind = iota
	SubjectDevice
	SubjectRole
)

// String returns the subject kind name.
func (k SubjectKind) String() string {
	switch k {
	case SubjectConnection:
		return "CONNECTION"
	case SubjectDevice:
		return "DEVICE"
	case SubjectRole:
		return "ROLE"
	default:
		return "UNKNOWN"
	}
}

// Subject is the subject of an ACE. Only the field matching Kind is used.
type Subject struct {
	Kind       SubjectKind
	Connection ConnectionType
	Device     device.ID
	Role       Role
}

// ConnectionSubject returns a connection-type subject.
func ConnectionSubject(c ConnectionType) Subject {
	return Subject{Kind: SubjectConnection, Connection: c}
}

// DeviceSubject returns a device subject.
func DeviceSubject(id device.ID) Subject {
	return Subject{Kind: SubjectDevice, Device: id}
}

// RoleSubject returns a role subject with truncated fields.
func RoleSubject(name, authority string) Subject {
	return Subject{Kind: SubjectRole, Role: NewRole(name, authority)}
}

// Validate checks that the subject is well formed.
func (s Subject) Validate() error {
	switch s.Kind {
	case SubjectConnection:
		if s.Connection != ConnAnonClear && s.Connection != ConnAuthCrypt {
			return fmt.Errorf("%w: connection type %d", ErrInvalidSubject, s.Connection)
		}
	case SubjectDevice:
		if s.Device.IsNil() {
			return fmt.Errorf("%w: nil device ID", ErrInvalidSubject)
		}
	case SubjectRole:
		if s.Role.Name == "" {
			return fmt.Errorf("%w: empty role", ErrInvalidSubject)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidSubject, s.Kind)
	}
	return nil
}

// String returns a display form of the subject.
func (s Subject) String() string {
	switch s.Kind {
	case SubjectConnection:
		return s.Connection.String()
	case SubjectDevice:
		return "uuid:" + s.Device.String()
	case SubjectRole:
		return "role:" + s.Role.String()
	default:
		return "unknown"
	}
}

// Wildcard is a resource wildcard.
type Wildcard uint8

const (
	// WildcardNone means the resource is matched by href.
	WildcardNone Wildcard = iota

	// WildcardAll matches all non-configuration resources ("*").
	WildcardAll

	// WildcardAllSecured matches resources with at least one secured endpoint ("+").
	WildcardAllSecured

	// WildcardAllPublic matches resources with at least one unsecured endpoint ("-").
	WildcardAllPublic
)

// Symbol returns the wire symbol of the wildcard, or "" for WildcardNone.
func (w Wildcard) Symbol() string {
	switch w {
	case WildcardAll:
		return "*"
	case WildcardAllSecured:
		return "+"
	case WildcardAllPublic:
		return "-"
	default:
		return ""
	}
}

// String returns the wildcard name.
func (w Wildcard) String() string {
	switch w {
	case WildcardNone:
		return "NONE"
	case WildcardAll:
		return "ALL"
	case WildcardAllSecured:
		return "ALL_SECURED"
	case WildcardAllPublic:
		return "ALL_PUBLIC"
	default:
		return "UNKNOWN"
	}
}

func parseWildcard(sym string) (Wildcard, bool) {
	switch sym {
	case "*":
		return WildcardAll, true
	case "+":
		return WildcardAllSecured, true
	case "-":
		return WildcardAllPublic, true
	default:
		return WildcardNone, false
	}
}

// ResourceMatch selects resources by href or by wildcard. Exactly one of the
// two is set.
type ResourceMatch struct {
	Href     string
	Wildcard Wildcard
}

// HrefResource returns a resource match for one path, truncated to MaxHrefLength.
func HrefResource(href string) ResourceMatch {
	return ResourceMatch{Href: Truncate(href, MaxHrefLength)}
}

// WildcardResource returns a wildcard resource match.
func WildcardResource(w Wildcard) ResourceMatch {
	return ResourceMatch{Wildcard: w}
}

// Validate checks that exactly one of Href and Wildcard is set.
func (r ResourceMatch) Validate() error {
	hasHref := r.Href != ""
	hasWC := r.Wildcard != WildcardNone
	switch {
	case hasHref && hasWC:
		return fmt.Errorf("%w: both href and wildcard set", ErrInvalidResource)
	case !hasHref && !hasWC:
		return fmt.Errorf("%w: neither href nor wildcard set", ErrInvalidResource)
	case hasWC && r.Wildcard.Symbol() == "":
		return fmt.Errorf("%w: wildcard %d", ErrInvalidResource, r.Wildcard)
	}
	return nil
}

// String returns the href or wildcard symbol.
func (r ResourceMatch) String() string {
	if r.Wildcard != WildcardNone {
		return r.Wildcard.Symbol()
	}
	return r.Href
}
