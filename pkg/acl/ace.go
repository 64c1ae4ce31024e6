package acl

import (
	"fmt"
	"strings"

	"github.com/secure-iot/obt-go/pkg/device"
)

// ACE is an access control entry.
//
// An ACE is mutable while it is being built; call Validate before handing it
// to a device.
type ACE struct {
	// ID is the ACE identifier assigned by the device. Zero until provisioned.
	ID int

	Subject     Subject
	Resources   []ResourceMatch
	Permissions Permission
}

// NewACE starts an ACE for the given subject with no resources and no
// permissions.
func NewACE(subject Subject) *ACE {
	return &ACE{Subject: subject}
}

// AddResource appends a resource match.
func (a *ACE) AddResource(r ResourceMatch) error {
	if len(a.Resources) >= MaxResources {
		return fmt.Errorf("%w: limit is %d", ErrTooManyResources, MaxResources)
	}
	a.Resources = append(a.Resources, r)
	return nil
}

// SetPermissions replaces the permission set.
func (a *ACE) SetPermissions(p Permission) {
	a.Permissions = p & PermAll
}

// AddPermission adds bits to the permission set.
func (a *ACE) AddPermission(p Permission) {
	a.Permissions |= p & PermAll
}

// Validate enforces the submission rules.
func (a *ACE) Validate() error {
	if err := a.Subject.Validate(); err != nil {
		return err
	}
	if len(a.Resources) == 0 {
		return ErrNoResources
	}
	if len(a.Resources) > MaxResources {
		return fmt.Errorf("%w: %d > %d", ErrTooManyResources, len(a.Resources), MaxResources)
	}
	for i, r := range a.Resources {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("resource %d: %w", i, err)
		}
	}
	if a.Permissions&PermAll == PermNone {
		return ErrNoPermissions
	}
	return nil
}

// Clone returns a deep copy of the ACE.
func (a *ACE) Clone() *ACE {
	c := *a
	c.Resources = append([]ResourceMatch(nil), a.Resources...)
	return &c
}

// Truncate cuts the role subject and every href to their limits. Fields set
// through struct literals bypass the truncating constructors.
func (a *ACE) Truncate() {
	if a.Subject.Kind == SubjectRole {
		a.Subject.Role = a.Subject.Role.Truncated()
	}
	for i := range a.Resources {
		a.Resources[i].Href = Truncate(a.Resources[i].Href, MaxHrefLength)
	}
}

// String returns a one-line summary of the ACE.
func (a *ACE) String() string {
	res := make([]string, len(a.Resources))
	for i, r := range a.Resources {
		res[i] = r.String()
	}
	return fmt.Sprintf("aceid=%d subject=%s resources=[%s] permission=%s",
		a.ID, a.Subject, strings.Join(res, ","), a.Permissions)
}

// AuthCryptWildcardACE returns an ACE granting auth-crypt connections access
// to all resources with the given permissions.
func AuthCryptWildcardACE(p Permission) *ACE {
	ace := NewACE(ConnectionSubject(ConnAuthCrypt))
	ace.Resources = []ResourceMatch{WildcardResource(WildcardAll)}
	ace.SetPermissions(p)
	return ace
}

// RoleWildcardACE returns an ACE granting a role access to all resources
// with the given permissions.
func RoleWildcardACE(role, authority string, p Permission) *ACE {
	ace := NewACE(RoleSubject(role, authority))
	ace.Resources = []ResourceMatch{WildcardResource(WildcardAll)}
	ace.SetPermissions(p)
	return ace
}

// ACL is the access control list of a device as retrieved from it.
type ACL struct {
	// ResourceOwner is the device that owns the ACL resource.
	ResourceOwner device.ID

	Entries []ACE
}

// Find returns the entry with the given ACE ID.
func (l *ACL) Find(aceID int) (ACE, bool) {
	for _, e := range l.Entries {
		if e.ID == aceID {
			return e, true
		}
	}
	return ACE{}, false
}
