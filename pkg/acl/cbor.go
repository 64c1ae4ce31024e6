package acl

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/secure-iot/obt-go/pkg/device"
)

// aclEncMode encodes ACLs deterministically so equal lists encode to equal bytes.
var aclEncMode cbor.EncMode

func init() {
	var err error
	aclEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create ACL CBOR encoder mode: %v", err))
	}
}

// wireACL is the acl2 resource representation.
type wireACL struct {
	Entries       []wireACE `cbor:"aclist2"`
	ResourceOwner string    `cbor:"rowneruuid,omitempty"`
}

type wireACE struct {
	ID         int            `cbor:"aceid"`
	Subject    wireSubject    `cbor:"subject"`
	Resources  []wireResource `cbor:"resources"`
	Permission uint8          `cbor:"permission"`
}

type wireSubject struct {
	ConnType  string `cbor:"conntype,omitempty"`
	UUID      string `cbor:"uuid,omitempty"`
	Role      string `cbor:"role,omitempty"`
	Authority string `cbor:"authority,omitempty"`
}

type wireResource struct {
	Href     string `cbor:"href,omitempty"`
	Wildcard string `cbor:"wc,omitempty"`
}

// EncodeACL encodes an ACL to its CBOR resource representation.
func EncodeACL(l *ACL) ([]byte, error) {
	w := wireACL{Entries: make([]wireACE, 0, len(l.Entries))}
	if !l.ResourceOwner.IsNil() {
		w.ResourceOwner = l.ResourceOwner.String()
	}
	for i := range l.Entries {
		e := &l.Entries[i]
		we := wireACE{
			ID:         e.ID,
			Subject:    encodeSubject(e.Subject),
			Resources:  make([]wireResource, len(e.Resources)),
			Permission: uint8(e.Permissions),
		}
		for j, r := range e.Resources {
			we.Resources[j] = wireResource{Href: r.Href, Wildcard: r.Wildcard.Symbol()}
		}
		w.Entries = append(w.Entries, we)
	}
	return aclEncMode.Marshal(w)
}

// DecodeACL decodes the CBOR resource representation of an ACL.
func DecodeACL(data []byte) (*ACL, error) {
	var w wireACL
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode acl: %w", err)
	}

	l := &ACL{Entries: make([]ACE, 0, len(w.Entries))}
	if w.ResourceOwner != "" {
		owner, err := device.ParseID(w.ResourceOwner)
		if err != nil {
			return nil, fmt.Errorf("decode acl: rowneruuid: %w", err)
		}
		l.ResourceOwner = owner
	}
	for _, we := range w.Entries {
		subject, err := decodeSubject(we.Subject)
		if err != nil {
			return nil, fmt.Errorf("decode acl: aceid %d: %w", we.ID, err)
		}
		e := ACE{
			ID:          we.ID,
			Subject:     subject,
			Resources:   make([]ResourceMatch, 0, len(we.Resources)),
			Permissions: Permission(we.Permission) & PermAll,
		}
		for _, wr := range we.Resources {
			r := ResourceMatch{Href: wr.Href}
			if wr.Wildcard != "" {
				wc, ok := parseWildcard(wr.Wildcard)
				if !ok {
					return nil, fmt.Errorf("decode acl: aceid %d: %w: wc %q", we.ID, ErrInvalidResource, wr.Wildcard)
				}
				r.Wildcard = wc
			}
			e.Resources = append(e.Resources, r)
		}
		l.Entries = append(l.Entries, e)
	}
	return l, nil
}

func encodeSubject(s Subject) wireSubject {
	switch s.Kind {
	case SubjectConnection:
		return wireSubject{ConnType: s.Connection.String()}
	case SubjectDevice:
		return wireSubject{UUID: s.Device.String()}
	case SubjectRole:
		return wireSubject{Role: s.Role.Name, Authority: s.Role.Authority}
	default:
		return wireSubject{}
	}
}

func decodeSubject(w wireSubject) (Subject, error) {
	switch {
	case w.UUID != "":
		id, err := device.ParseID(w.UUID)
		if err != nil {
			return Subject{}, fmt.Errorf("%w: %v", ErrInvalidSubject, err)
		}
		return DeviceSubject(id), nil
	case w.Role != "":
		return RoleSubject(w.Role, w.Authority), nil
	case w.ConnType == ConnAnonClear.String():
		return ConnectionSubject(ConnAnonClear), nil
	case w.ConnType == ConnAuthCrypt.String():
		return ConnectionSubject(ConnAuthCrypt), nil
	default:
		return Subject{}, fmt.Errorf("%w: %+v", ErrInvalidSubject, w)
	}
}
