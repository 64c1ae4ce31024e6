package dnssd

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// DNS-SD service parameters.
const (
	ServiceType = "_ocf._udp"
	Domain      = "local."
)

// TXT record keys.
const (
	TXTKeyDeviceID = "di"
	TXTKeyName     = "n"
	TXTKeyOwned    = "ot"
	TXTKeyScheme   = "sch"
)

const defaultScheme = "coap"

// TXT record errors.
var (
	ErrMissingDeviceID = errors.New("missing device ID in TXT record")
	ErrNoAddress       = errors.New("no address within scope")
)

// ServiceEntry is a resolved DNS-SD service instance.
type ServiceEntry struct {
	Instance string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// Announcement is a device decoded from a service entry.
type Announcement struct {
	Device device.Descriptor
	Owned  bool
}

// announced tracks the names already reported per device within one browse.
type announced map[device.ID]string

// fresh reports whether d is new or carries a changed name, and records it.
func (s announced) fresh(d device.Descriptor) bool {
	name, ok := s[d.ID]
	if ok && name == d.Name {
		return false
	}
	s[d.ID] = d.Name
	return true
}

// ParseTXT parses "key=value" strings. Keys without a value map to "".
func ParseTXT(strs []string) map[string]string {
	txt := make(map[string]string, len(strs))
	for _, s := range strs {
		k, v, _ := strings.Cut(s, "=")
		if k != "" {
			txt[k] = v
		}
	}
	return txt
}

// EncodeTXT returns the TXT strings announcing d.
func EncodeTXT(d device.Descriptor, owned bool) []string {
	ot := "0"
	if owned {
		ot = "1"
	}
	txt := []string{TXTKeyDeviceID + "=" + d.ID.String(), TXTKeyOwned + "=" + ot}
	if d.Name != "" {
		txt = append(txt, TXTKeyName+"="+d.Name)
	}
	return txt
}

// Decode converts the entry into an announcement, keeping only addresses
// reachable within scope.
func (e *ServiceEntry) Decode(scope sdk.Scope) (*Announcement, error) {
	txt := ParseTXT(e.Text)
	raw, ok := txt[TXTKeyDeviceID]
	if !ok || raw == "" {
		return nil, ErrMissingDeviceID
	}
	id, err := device.ParseID(raw)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", e.Instance, err)
	}

	scheme := txt[TXTKeyScheme]
	if scheme == "" {
		scheme = defaultScheme
	}
	var eps []device.Endpoint
	for _, a := range e.Addrs {
		addr, err := netip.ParseAddr(a)
		if err != nil || AddrScope(addr) > scope {
			continue
		}
		eps = append(eps, device.Endpoint{Scheme: scheme, Host: addr.String(), Port: e.Port})
	}
	if len(eps) == 0 {
		return nil, fmt.Errorf("instance %s: %w", e.Instance, ErrNoAddress)
	}

	name := txt[TXTKeyName]
	if name == "" {
		name = e.Instance
	}
	return &Announcement{
		Device: device.Descriptor{ID: id, Name: name, Endpoints: eps},
		Owned:  txt[TXTKeyOwned] == "1" || txt[TXTKeyOwned] == "true",
	}, nil
}

// AddrScope returns the narrowest discovery scope that reports addr.
// IPv4 and IPv6 link-local addresses are general; unique local and
// deprecated site-local addresses are site-local; other IPv6 unicast
// addresses are realm-local.
func AddrScope(addr netip.Addr) sdk.Scope {
	addr = addr.Unmap()
	switch {
	case addr.Is4(), addr.IsLinkLocalUnicast(), addr.IsLoopback():
		return sdk.ScopeGeneral
	case addr.IsPrivate(), isSiteLocal(addr):
		return sdk.ScopeSiteLocal
	default:
		return sdk.ScopeRealmLocal
	}
}

var siteLocalPrefix = netip.MustParsePrefix("fec0::/10")

func isSiteLocal(addr netip.Addr) bool {
	return siteLocalPrefix.Contains(addr)
}
