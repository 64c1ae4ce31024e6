package interactive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cert"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Menu selections.
const (
	cmdMenu                 = 0
	cmdDiscoverUnowned      = 1
	cmdDiscoverUnownedRealm = 2
	cmdDiscoverUnownedSite  = 3
	cmdDiscoverOwned        = 4
	cmdDiscoverOwnedRealm   = 5
	cmdDiscoverOwnedSite    = 6
	cmdDiscoverResources    = 7
	cmdJustWorks            = 8
	cmdRequestPIN           = 9
	cmdRandomPIN            = 10
	cmdCertOTM              = 11
	cmdPairwise             = 12
	cmdACE                  = 13
	cmdAuthCryptWildcard    = 14
	cmdRetrieveCreds        = 15
	cmdDeleteCred           = 16
	cmdRetrieveACL          = 17
	cmdDeleteACE            = 18
	cmdRetrieveOwnCreds     = 19
	cmdDeleteOwnCred        = 20
	cmdRoleWildcard         = 21
	cmdIdentityCert         = 22
	cmdRoleCert             = 23
	cmdShowManufacturerCA   = 95
	cmdInstallTrustAnchor   = 96
	cmdResetDevice          = 97
	cmdResetTool            = 98
	cmdExit                 = 99
)

const menuText = `[0] Display this menu
------------------------------------------------
[1] Discover un-owned devices
[2] Discover un-owned devices in the realm-local IPv6 scope
[3] Discover un-owned devices in the site-local IPv6 scope
[4] Discover owned devices
[5] Discover owned devices in the realm-local IPv6 scope
[6] Discover owned devices in the site-local IPv6 scope
[7] Discover all resources on the device
------------------------------------------------
[8] Just-Works Ownership Transfer Method
[9] Request Random PIN from device for OTM
[10] Random PIN Ownership Transfer Method
[11] Manufacturer Certificate based Ownership Transfer Method
------------------------------------------------
[12] Provision pair-wise credentials
[13] Provision ACE
[14] Provision auth-crypt access to all resources
[15] RETRIEVE credentials
[16] DELETE credential by credid
[17] RETRIEVE ACL
[18] DELETE ACE by aceid
[19] RETRIEVE own credentials
[20] DELETE own credential by credid
[21] Provision role access to all resources
[22] Provision identity certificate
[23] Provision role certificate
------------------------------------------------
[96] Install new trust anchor
[97] RESET device
[98] RESET tool
------------------------------------------------
[99] Exit
`

// verbs maps command names to menu selections.
var verbs = map[string]int{
	"menu":                           cmdMenu,
	"help":                           cmdMenu,
	"discover-unowned":               cmdDiscoverUnowned,
	"discover-unowned-realm":         cmdDiscoverUnownedRealm,
	"discover-unowned-site":          cmdDiscoverUnownedSite,
	"discover-owned":                 cmdDiscoverOwned,
	"discover-owned-realm":           cmdDiscoverOwnedRealm,
	"discover-owned-site":            cmdDiscoverOwnedSite,
	"discover-all-resources":         cmdDiscoverResources,
	"otm-just-works":                 cmdJustWorks,
	"request-random-pin":             cmdRequestPIN,
	"otm-random-pin":                 cmdRandomPIN,
	"otm-cert":                       cmdCertOTM,
	"provision-credential":           cmdPairwise,
	"provision-ace":                  cmdACE,
	"provision-auth-wildcard-ace":    cmdAuthCryptWildcard,
	"retrieve-credential":            cmdRetrieveCreds,
	"delete-credential":              cmdDeleteCred,
	"retrieve-ace":                   cmdRetrieveACL,
	"delete-ace":                     cmdDeleteACE,
	"retrieve-own-credential":        cmdRetrieveOwnCreds,
	"delete-own-credential":          cmdDeleteOwnCred,
	"provision-role-wildcard-ace":    cmdRoleWildcard,
	"provision-identity-certificate": cmdIdentityCert,
	"provision-role-certificate":     cmdRoleCert,
	"show-manufacturer-ca":           cmdShowManufacturerCA,
	"install-trust-anchor":           cmdInstallTrustAnchor,
	"reset-device":                   cmdResetDevice,
	"reset-tool":                     cmdResetTool,
	"exit":                           cmdExit,
	"quit":                           cmdExit,
}

// parseChoice accepts a menu number or a verb.
func parseChoice(input string) (int, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		switch {
		case n >= cmdMenu && n <= cmdRoleCert,
			n >= cmdShowManufacturerCA && n <= cmdExit:
			return n, true
		}
		return 0, false
	}
	n, ok := verbs[strings.ToLower(input)]
	return n, ok
}

func (s *Shell) dispatch(choice int) {
	switch choice {
	case cmdMenu:
		s.printMenu()
	case cmdDiscoverUnowned:
		s.discover(false, sdk.ScopeGeneral)
	case cmdDiscoverUnownedRealm:
		s.discover(false, sdk.ScopeRealmLocal)
	case cmdDiscoverUnownedSite:
		s.discover(false, sdk.ScopeSiteLocal)
	case cmdDiscoverOwned:
		s.discover(true, sdk.ScopeGeneral)
	case cmdDiscoverOwnedRealm:
		s.discover(true, sdk.ScopeRealmLocal)
	case cmdDiscoverOwnedSite:
		s.discover(true, sdk.ScopeSiteLocal)
	case cmdDiscoverResources:
		s.discoverResources()
	case cmdJustWorks:
		s.otmJustWorks()
	case cmdRequestPIN:
		s.requestPIN()
	case cmdRandomPIN:
		s.otmRandomPIN()
	case cmdCertOTM:
		s.otmCert()
	case cmdPairwise:
		s.pairwise()
	case cmdACE:
		s.provisionACE()
	case cmdAuthCryptWildcard:
		s.authCryptWildcard()
	case cmdRetrieveCreds:
		s.retrieveCreds()
	case cmdDeleteCred:
		s.deleteCred()
	case cmdRetrieveACL:
		s.retrieveACL()
	case cmdDeleteACE:
		s.deleteACE()
	case cmdRetrieveOwnCreds:
		s.retrieveOwnCreds()
	case cmdDeleteOwnCred:
		s.deleteOwnCred()
	case cmdRoleWildcard:
		s.roleWildcard()
	case cmdIdentityCert:
		s.identityCert()
	case cmdRoleCert:
		s.roleCert()
	case cmdShowManufacturerCA:
		s.showManufacturerCA()
	case cmdInstallTrustAnchor:
		s.installTrustAnchor()
	case cmdResetDevice:
		s.resetDevice()
	case cmdResetTool:
		s.resetTool()
	}
}

// track reports the completion of an accepted request.
func track[T any](s *Shell, label string, handle sdk.Handle, p *result.Pending[T], onOK func(T)) {
	s.note.Fprintf(s.out, "%s: request issued (handle %d)\n", label, handle)
	p.Then(func(r result.Result[T]) {
		if r.Err != nil {
			s.bad.Fprintf(s.out, "%s failed: %s\n", label, describeError(r.Err))
			return
		}
		s.ok.Fprintf(s.out, "%s succeeded\n", label)
		if onOK != nil {
			onOK(r.Value)
		}
	})
}

func (s *Shell) discover(owned bool, scope sdk.Scope) {
	label := "Discover unowned devices (" + scope.String() + ")"
	var handle sdk.Handle
	var err error
	if owned {
		label = "Discover owned devices (" + scope.String() + ")"
		handle, err = s.svc.Discovery().DiscoverOwned(scope)
	} else {
		handle, err = s.svc.Discovery().DiscoverUnowned(scope)
	}
	if err != nil {
		s.failf(label, err)
		return
	}
	s.note.Fprintf(s.out, "%s: request issued (handle %d); responses are listed as they arrive\n", label, handle)
}

func (s *Shell) discoverResources() {
	const label = "Discover resources"
	d, err := s.selectDevice("known", s.svc.AllDevices())
	if err != nil {
		s.failf(label, err)
		return
	}
	handle, err := s.svc.Discovery().DiscoverResources(d.ID, func(r sdk.Resource) {
		fmt.Fprint(s.out, formatResource(r))
	})
	if err != nil {
		s.failf(label, err)
		return
	}
	s.note.Fprintf(s.out, "%s: request issued (handle %d)\n", label, handle)
}

func (s *Shell) otmJustWorks() {
	const label = "Just-Works OTM"
	d, err := s.selectUnowned()
	if err != nil {
		s.failf(label, err)
		return
	}
	t, err := s.svc.OTM().JustWorks(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, t.Handle, t.Pending, nil)
}

func (s *Shell) requestPIN() {
	const label = "Request random PIN"
	d, err := s.selectUnowned()
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.OTM().RequestRandomPIN(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, func(sdk.Done) {
		if s.sim == nil {
			return
		}
		if pin, ok := s.sim.DisplayedPIN(d.ID); ok {
			s.note.Fprintf(s.out, "%s displays PIN %s\n", d.Name, pin)
		}
	})
}

func (s *Shell) otmRandomPIN() {
	const label = "Random PIN OTM"
	d, err := s.selectUnowned()
	if err != nil {
		s.failf(label, err)
		return
	}
	pin, err := s.ask("Enter Random PIN: ")
	if err != nil {
		s.failf(label, err)
		return
	}
	t, err := s.svc.OTM().RandomPIN(d.ID, pin)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, t.Handle, t.Pending, nil)
}

func (s *Shell) otmCert() {
	const label = "Certificate OTM"
	d, err := s.selectUnowned()
	if err != nil {
		s.failf(label, err)
		return
	}
	t, err := s.svc.OTM().Certificate(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, t.Handle, t.Pending, nil)
}

func (s *Shell) pairwise() {
	const label = "Provision pair-wise credentials"
	owned := s.svc.Registry().ListOwned()
	a, err := s.selectDevice("owned", owned)
	if err != nil {
		s.failf(label, err)
		return
	}
	b, err := s.selectDevice("owned", owned)
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().ProvisionPairwise(a.ID, b.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) provisionACE() {
	const label = "Provision ACE"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	ace, err := s.buildACE()
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().SubmitACE(d.ID, ace)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

// buildACE walks through subject, resources and permissions. The result
// may be invalid; submission validates it.
func (s *Shell) buildACE() (*acl.ACE, error) {
	fmt.Fprint(s.out, "\nSubjects:\n[0]: anon-clear\n[1]: auth-crypt\n[2]: Role\n[3]: Device UUID\n")
	sel, err := s.askInt("\nSelect subject: ")
	if err != nil {
		return nil, err
	}

	var subject acl.Subject
	switch sel {
	case 0:
		subject = acl.ConnectionSubject(acl.ConnAnonClear)
	case 1:
		subject = acl.ConnectionSubject(acl.ConnAuthCrypt)
	case 2:
		role, err := s.ask("Enter role: ")
		if err != nil {
			return nil, err
		}
		authority, err := s.ask("Enter authority (optional): ")
		if err != nil {
			return nil, err
		}
		subject = acl.RoleSubject(role, authority)
	case 3:
		raw, err := s.ask("Enter device UUID: ")
		if err != nil {
			return nil, err
		}
		id, err := device.ParseID(raw)
		if err != nil {
			return nil, err
		}
		subject = acl.DeviceSubject(id)
	default:
		return nil, fmt.Errorf("%w: selection %d", acl.ErrInvalidSubject, sel)
	}
	ace := acl.NewACE(subject)

	n, err := s.askInt("Enter number of resources in this ACE: ")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(s.out, "Resource %d:\n", i+1)
		hasHref, err := s.askYesNo("Have resource href?")
		if err != nil {
			return nil, err
		}
		var r acl.ResourceMatch
		if hasHref {
			href, err := s.ask("Enter resource href (eg. /a/light): ")
			if err != nil {
				return nil, err
			}
			r = acl.HrefResource(href)
		} else {
			fmt.Fprint(s.out, "[1]: All resources '*'\n[2]: All resources with >=1 secured endpoint '+'\n[3]: All resources with >=1 unsecured endpoint '-'\n")
			w, err := s.askInt("Select wildcard resource: ")
			if err != nil {
				return nil, err
			}
			r = acl.WildcardResource(acl.Wildcard(w))
		}
		if err := ace.AddResource(r); err != nil {
			return nil, err
		}
	}

	perms, err := s.askPermissions("")
	if err != nil {
		return nil, err
	}
	ace.SetPermissions(perms)
	return ace, nil
}

// askPermissions reads a permission flag string such as "ru".
func (s *Shell) askPermissions(def string) (acl.Permission, error) {
	prompt := "Permissions (c=CREATE r=RETRIEVE u=UPDATE d=DELETE n=NOTIFY)"
	var line string
	var err error
	if def != "" {
		line, err = s.askDefault(prompt, def)
	} else {
		line, err = s.ask(prompt + ": ")
	}
	if err != nil {
		return acl.PermNone, err
	}
	return acl.ParsePermissions(line)
}

func (s *Shell) authCryptWildcard() {
	const label = "Provision auth-crypt wildcard ACE"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	perms, err := s.askPermissions("ru")
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().ProvisionAuthCryptWildcardACE(d.ID, perms)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) roleWildcard() {
	const label = "Provision role wildcard ACE"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	role, err := s.ask("Enter role: ")
	if err != nil {
		s.failf(label, err)
		return
	}
	authority, err := s.ask("Enter authority (optional): ")
	if err != nil {
		s.failf(label, err)
		return
	}
	perms, err := s.askPermissions("ru")
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().ProvisionRoleWildcardACE(d.ID, role, authority, perms)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) retrieveCreds() {
	const label = "Retrieve credentials"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().RetrieveCredentials(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, func(creds []cred.Credential) {
		fmt.Fprint(s.out, formatCredentials(creds))
	})
}

func (s *Shell) deleteCred() {
	const label = "Delete credential"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	id, err := s.askInt("Enter credid: ")
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().DeleteCredential(d.ID, id)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) retrieveACL() {
	const label = "Retrieve ACL"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().RetrieveACL(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, func(list *acl.ACL) {
		fmt.Fprint(s.out, formatACL(list))
	})
}

func (s *Shell) deleteACE() {
	const label = "Delete ACE"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	id, err := s.askInt("Enter aceid: ")
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().DeleteACE(d.ID, id)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) retrieveOwnCreds() {
	creds, err := s.svc.Provisioning().RetrieveOwnCredentials()
	if err != nil {
		s.failf("Retrieve own credentials", err)
		return
	}
	fmt.Fprint(s.out, formatCredentials(creds))
}

func (s *Shell) deleteOwnCred() {
	const label = "Delete own credential"
	id, err := s.askInt("Enter credid: ")
	if err != nil {
		s.failf(label, err)
		return
	}
	if err := s.svc.Provisioning().DeleteOwnCredential(id); err != nil {
		s.failf(label, err)
		return
	}
	s.ok.Fprintf(s.out, "%s succeeded\n", label)
}

func (s *Shell) identityCert() {
	const label = "Provision identity certificate"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().ProvisionIdentityCertificate(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) roleCert() {
	const label = "Provision role certificate"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	var roles acl.RoleChain
	for {
		role, err := s.ask("Enter role (empty to finish): ")
		if err != nil {
			s.failf(label, err)
			return
		}
		if role == "" {
			break
		}
		authority, err := s.ask("Enter authority (optional): ")
		if err != nil {
			s.failf(label, err)
			return
		}
		roles.Add(role, authority)
	}
	req, err := s.svc.Provisioning().ProvisionRoleCertificate(roles, d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) showManufacturerCA() {
	if s.sim == nil {
		s.bad.Fprintln(s.out, "No simulated manufacturer CA")
		return
	}
	fmt.Fprint(s.out, string(cert.EncodeCertPEM(s.sim.ManufacturerCA())))
}

func (s *Shell) installTrustAnchor() {
	const label = "Install trust anchor"
	fmt.Fprint(s.out, "[0]: Manufacturer trust anchor\n[1]: Root trust anchor\n")
	kind := sdk.AnchorManufacturer
	sel, err := s.askDefault("Select kind", "0")
	if err != nil {
		s.failf(label, err)
		return
	}
	if sel == "1" {
		kind = sdk.AnchorRoot
	}

	fmt.Fprintln(s.out, "Paste certificate here, then enter 'done' on its own line:")
	data, err := collectUntilDone(func() (string, error) {
		return s.ask("")
	})
	if err != nil {
		s.failf(label, err)
		return
	}
	ids, err := s.svc.Provisioning().InstallTrustAnchor(kind, data)
	if err != nil {
		s.failf(label, err)
		return
	}
	s.ok.Fprintf(s.out, "%s succeeded: credid %s\n", label, joinInts(ids))
}

func (s *Shell) resetDevice() {
	const label = "Reset device"
	d, err := s.selectOwned()
	if err != nil {
		s.failf(label, err)
		return
	}
	req, err := s.svc.Provisioning().ResetDevice(d.ID)
	if err != nil {
		s.failf(label, err)
		return
	}
	track(s, label, req.Handle, req.Pending, nil)
}

func (s *Shell) resetTool() {
	const label = "Reset tool"
	if err := s.svc.ResetTool(); err != nil {
		s.failf(label, err)
		return
	}
	s.ok.Fprintf(s.out, "%s succeeded; rediscover devices\n", label)
}
