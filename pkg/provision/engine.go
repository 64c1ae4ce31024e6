package provision

import (
	"fmt"
	"log/slog"

	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cert"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	obtlog "github.com/secure-iot/obt-go/pkg/log"
	"github.com/secure-iot/obt-go/pkg/result"
	"github.com/secure-iot/obt-go/pkg/sdk"
)

// Operation names used in the journal.
const (
	OpPairwise      = "provision.pairwise"
	OpACE           = "provision.ace"
	OpIdentityCert  = "provision.identity-cert"
	OpRoleCert      = "provision.role-cert"
	OpRetrieveCreds = "creds.retrieve"
	OpDeleteCred    = "creds.delete"
	OpRetrieveACL   = "acl.retrieve"
	OpDeleteACE     = "acl.delete"
	OpOwnCreds      = "own-creds.retrieve"
	OpDeleteOwnCred = "own-creds.delete"
	OpTrustAnchor   = "trust-anchor.install"
	OpHardReset     = "device.reset"
)

// Backend is the part of the SDK the engine drives.
type Backend interface {
	ProvisionPairwiseCredentials(a, b device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
	ProvisionACE(id device.ID, ace *acl.ACE, h result.Handler[sdk.Done]) (sdk.Handle, error)
	ProvisionIdentityCertificate(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
	ProvisionRoleCertificate(roles acl.RoleChain, id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
	RetrieveCredentials(id device.ID, h result.Handler[[]cred.Credential]) (sdk.Handle, error)
	DeleteCredential(id device.ID, credID int, h result.Handler[sdk.Done]) (sdk.Handle, error)
	RetrieveACL(id device.ID, h result.Handler[*acl.ACL]) (sdk.Handle, error)
	DeleteACE(id device.ID, aceID int, h result.Handler[sdk.Done]) (sdk.Handle, error)
	HardReset(id device.ID, h result.Handler[sdk.Done]) (sdk.Handle, error)
	RetrieveOwnCredentials() ([]cred.Credential, error)
	DeleteOwnCredential(credID int) error
	AddTrustAnchor(kind sdk.TrustAnchorKind, der []byte) (int, error)
}

// Config configures an Engine.
type Config struct {
	// SDK issues the requests. Required.
	SDK Backend

	// Registry supplies the owned devices. Required.
	Registry *device.Registry

	// Logger is used for operational logging. Nil disables logging.
	Logger *slog.Logger

	// Journal receives request events. Nil disables the journal.
	Journal obtlog.Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SDK == nil {
		return fmt.Errorf("%w: no SDK", ErrInvalidConfig)
	}
	if c.Registry == nil {
		return fmt.Errorf("%w: no registry", ErrInvalidConfig)
	}
	return nil
}

// Engine issues provisioning requests for owned devices.
type Engine struct {
	sdk      Backend
	registry *device.Registry
	logger   *slog.Logger
	journal  *obtlog.Journal
}

// New creates an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		sdk:      cfg.SDK,
		registry: cfg.Registry,
		logger:   cfg.Logger,
		journal:  obtlog.NewJournal(cfg.Journal, obtlog.ComponentProvisioning),
	}, nil
}

func (e *Engine) requireOwned(ids ...device.ID) error {
	for _, id := range ids {
		if !e.registry.IsOwned(id) {
			return fmt.Errorf("%w: %s", ErrNotOwned, id)
		}
	}
	return nil
}

func (e *Engine) done(op string, id device.ID, detail string, fn func(result.Handler[sdk.Done]) (sdk.Handle, error)) (*sdk.Request[sdk.Done], error) {
	if err := e.requireOwned(id); err != nil {
		return nil, err
	}
	return sdk.Issue(e.journal, op, sdk.Target{Device: id, Detail: detail}, fn)
}

// ProvisionPairwise provisions a pairwise symmetric credential between two
// owned devices.
func (e *Engine) ProvisionPairwise(a, b device.ID) (*sdk.Request[sdk.Done], error) {
	if a == b {
		return nil, fmt.Errorf("%w: %s", ErrSameDevice, a)
	}
	if err := e.requireOwned(a, b); err != nil {
		return nil, err
	}
	return sdk.Issue(e.journal, OpPairwise, sdk.Target{Device: a, Peer: b}, func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.ProvisionPairwiseCredentials(a, b, h)
	})
}

// SubmitACE validates ace and provisions a copy of it onto an owned device.
// Nothing is sent when validation fails.
func (e *Engine) SubmitACE(id device.ID, ace *acl.ACE) (*sdk.Request[sdk.Done], error) {
	if ace == nil {
		return nil, ErrNilACE
	}
	if err := e.requireOwned(id); err != nil {
		return nil, err
	}
	if err := ace.Validate(); err != nil {
		return nil, err
	}
	sent := ace.Clone()
	sent.Truncate()
	return sdk.Issue(e.journal, OpACE, sdk.Target{Device: id, Detail: sent.String()}, func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.ProvisionACE(id, sent, h)
	})
}

// ProvisionAuthCryptWildcardACE grants perms on all resources to every
// authenticated encrypted connection.
func (e *Engine) ProvisionAuthCryptWildcardACE(id device.ID, perms acl.Permission) (*sdk.Request[sdk.Done], error) {
	return e.SubmitACE(id, acl.AuthCryptWildcardACE(perms))
}

// ProvisionRoleWildcardACE grants perms on all resources to a role. An empty
// authority matches any authority.
func (e *Engine) ProvisionRoleWildcardACE(id device.ID, role, authority string, perms acl.Permission) (*sdk.Request[sdk.Done], error) {
	return e.SubmitACE(id, acl.RoleWildcardACE(role, authority, perms))
}

// ProvisionIdentityCertificate provisions an identity certificate.
func (e *Engine) ProvisionIdentityCertificate(id device.ID) (*sdk.Request[sdk.Done], error) {
	return e.done(OpIdentityCert, id, "", func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.ProvisionIdentityCertificate(id, h)
	})
}

// ProvisionRoleCertificate provisions a certificate asserting roles. The
// chain must hold at least one role.
func (e *Engine) ProvisionRoleCertificate(roles acl.RoleChain, id device.ID) (*sdk.Request[sdk.Done], error) {
	if err := roles.Validate(); err != nil {
		return nil, err
	}
	sent := roles.Truncated()
	return e.done(OpRoleCert, id, fmt.Sprintf("%d roles", len(sent)), func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.ProvisionRoleCertificate(sent, id, h)
	})
}

// RetrieveCredentials fetches the credential resource of a device.
func (e *Engine) RetrieveCredentials(id device.ID) (*sdk.Request[[]cred.Credential], error) {
	if err := e.requireOwned(id); err != nil {
		return nil, err
	}
	return sdk.Issue(e.journal, OpRetrieveCreds, sdk.Target{Device: id}, func(h result.Handler[[]cred.Credential]) (sdk.Handle, error) {
		return e.sdk.RetrieveCredentials(id, h)
	})
}

// DeleteCredential deletes one credential from a device.
func (e *Engine) DeleteCredential(id device.ID, credID int) (*sdk.Request[sdk.Done], error) {
	return e.done(OpDeleteCred, id, fmt.Sprintf("credid %d", credID), func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.DeleteCredential(id, credID, h)
	})
}

// RetrieveACL fetches the access control list of a device.
func (e *Engine) RetrieveACL(id device.ID) (*sdk.Request[*acl.ACL], error) {
	if err := e.requireOwned(id); err != nil {
		return nil, err
	}
	return sdk.Issue(e.journal, OpRetrieveACL, sdk.Target{Device: id}, func(h result.Handler[*acl.ACL]) (sdk.Handle, error) {
		return e.sdk.RetrieveACL(id, h)
	})
}

// DeleteACE deletes one ACE from a device.
func (e *Engine) DeleteACE(id device.ID, aceID int) (*sdk.Request[sdk.Done], error) {
	return e.done(OpDeleteACE, id, fmt.Sprintf("aceid %d", aceID), func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.DeleteACE(id, aceID, h)
	})
}

// ResetDevice returns an owned device to its manufacturer-default state.
// The returned request resolves after the device has been removed from the
// registry; it must be rediscovered as unowned.
func (e *Engine) ResetDevice(id device.ID) (*sdk.Request[sdk.Done], error) {
	req, err := e.done(OpHardReset, id, "", func(h result.Handler[sdk.Done]) (sdk.Handle, error) {
		return e.sdk.HardReset(id, h)
	})
	if err != nil {
		return nil, err
	}

	out := *req
	out.Pending = result.NewPending[sdk.Done]()
	req.Then(func(r result.Result[sdk.Done]) {
		if r.Err == nil {
			e.registry.Remove(id)
			if e.logger != nil {
				e.logger.Info("device reset to manufacturer defaults", "device_id", id)
			}
		}
		out.Resolve(r)
	})
	return &out, nil
}

// RetrieveOwnCredentials returns the tool's own credentials.
func (e *Engine) RetrieveOwnCredentials() ([]cred.Credential, error) {
	creds, err := e.sdk.RetrieveOwnCredentials()
	if err != nil {
		e.journal.Error(OpOwnCreds, "", err)
		return nil, err
	}
	return creds, nil
}

// DeleteOwnCredential removes one of the tool's own credentials.
func (e *Engine) DeleteOwnCredential(credID int) error {
	if err := e.sdk.DeleteOwnCredential(credID); err != nil {
		e.journal.Error(OpDeleteOwnCred, "", err)
		return err
	}
	return nil
}

// InstallTrustAnchor installs every certificate in data, given as PEM blocks
// or one DER certificate, and returns the assigned credential ids in input
// order. Installation stops at the first rejected certificate.
func (e *Engine) InstallTrustAnchor(kind sdk.TrustAnchorKind, data []byte) ([]int, error) {
	ders, err := cert.ParseTrustAnchor(data)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(ders))
	for _, der := range ders {
		id, err := e.sdk.AddTrustAnchor(kind, der)
		if err != nil {
			e.journal.Error(OpTrustAnchor, "", err)
			return ids, err
		}
		ids = append(ids, id)
	}
	if e.logger != nil {
		e.logger.Info("trust anchors installed", "kind", kind, "credids", ids)
	}
	return ids, nil
}
