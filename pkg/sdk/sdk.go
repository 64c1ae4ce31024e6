package sdk

import (
	"github.com/secure-iot/obt-go/pkg/acl"
	"github.com/secure-iot/obt-go/pkg/cred"
	"github.com/secure-iot/obt-go/pkg/device"
	"github.com/secure-iot/obt-go/pkg/result"
)

// Done is the payload of operations that only report success or failure.
type Done = struct{}

// Discoverer issues device discovery requests.
type Discoverer interface {
	// DiscoverUnowned multicasts a request for devices in the
	// manufacturer-default state. The handler runs once per response.
	DiscoverUnowned(scope Scope, h ObserveHandler) (Handle, error)

	// DiscoverOwned multicasts a request for devices owned by this tool.
	DiscoverOwned(scope Scope, h ObserveHandler) (Handle, error)
}

// Provisioner is the full provisioning SDK surface.
type Provisioner interface {
	Discoverer

	// DiscoverResources requests the resources hosted by one device.
	DiscoverResources(id device.ID, h ResourceHandler) (Handle, error)

	PerformJustWorksOTM(id device.ID, h result.Handler[Done]) (Handle, error)
	RequestRandomPIN(id device.ID, h result.Handler[Done]) (Handle, error)
	PerformRandomPinOTM(id device.ID, pin string, h result.Handler[Done]) (Handle, error)
	PerformCertOTM(id device.ID, h result.Handler[Done]) (Handle, error)

	ProvisionPairwiseCredentials(a, b device.ID, h result.Handler[Done]) (Handle, error)
	ProvisionACE(id device.ID, ace *acl.ACE, h result.Handler[Done]) (Handle, error)
	ProvisionIdentityCertificate(id device.ID, h result.Handler[Done]) (Handle, error)
	ProvisionRoleCertificate(roles acl.RoleChain, id device.ID, h result.Handler[Done]) (Handle, error)

	RetrieveCredentials(id device.ID, h result.Handler[[]cred.Credential]) (Handle, error)
	DeleteCredential(id device.ID, credID int, h result.Handler[Done]) (Handle, error)
	RetrieveACL(id device.ID, h result.Handler[*acl.ACL]) (Handle, error)
	DeleteACE(id device.ID, aceID int, h result.Handler[Done]) (Handle, error)

	// HardReset returns an owned device to its manufacturer-default state.
	HardReset(id device.ID, h result.Handler[Done]) (Handle, error)

	// RetrieveOwnCredentials returns the tool's own credentials.
	RetrieveOwnCredentials() ([]cred.Credential, error)

	// DeleteOwnCredential removes one of the tool's own credentials.
	DeleteOwnCredential(credID int) error

	// AddTrustAnchor installs a DER certificate and returns its credential ID.
	AddTrustAnchor(kind TrustAnchorKind, der []byte) (int, error)

	// Reset discards all SDK state and reinitializes the tool identity.
	Reset() error

	// Close releases SDK resources. Requests issued afterwards are rejected.
	Close() error
}
