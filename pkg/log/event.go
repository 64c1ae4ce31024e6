package log

import (
	"time"
)

// Event is one journal entry.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Component that emitted the event.
	Component Component `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Op is the operation name, e.g. "otm.random-pin" or "acl.provision".
	Op string `cbor:"4,keyasint,omitempty"`

	// Handle is the SDK request handle, when one was assigned.
	Handle *int `cbor:"5,keyasint,omitempty"`

	// DeviceID is the target device.
	DeviceID string `cbor:"6,keyasint,omitempty"`

	// PeerID is the second device of two-device operations.
	PeerID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Request    *RequestEvent    `cbor:"10,keyasint,omitempty"`
	Completion *CompletionEvent `cbor:"11,keyasint,omitempty"`
	Rejection  *RejectionEvent  `cbor:"12,keyasint,omitempty"`
	Registry   *RegistryEvent   `cbor:"13,keyasint,omitempty"`
	Error      *ErrorEventData  `cbor:"14,keyasint,omitempty"`
}

// Component identifies the part of the tool that emitted an event.
type Component uint8

const (
	ComponentTool         Component = 0
	ComponentRegistry     Component = 1
	ComponentDiscovery    Component = 2
	ComponentOTM          Component = 3
	ComponentProvisioning Component = 4
)

// String returns the component name.
func (c Component) String() string {
	switch c {
	case ComponentTool:
		return "TOOL"
	case ComponentRegistry:
		return "REGISTRY"
	case ComponentDiscovery:
		return "DISCOVERY"
	case ComponentOTM:
		return "OTM"
	case ComponentProvisioning:
		return "PROVISIONING"
	default:
		return "UNKNOWN"
	}
}

// ParseComponent parses a component name as returned by String.
func ParseComponent(s string) (Component, bool) {
	for c := ComponentTool; c <= ComponentProvisioning; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRequest indicates a request was accepted by the SDK.
	CategoryRequest Category = 0
	// CategoryRejection indicates the SDK declined to issue a request.
	CategoryRejection Category = 1
	// CategoryCompletion indicates a request completed.
	CategoryCompletion Category = 2
	// CategoryDuplicate indicates a completion arrived for a request that
	// had already completed and was dropped.
	CategoryDuplicate Category = 3
	// CategoryRegistry indicates a registry transition.
	CategoryRegistry Category = 4
	// CategoryError indicates a local error.
	CategoryError Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRequest:
		return "REQUEST"
	case CategoryRejection:
		return "REJECTION"
	case CategoryCompletion:
		return "COMPLETION"
	case CategoryDuplicate:
		return "DUPLICATE"
	case CategoryRegistry:
		return "REGISTRY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as returned by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryRequest; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// RequestEvent captures the parameters of an issued request.
type RequestEvent struct {
	// Scope is the discovery scope, for discovery requests.
	Scope string `cbor:"1,keyasint,omitempty"`

	// Detail is a short operation-specific summary, e.g. an ACE or a
	// credential ID. Secrets such as PINs are never recorded.
	Detail string `cbor:"2,keyasint,omitempty"`
}

// CompletionEvent captures the outcome of an accepted request.
type CompletionEvent struct {
	// Success is true if the operation succeeded.
	Success bool `cbor:"1,keyasint"`

	// Code is the failure reason code (0 on success).
	Code uint8 `cbor:"2,keyasint,omitempty"`

	// Message describes the failure.
	Message string `cbor:"3,keyasint,omitempty"`

	// Items is the number of entries returned by retrieval operations.
	Items int `cbor:"4,keyasint,omitempty"`

	// Latency is the time from issuance to completion.
	// Stored as nanoseconds.
	Latency *time.Duration `cbor:"5,keyasint,omitempty"`
}

// RejectionEvent captures an issuance rejection.
type RejectionEvent struct {
	// Code is the negative SDK return code.
	Code int `cbor:"1,keyasint"`
}

// RegistryEvent captures a device moving into or out of a collection.
type RegistryEvent struct {
	Change     string `cbor:"1,keyasint"`
	Collection string `cbor:"2,keyasint"`
	Name       string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures a local error.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
