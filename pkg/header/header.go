package header

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the type of tsctl resource.
type Kind string

// Valid Kind constants for tsctl resource types.
const (
	KindSyncReport   Kind = "SyncReport"
	KindSyncStatus   Kind = "SyncStatus"
	KindExpectations Kind = "Expectations"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSyncReport, KindSyncStatus, KindExpectations:
		return true
	default:
		return false
	}
}

// Header contains metadata and versioning information for tsctl resources.
// It follows Kubernetes-style resource conventions with Kind, APIVersion,
// and Metadata fields.
type Header struct {
	// Kind is the type of the resource.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the resource.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value metadata about the resource.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init initializes the Header with the given kind, apiVersion, and tool
// version. Metadata gets a UTC timestamp, a unique run identifier, and the
// version when provided.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"runID":     uuid.NewString(),
	}
	if version != "" {
		h.Metadata["version"] = version
	}
}

// RunID returns the run identifier stamped during Init, or empty.
func (h *Header) RunID() string {
	return h.Metadata["runID"]
}
