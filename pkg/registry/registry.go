// Package registry holds the static table of known n8n node types and their
// parameter schemas.
package registry

import (
	"log/slog"
	"slices"

	"github.com/flowdraft/flowdraft/pkg/models"
)

// NodeTypeSpec describes one known node type.
type NodeTypeSpec struct {
	Type              string              `json:"type"`
	DisplayName       string              `json:"display_name"`
	CurrentVersion    int                 `json:"current_version"`
	SupportedVersions []int               `json:"supported_versions"`
	RequiredParams    []string            `json:"required_params,omitempty"`
	OptionalParams    []string            `json:"optional_params,omitempty"`
	Category          models.NodeCategory `json:"category"`
}

// SupportsVersion reports whether the given typeVersion is accepted.
func (s *NodeTypeSpec) SupportsVersion(version int) bool {
	return slices.Contains(s.SupportedVersions, version)
}

// Registry is an immutable-after-construction lookup table of node types.
// Load it once at process start; concurrent reads need no locking.
type Registry struct {
	logger *slog.Logger
	specs  map[string]*NodeTypeSpec
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		specs:  make(map[string]*NodeTypeSpec),
	}
}

// Register adds a node type spec. Re-registering a type replaces the earlier
// entry but keeps its position for deterministic iteration.
func (r *Registry) Register(spec *NodeTypeSpec) {
	if _, exists := r.specs[spec.Type]; !exists {
		r.order = append(r.order, spec.Type)
	}

	r.specs[spec.Type] = spec
}

// Lookup returns the spec for a type id, or false when unknown. Unknown
// types are not an error here; callers decide severity.
func (r *Registry) Lookup(typeID string) (*NodeTypeSpec, bool) {
	spec, ok := r.specs[typeID]
	return spec, ok
}

// IsTrigger reports whether the type id is a registered trigger type.
// Unknown types are not triggers.
func (r *Registry) IsTrigger(typeID string) bool {
	spec, ok := r.specs[typeID]
	return ok && spec.Category == models.CategoryTrigger
}

// All returns every registered spec in registration order.
func (r *Registry) All() []*NodeTypeSpec {
	specs := make([]*NodeTypeSpec, 0, len(r.order))
	for _, typeID := range r.order {
		specs = append(specs, r.specs[typeID])
	}

	return specs
}

// Len returns the number of registered node types.
func (r *Registry) Len() int {
	return len(r.specs)
}

// TriggerType returns the node type id that implements the given trigger
// kind.
func (r *Registry) TriggerType(kind models.TriggerKind) string {
	switch kind {
	case models.TriggerSchedule:
		return TypeScheduleTrigger
	case models.TriggerManual:
		return TypeManualTrigger
	default:
		return TypeWebhook
	}
}
