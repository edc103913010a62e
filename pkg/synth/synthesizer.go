// Package synth builds workflow graphs from matched templates or bare
// feature sets.
package synth

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
)

// Template cloning is bounded so a pathological template cannot explode the
// generated graph.
const maxTemplateNodes = 8

// Canvas layout constants for generated node positions.
const (
	baseX = 250
	baseY = 300
	stepX = 220
)

// Synthesizer constructs workflows. It always emits exactly one trigger
// node first; template triggers are skipped in favor of the requested one.
type Synthesizer struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewSynthesizer creates a synthesizer backed by the given node-type
// registry.
func NewSynthesizer(reg *registry.Registry, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{registry: reg, logger: logger}
}

// Synthesize builds a workflow from a template (may be nil), the detected
// features, and the normalized text. Structure is deterministic for fixed
// inputs; only node ids and the workflow name vary between calls.
func (s *Synthesizer) Synthesize(
	template *templates.Template,
	features models.FeatureMatch,
	text string,
	trigger models.TriggerKind,
	complexity models.Complexity,
) *models.Workflow {
	names := newNameAllocator()

	nodes := []*models.WorkflowNode{s.triggerNode(trigger, names)}

	if template != nil {
		nodes = append(nodes, s.templateNodes(template, names)...)
	} else {
		nodes = append(nodes, s.featureNodes(features, names)...)
		nodes = s.pad(nodes, complexity, names)
	}

	nodes = ReorderContentPipeline(nodes, s.registry)
	layout(nodes)

	workflow := &models.Workflow{
		Name:        WorkflowName(text),
		Nodes:       nodes,
		Connections: Connect(nodes),
		Active:      false,
		Settings:    map[string]any{"executionOrder": "v1"},
		Tags:        []string{"generated"},
	}

	s.logger.Debug("synthesized workflow",
		"nodes", len(nodes),
		"template", template != nil,
		"trigger", string(trigger))

	return workflow
}

func (s *Synthesizer) triggerNode(kind models.TriggerKind, names *nameAllocator) *models.WorkflowNode {
	typeID := s.registry.TriggerType(kind)

	return s.newNode(typeID, "", names)
}

// templateNodes clones the template's node list, skipping trigger-category
// entries and applying per-node parameter overrides on top of the registry
// defaults.
func (s *Synthesizer) templateNodes(template *templates.Template, names *nameAllocator) []*models.WorkflowNode {
	var nodes []*models.WorkflowNode

	for _, slot := range template.Nodes {
		if len(nodes) >= maxTemplateNodes {
			break
		}

		if s.registry.IsTrigger(slot.Type) {
			continue
		}

		node := s.newNode(slot.Type, slot.Label, names)
		for key, value := range slot.Parameters {
			node.Parameters[key] = value
		}

		nodes = append(nodes, node)
	}

	return nodes
}

// featureNodes emits one node per detected feature using the feature's
// first candidate type. Features are visited in sorted order so the graph
// structure stays deterministic.
func (s *Synthesizer) featureNodes(features models.FeatureMatch, names *nameAllocator) []*models.WorkflowNode {
	featureNames := features.Features()
	sort.Strings(featureNames)

	var nodes []*models.WorkflowNode

	for _, feature := range featureNames {
		candidates := features[feature]
		if len(candidates) == 0 {
			continue
		}

		typeID := candidates[0]
		if s.registry.IsTrigger(typeID) {
			continue
		}

		nodes = append(nodes, s.newNode(typeID, "", names))
	}

	return nodes
}

// pad appends generic processing nodes until the complexity floor is met.
func (s *Synthesizer) pad(nodes []*models.WorkflowNode, complexity models.Complexity, names *nameAllocator) []*models.WorkflowNode {
	for len(nodes) < complexity.NodeFloor() {
		nodes = append(nodes, s.newNode(registry.TypeNoOp, "Process Step", names))
	}

	return nodes
}

func (s *Synthesizer) newNode(typeID, label string, names *nameAllocator) *models.WorkflowNode {
	version := 1

	if spec, ok := s.registry.Lookup(typeID); ok {
		version = spec.CurrentVersion

		if label == "" {
			label = spec.DisplayName
		}
	}

	if label == "" {
		label = "Node"
	}

	return &models.WorkflowNode{
		ID:          uuid.NewString(),
		Name:        names.Allocate(label),
		Type:        typeID,
		TypeVersion: version,
		Parameters:  registry.DefaultParameters(typeID),
	}
}

// layout assigns left-to-right canvas positions following the node order.
func layout(nodes []*models.WorkflowNode) {
	for i, node := range nodes {
		node.Position = models.Position{
			X: float64(baseX + i*stepX),
			Y: baseY,
		}
	}
}
