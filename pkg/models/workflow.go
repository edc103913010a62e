// Package models defines the core domain models for generated n8n workflows.
package models

import (
	"encoding/json"
	"fmt"
)

// NodeCategory classifies a node type within the registry.
type NodeCategory string

const (
	CategoryTrigger     NodeCategory = "trigger"     // Entry points (webhook, schedule, manual)
	CategoryProcessing  NodeCategory = "processing"  // Data shaping (set, code, filter, ...)
	CategoryIntegration NodeCategory = "integration" // Outbound integrations (slack, http, ...)
	CategoryResponse    NodeCategory = "response"    // Terminal response nodes
)

// Position is a node's canvas coordinate. It serializes to the two-element
// array the downstream editor expects.
type Position struct {
	X float64
	Y float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var coords [2]float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("position must be a [x, y] array: %w", err)
	}

	p.X = coords[0]
	p.Y = coords[1]

	return nil
}

// WorkflowNode is one vertex in a workflow graph. The node name doubles as
// the connection-map key, so it must be unique within a workflow; the id is
// kept as a stable identity so renaming for display never breaks edges.
type WorkflowNode struct {
	ID          string         `json:"id"          validate:"required"`
	Name        string         `json:"name"        validate:"required,min=1"`
	Type        string         `json:"type"        validate:"required"`
	TypeVersion int            `json:"typeVersion" validate:"min=1"`
	Position    Position       `json:"position"`
	Parameters  map[string]any `json:"parameters"`
}

// Workflow is the top-level generated artifact. Field names and nesting
// follow the n8n import format exactly.
type Workflow struct {
	Name        string          `json:"name"        validate:"required,min=1"`
	Nodes       []*WorkflowNode `json:"nodes"       validate:"required,min=1,dive"`
	Connections ConnectionMap   `json:"connections"`
	Active      bool            `json:"active"`
	Settings    map[string]any  `json:"settings"`
	Tags        []string        `json:"tags"`
}

// NodeByName returns the node with the given name, or nil.
func (w *Workflow) NodeByName(name string) *WorkflowNode {
	for _, node := range w.Nodes {
		if node.Name == name {
			return node
		}
	}

	return nil
}

// NodeByID returns the node with the given id, or nil. The id is the stable
// handle; prefer it over the name when tracking a node across renames.
func (w *Workflow) NodeByID(id string) *WorkflowNode {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// RenameNode changes a node's display name and rewrites every connection
// key and target that referenced the old name, so renaming can never leave
// dangling edges. The new name must not collide with another node.
func (w *Workflow) RenameNode(id, newName string) error {
	node := w.NodeByID(id)
	if node == nil {
		return fmt.Errorf("no node with id %q", id)
	}

	if newName == "" {
		return fmt.Errorf("node name must not be empty")
	}

	if existing := w.NodeByName(newName); existing != nil && existing.ID != id {
		return fmt.Errorf("node name %q is already taken", newName)
	}

	oldName := node.Name
	node.Name = newName

	if conns, ok := w.Connections[oldName]; ok {
		delete(w.Connections, oldName)
		w.Connections[newName] = conns
	}

	for source, conns := range w.Connections {
		for _, group := range conns.Main {
			for i := range group {
				if group[i].Node == oldName {
					group[i].Node = newName
				}
			}
		}

		w.Connections[source] = conns
	}

	return nil
}

// NodeNames returns the names of all nodes in order.
func (w *Workflow) NodeNames() []string {
	names := make([]string, 0, len(w.Nodes))
	for _, node := range w.Nodes {
		names = append(names, node.Name)
	}

	return names
}

// Clone returns a deep copy of the workflow. Parameter values are copied via
// JSON round-trip since they are plain data by construction.
func (w *Workflow) Clone() (*Workflow, error) {
	payload, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workflow: %w", err)
	}

	var clone Workflow
	if err := json.Unmarshal(payload, &clone); err != nil {
		return nil, fmt.Errorf("failed to deserialize workflow: %w", err)
	}

	return &clone, nil
}
