package models

// ConnectionTarget is one directed edge endpoint. "node" references the
// target node's name, "index" the input slot on that node.
type ConnectionTarget struct {
	Node  string `json:"node"  validate:"required"`
	Type  string `json:"type"  validate:"required,eq=main"`
	Index int    `json:"index" validate:"min=0"`
}

// NodeConnections holds the outgoing edges of one source node, grouped by
// output port. Only the "main" port is produced by this system, but the
// nested slice-of-slices shape is required by the downstream tool.
type NodeConnections struct {
	Main [][]ConnectionTarget `json:"main"`
}

// ConnectionMap maps a source node name to its outgoing connections.
type ConnectionMap map[string]NodeConnections

// EdgeType is the only connection type this system emits.
const EdgeType = "main"

// Targets returns every target referenced from the given source, flattening
// the port grouping.
func (m ConnectionMap) Targets(source string) []ConnectionTarget {
	conns, ok := m[source]
	if !ok {
		return nil
	}

	var targets []ConnectionTarget
	for _, group := range conns.Main {
		targets = append(targets, group...)
	}

	return targets
}

// TargetNames collects the set of all node names that appear as a target of
// any connection.
func (m ConnectionMap) TargetNames() map[string]bool {
	targets := make(map[string]bool)

	for _, conns := range m {
		for _, group := range conns.Main {
			for _, target := range group {
				targets[target.Node] = true
			}
		}
	}

	return targets
}
