package validate

import (
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/synth"
)

// RepairConnections rebuilds the connection map from the current node
// order, applying the content-pipeline reorder first. It never adds or
// removes nodes, only replaces connections (and node order when the reorder
// fires), and is idempotent: repairing an already repaired workflow changes
// nothing.
func (v *Validator) RepairConnections(workflow *models.Workflow) *models.Workflow {
	if workflow == nil || len(workflow.Nodes) == 0 {
		return workflow
	}

	workflow.Nodes = synth.ReorderContentPipeline(workflow.Nodes, v.registry)
	workflow.Connections = synth.Connect(workflow.Nodes)

	return workflow
}
