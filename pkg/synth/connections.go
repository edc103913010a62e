package synth

import (
	"strings"
	"unicode"

	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
)

// Connect wires nodes into a linear chain: node i feeds node i+1, keyed by
// node name. It is the only topology this system produces; branches, merges,
// and cycles are never built.
func Connect(nodes []*models.WorkflowNode) models.ConnectionMap {
	connections := make(models.ConnectionMap)

	for i := 0; i+1 < len(nodes); i++ {
		connections[nodes[i].Name] = models.NodeConnections{
			Main: [][]models.ConnectionTarget{
				{
					{
						Node:  nodes[i+1].Name,
						Type:  models.EdgeType,
						Index: 0,
					},
				},
			},
		}
	}

	return connections
}

// contentPipelineRoles orders the recognizable roles of the content
// generation pattern: feed reader, content generator, parser, publisher.
var contentPipelineRoles = []struct {
	types []string
	names []string
}{
	{
		types: []string{registry.TypeRSSFeedRead},
		names: []string{"rss", "feed"},
	},
	{
		types: []string{registry.TypeOpenAI},
		names: []string{"generate", "content", "ai"},
	},
	{
		types: []string{registry.TypeXML},
		names: []string{"parse", "xml", "extract"},
	},
	{
		types: []string{registry.TypeWordpress},
		names: []string{"publish", "wordpress", "post"},
	},
}

// ReorderContentPipeline rearranges nodes into the canonical feed → generate
// → parse → publish sequence when those roles are present, keeping the
// trigger first and unrecognized nodes in their relative order. Role
// detection is fuzzy (type id or whole-word name match), so this is a best-effort
// step callers opt into; it returns the input slice unchanged when fewer
// than two roles are found.
func ReorderContentPipeline(nodes []*models.WorkflowNode, reg *registry.Registry) []*models.WorkflowNode {
	if len(nodes) < 3 {
		return nodes
	}

	assigned := make(map[int]int) // node index -> role index
	rolesFound := 0

	for roleIdx, role := range contentPipelineRoles {
		for nodeIdx, node := range nodes {
			if _, taken := assigned[nodeIdx]; taken || reg.IsTrigger(node.Type) {
				continue
			}

			if matchesRole(node, role.types, role.names) {
				assigned[nodeIdx] = roleIdx
				rolesFound++

				break
			}
		}
	}

	if rolesFound < 2 {
		return nodes
	}

	var trigger []*models.WorkflowNode

	roleNodes := make([]*models.WorkflowNode, len(contentPipelineRoles))
	var rest []*models.WorkflowNode

	for nodeIdx, node := range nodes {
		switch {
		case reg.IsTrigger(node.Type):
			trigger = append(trigger, node)
		default:
			if roleIdx, ok := assigned[nodeIdx]; ok {
				roleNodes[roleIdx] = node
			} else {
				rest = append(rest, node)
			}
		}
	}

	reordered := make([]*models.WorkflowNode, 0, len(nodes))
	reordered = append(reordered, trigger...)

	for _, node := range roleNodes {
		if node != nil {
			reordered = append(reordered, node)
		}
	}

	return append(reordered, rest...)
}

func matchesRole(node *models.WorkflowNode, types, names []string) bool {
	for _, typeID := range types {
		if node.Type == typeID {
			return true
		}
	}

	// Match whole words only; a short fragment like "ai" must not hit
	// inside unrelated names such as "Email".
	words := strings.FieldsFunc(strings.ToLower(node.Name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, fragment := range names {
		for _, word := range words {
			if word == fragment {
				return true
			}
		}
	}

	return false
}
