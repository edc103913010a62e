package llm

import (
	"fmt"
	"strings"

	"github.com/flowdraft/flowdraft/pkg/models"
)

const systemPrompt = `You design n8n workflows. Reply with a single JSON ` +
	`object containing the keys name, nodes, connections, active, settings ` +
	`and tags. Each node needs id, name, type, typeVersion, position and ` +
	`parameters. Do not add commentary.`

// Top template node types are truncated so a pathological match cannot blow
// up the prompt.
const maxPromptNodeTypes = 6

// PromptInput carries everything the prompt builder embeds.
type PromptInput struct {
	Description string
	Trigger     models.TriggerKind
	Complexity  models.Complexity
	NodeTypes   []string
}

// BuildPrompt renders the compact user prompt.
func BuildPrompt(input PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Build a workflow for: %s\n", input.Description)
	fmt.Fprintf(&b, "Trigger: %s. Complexity: %s.\n", input.Trigger, input.Complexity)

	if len(input.NodeTypes) > 0 {
		types := input.NodeTypes
		if len(types) > maxPromptNodeTypes {
			types = types[:maxPromptNodeTypes]
		}

		fmt.Fprintf(&b, "Prefer these node types: %s.\n", strings.Join(types, ", "))
	}

	b.WriteString("The first node must be the trigger. Connect nodes as a linear chain keyed by node name.")

	return b.String()
}
