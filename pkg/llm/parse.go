package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/flowdraft/flowdraft/pkg/models"
)

// workflowSchema is the minimum shape an externally generated workflow must
// satisfy before it is accepted.
const workflowSchema = `{
	"type": "object",
	"required": ["name", "nodes"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"nodes": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "type"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"type": {"type": "string", "minLength": 1}
				}
			}
		},
		"connections": {"type": "object"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(workflowSchema)

// ErrNoJSON is returned when the completion text contains no JSON object.
var ErrNoJSON = errors.New("completion contained no JSON object")

// ParseWorkflow extracts the workflow object from a completion. Code fences
// are stripped, truncated replies are brace-balanced, and the result is
// schema-checked before decoding. Missing ids and versions are filled in.
func ParseWorkflow(text string) (*models.Workflow, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, ErrNoJSON
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("generated workflow is not valid JSON: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return nil, fmt.Errorf("generated workflow failed schema check: %s", strings.Join(details, "; "))
	}

	var workflow models.Workflow
	if err := json.Unmarshal([]byte(payload), &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode generated workflow: %w", err)
	}

	normalizeParsed(&workflow)

	return &workflow, nil
}

// extractJSON locates the first JSON object in the text, stripping markdown
// code fences and repairing a truncated tail by balancing braces and
// brackets outside string literals.
func extractJSON(text string) string {
	cleaned := strings.TrimSpace(text)

	if idx := strings.Index(cleaned, "```"); idx >= 0 {
		cleaned = cleaned[idx+3:]
		cleaned = strings.TrimPrefix(cleaned, "json")

		if end := strings.Index(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	}

	start := strings.Index(cleaned, "{")
	if start < 0 {
		return ""
	}

	cleaned = strings.TrimSpace(cleaned[start:])

	var (
		stack    []byte
		inString bool
		escaped  bool
	)

	for i := 0; i < len(cleaned); i++ {
		r := cleaned[i]

		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case inString:
		case r == '{' || r == '[':
			stack = append(stack, r)
		case r == '}' || r == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

			if len(stack) == 0 {
				return cleaned[:i+1]
			}
		}
	}

	// Truncated reply: close the open string, then unwind the delimiter
	// stack in reverse.
	if inString {
		cleaned += `"`
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			cleaned += "}"
		} else {
			cleaned += "]"
		}
	}

	return cleaned
}

// normalizeParsed fills in the fields a language model habitually omits.
func normalizeParsed(workflow *models.Workflow) {
	if workflow.Connections == nil {
		workflow.Connections = models.ConnectionMap{}
	}

	if workflow.Settings == nil {
		workflow.Settings = map[string]any{}
	}

	for _, node := range workflow.Nodes {
		if node.ID == "" {
			node.ID = uuid.NewString()
		}

		if node.TypeVersion == 0 {
			node.TypeVersion = 1
		}

		if node.Parameters == nil {
			node.Parameters = map[string]any{}
		}
	}
}
