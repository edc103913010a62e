// Package templates provides the workflow template library and the matcher
// that scores templates against detected features.
package templates

// Source distinguishes how a template was authored. Hand-built templates
// declare the features they serve; corpus-derived templates only know their
// node types. Both are scored by the same matcher.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceCorpus  Source = "corpus"
)

// TemplateNode is one node slot in a template. Parameters override the
// registry defaults for that type when present.
type TemplateNode struct {
	Type       string         `json:"type"       validate:"required"`
	Label      string         `json:"label"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Template is a pre-built workflow shape used as a structural starting
// point for synthesis.
type Template struct {
	ID        string         `json:"id"     validate:"required"`
	Name      string         `json:"name"   validate:"required"`
	Source    Source         `json:"source" validate:"required,oneof=builtin corpus"`
	Features  []string       `json:"features,omitempty"`
	NodeTypes []string       `json:"node_types,omitempty"`
	Nodes     []TemplateNode `json:"nodes"  validate:"required,min=1,dive"`
}

// AllNodeTypes returns the template's node types, falling back to the node
// list when the corpus metadata is absent.
func (t *Template) AllNodeTypes() []string {
	if len(t.NodeTypes) > 0 {
		return t.NodeTypes
	}

	types := make([]string, 0, len(t.Nodes))
	for _, node := range t.Nodes {
		types = append(types, node.Type)
	}

	return types
}
