package models

// ValidationReport is the structured outcome of validating a workflow.
// Validation never fails hard: every problem becomes an entry here, and
// overall validity depends only on the error list.
type ValidationReport struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`

	Nodes       map[string]*ScopedReport `json:"nodes,omitempty"`
	Connections map[string]*ScopedReport `json:"connections,omitempty"`
}

// ScopedReport carries the findings for a single node or connection source.
type ScopedReport struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidationReport returns an empty report that is valid until an error
// is recorded.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		Valid:       true,
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}
}

// AddError records a workflow-level error and marks the report invalid.
func (r *ValidationReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// AddWarning records a workflow-level warning. Warnings do not affect
// validity.
func (r *ValidationReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddSuggestion records an advisory hint.
func (r *ValidationReport) AddSuggestion(msg string) {
	r.Suggestions = append(r.Suggestions, msg)
}

// NodeError records an error scoped to one node and mirrors it at the
// workflow level.
func (r *ValidationReport) NodeError(name, msg string) {
	r.nodeReport(name).Errors = append(r.nodeReport(name).Errors, msg)
	r.AddError(msg)
}

// NodeWarning records a warning scoped to one node and mirrors it at the
// workflow level.
func (r *ValidationReport) NodeWarning(name, msg string) {
	r.nodeReport(name).Warnings = append(r.nodeReport(name).Warnings, msg)
	r.AddWarning(msg)
}

// ConnectionError records an error scoped to one connection source and
// mirrors it at the workflow level.
func (r *ValidationReport) ConnectionError(source, msg string) {
	r.connReport(source).Errors = append(r.connReport(source).Errors, msg)
	r.AddError(msg)
}

func (r *ValidationReport) nodeReport(name string) *ScopedReport {
	if r.Nodes == nil {
		r.Nodes = make(map[string]*ScopedReport)
	}

	if r.Nodes[name] == nil {
		r.Nodes[name] = &ScopedReport{}
	}

	return r.Nodes[name]
}

func (r *ValidationReport) connReport(source string) *ScopedReport {
	if r.Connections == nil {
		r.Connections = make(map[string]*ScopedReport)
	}

	if r.Connections[source] == nil {
		r.Connections[source] = &ScopedReport{}
	}

	return r.Connections[source]
}
