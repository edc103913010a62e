// Package web provides HTTP request and response types for the generation API.
package web

import (
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
)

// GenerateWorkflowRequest is the body of POST /workflows/generate.
// Description accepts any JSON value; non-string input is coerced.
type GenerateWorkflowRequest struct {
	Description  any    `json:"description"`
	Trigger      string `json:"trigger,omitempty"       validate:"omitempty,oneof=webhook schedule manual"`
	Complexity   string `json:"complexity,omitempty"    validate:"omitempty,oneof=simple medium complex"`
	TemplateHint string `json:"template_hint,omitempty"`
}

// ValidateWorkflowRequest is the body of POST /workflows/validate.
type ValidateWorkflowRequest struct {
	Workflow *models.Workflow `json:"workflow" validate:"required"`
	Repair   bool             `json:"repair,omitempty"`
}

// ValidateWorkflowResponse carries the report and, when repair was
// requested, the repaired workflow with its fresh report.
type ValidateWorkflowResponse struct {
	Report         *models.ValidationReport `json:"report"`
	Repaired       *models.Workflow         `json:"repaired,omitempty"`
	RepairedReport *models.ValidationReport `json:"repaired_report,omitempty"`
}

// NodeTypeResponse is one registry entry in GET /node-types.
type NodeTypeResponse struct {
	Type              string   `json:"type"`
	DisplayName       string   `json:"display_name"`
	Category          string   `json:"category"`
	CurrentVersion    int      `json:"current_version"`
	SupportedVersions []int    `json:"supported_versions"`
	RequiredParams    []string `json:"required_params"`
	OptionalParams    []string `json:"optional_params,omitempty"`
}

// TransformNodeTypeResponse maps a registry spec to its API shape.
func TransformNodeTypeResponse(spec *registry.NodeTypeSpec) NodeTypeResponse {
	return NodeTypeResponse{
		Type:              spec.Type,
		DisplayName:       spec.DisplayName,
		Category:          string(spec.Category),
		CurrentVersion:    spec.CurrentVersion,
		SupportedVersions: spec.SupportedVersions,
		RequiredParams:    spec.RequiredParams,
		OptionalParams:    spec.OptionalParams,
	}
}

// TemplateResponse is one library entry in GET /templates. Node parameters
// are omitted; the list endpoint is a catalog, not an export.
type TemplateResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Source    string   `json:"source"`
	Features  []string `json:"features,omitempty"`
	NodeTypes []string `json:"node_types"`
	NodeCount int      `json:"node_count"`
}

// TransformTemplateResponse maps a template to its API shape.
func TransformTemplateResponse(template *templates.Template) TemplateResponse {
	return TemplateResponse{
		ID:        template.ID,
		Name:      template.Name,
		Source:    string(template.Source),
		Features:  template.Features,
		NodeTypes: template.AllNodeTypes(),
		NodeCount: len(template.Nodes),
	}
}
