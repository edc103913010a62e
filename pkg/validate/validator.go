// Package validate checks generated workflows against the node-type
// registry and connection-topology rules, and repairs connection defects.
package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
)

// placeholderDomains flag URLs that were clearly never filled in.
var placeholderDomains = []string{
	"example.com", "test.com", "localhost", "your-domain.com", "placeholder.com",
}

var feedURLPattern = regexp.MustCompile(`(?i)\.(xml|rss|atom)(\?.*)?$`)

// Validator checks workflows against the registry. Validation never fails
// hard; every finding becomes a report entry and overall validity depends
// only on the error list.
type Validator struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewValidator creates a validator backed by the given registry.
func NewValidator(reg *registry.Registry, logger *slog.Logger) *Validator {
	return &Validator{registry: reg, logger: logger}
}

// Validate runs every check independently and aggregates the findings.
func (v *Validator) Validate(workflow *models.Workflow) *models.ValidationReport {
	report := models.NewValidationReport()

	if workflow == nil {
		report.AddError("workflow is missing")
		return report
	}

	v.checkStructure(workflow, report)
	v.checkNodes(workflow, report)
	v.checkConnections(workflow, report)

	return report
}

func (v *Validator) checkStructure(workflow *models.Workflow, report *models.ValidationReport) {
	if strings.TrimSpace(workflow.Name) == "" {
		report.AddError("workflow name is required")
	}

	if len(workflow.Nodes) == 0 {
		report.AddError("workflow must contain at least one node")
	}
}

func (v *Validator) checkNodes(workflow *models.Workflow, report *models.ValidationReport) {
	seenIDs := make(map[string]bool)
	seenNames := make(map[string]bool)

	for i, node := range workflow.Nodes {
		label := node.Name
		if label == "" {
			label = fmt.Sprintf("node[%d]", i)
		}

		if node.ID == "" {
			report.NodeError(label, fmt.Sprintf("node %q is missing an id", label))
		} else if seenIDs[node.ID] {
			report.NodeError(label, fmt.Sprintf("duplicate node id %q", node.ID))
		}

		seenIDs[node.ID] = true

		if node.Name == "" {
			report.NodeError(label, fmt.Sprintf("node[%d] is missing a name", i))
		} else if seenNames[node.Name] {
			report.NodeError(label, fmt.Sprintf("duplicate node name %q", node.Name))
		}

		seenNames[node.Name] = true

		if node.Type == "" {
			report.NodeError(label, fmt.Sprintf("node %q is missing a type", label))
			continue
		}

		v.checkNodeType(node, label, report)
		v.checkParameters(node, label, report)
	}
}

// checkNodeType reports unknown types as warnings; schema violations on
// known types are errors.
func (v *Validator) checkNodeType(node *models.WorkflowNode, label string, report *models.ValidationReport) {
	spec, known := v.registry.Lookup(node.Type)
	if !known {
		report.NodeWarning(label, fmt.Sprintf("node %q uses unknown type %q", label, node.Type))
		return
	}

	if !spec.SupportsVersion(node.TypeVersion) {
		report.NodeError(label, fmt.Sprintf(
			"node %q uses unsupported version %d of %q (supported: %v)",
			label, node.TypeVersion, node.Type, spec.SupportedVersions))
	}

	for _, required := range spec.RequiredParams {
		if _, present := node.Parameters[required]; !present {
			report.NodeError(label, fmt.Sprintf(
				"node %q is missing required parameter %q", label, required))
		}
	}
}

func (v *Validator) checkParameters(node *models.WorkflowNode, label string, report *models.ValidationReport) {
	for key, value := range node.Parameters {
		stringValues(key, value, func(path, str string) {
			for _, expr := range invalidExpressions(str) {
				report.NodeError(label, fmt.Sprintf(
					"node %q parameter %q contains invalid expression %q", label, path, expr))
			}

			if isURLParameter(path) {
				v.checkURL(node, label, path, str, report)
			}
		})
	}

	if node.Type == registry.TypeScheduleTrigger {
		v.checkCron(node, label, report)
	}
}

func isURLParameter(path string) bool {
	lowered := strings.ToLower(path)
	return strings.Contains(lowered, "url") || strings.Contains(lowered, "endpoint")
}

func (v *Validator) checkURL(node *models.WorkflowNode, label, path, url string, report *models.ValidationReport) {
	lowered := strings.ToLower(url)

	for _, domain := range placeholderDomains {
		if strings.Contains(lowered, domain) {
			report.NodeWarning(label, fmt.Sprintf(
				"node %q parameter %q contains placeholder URL %q", label, path, url))

			break
		}
	}

	if node.Type == registry.TypeRSSFeedRead && !feedURLPattern.MatchString(url) {
		report.NodeError(label, fmt.Sprintf(
			"node %q feed URL %q must point at an .xml or .rss feed", label, url))
	}
}

// checkCron parses the schedule expression with the standard five-field
// cron parser.
func (v *Validator) checkCron(node *models.WorkflowNode, label string, report *models.ValidationReport) {
	expr, ok := node.Parameters["cronExpression"].(string)
	if !ok {
		return
	}

	if _, err := cron.ParseStandard(expr); err != nil {
		report.NodeError(label, fmt.Sprintf(
			"node %q has invalid cron expression %q: %v", label, expr, err))
	}
}

func (v *Validator) checkConnections(workflow *models.Workflow, report *models.ValidationReport) {
	names := make(map[string]bool)
	for _, node := range workflow.Nodes {
		names[node.Name] = true
	}

	for source, conns := range workflow.Connections {
		if !names[source] {
			report.ConnectionError(source, fmt.Sprintf(
				"connection source %q does not match any node", source))
		}

		for _, group := range conns.Main {
			for _, target := range group {
				if !names[target.Node] {
					report.ConnectionError(source, fmt.Sprintf(
						"connection target %q does not match any node", target.Node))
				}

				if target.Node == source {
					report.ConnectionError(source, fmt.Sprintf(
						"connection from %q to itself is not allowed", source))
				}
			}
		}
	}

	// Every non-trigger node needs at least one inbound edge.
	targets := workflow.Connections.TargetNames()
	for _, node := range workflow.Nodes {
		if v.registry.IsTrigger(node.Type) || node.Name == "" {
			continue
		}

		if !targets[node.Name] {
			report.NodeError(node.Name, fmt.Sprintf(
				"node %q is disconnected: no inbound connection", node.Name))
			report.AddSuggestion(fmt.Sprintf(
				"run connection repair to link %q into the chain", node.Name))
		}
	}
}
