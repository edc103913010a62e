// Package web provides the HTTP handlers for the workflow generation API.
package web

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/flowdraft/flowdraft/pkg/eventbus"
	"github.com/flowdraft/flowdraft/pkg/events"
	"github.com/flowdraft/flowdraft/pkg/generator"
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
)

type APIHandlers struct {
	generator *generator.Generator
	registry  *registry.Registry
	library   *templates.Library
	validator *validator.Validate
	eventBus  eventbus.EventBus
}

func NewAPIHandlers(
	gen *generator.Generator,
	reg *registry.Registry,
	library *templates.Library,
	validate *validator.Validate,
	eventBus eventbus.EventBus,
) *APIHandlers {
	return &APIHandlers{
		generator: gen,
		registry:  reg,
		library:   library,
		validator: validate,
		eventBus:  eventBus,
	}
}

func (h *APIHandlers) GenerateWorkflow(c fiber.Ctx) error {
	var req GenerateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.generator.Generate(c.Context(), generator.Request{
		Description:  req.Description,
		TriggerKind:  models.TriggerKind(req.Trigger),
		Complexity:   models.Complexity(req.Complexity),
		TemplateHint: req.TemplateHint,
	})
	if err != nil {
		return handleGenerateError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	var req ValidateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	response := ValidateWorkflowResponse{
		Report: h.generator.Validator().Validate(req.Workflow),
	}

	if req.Repair {
		response.Repaired = h.generator.Validator().RepairConnections(req.Workflow)
		response.RepairedReport = h.generator.Validator().Validate(response.Repaired)

		h.publishRepaired(c.Context(), response.Repaired, response.RepairedReport)
	}

	h.publishValidated(c.Context(), req.Workflow, response.Report)

	return c.JSON(response)
}

func (h *APIHandlers) ListNodeTypes(c fiber.Ctx) error {
	specs := h.registry.All()

	responses := make([]NodeTypeResponse, 0, len(specs))
	for _, spec := range specs {
		responses = append(responses, TransformNodeTypeResponse(spec))
	}

	return c.JSON(fiber.Map{
		"node_types":  responses,
		"total_count": len(responses),
	})
}

func (h *APIHandlers) ListTemplates(c fiber.Ctx) error {
	all := h.library.All()

	responses := make([]TemplateResponse, 0, len(all))
	for _, template := range all {
		responses = append(responses, TransformTemplateResponse(template))
	}

	return c.JSON(fiber.Map{
		"templates":   responses,
		"total_count": len(responses),
	})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "Flowdraft API is healthy",
		"checkers": fiber.Map{
			"node_types": h.registry.Len(),
			"templates":  h.library.Len(),
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) publishValidated(ctx context.Context, workflow *models.Workflow, report *models.ValidationReport) {
	if h.eventBus == nil {
		return
	}

	_ = h.eventBus.Publish(ctx, events.WorkflowValidated{
		BaseEvent: events.BaseEvent{
			ID:        uuid.NewString(),
			Type:      events.WorkflowValidatedEvent,
			Timestamp: time.Now().UTC(),
		},
		WorkflowName: workflow.Name,
		Valid:        report.Valid,
		ErrorCount:   len(report.Errors),
		WarningCount: len(report.Warnings),
	})
}

func (h *APIHandlers) publishRepaired(ctx context.Context, workflow *models.Workflow, report *models.ValidationReport) {
	if h.eventBus == nil {
		return
	}

	_ = h.eventBus.Publish(ctx, events.WorkflowRepaired{
		BaseEvent: events.BaseEvent{
			ID:        uuid.NewString(),
			Type:      events.WorkflowRepairedEvent,
			Timestamp: time.Now().UTC(),
		},
		WorkflowName: workflow.Name,
		NodeCount:    len(workflow.Nodes),
		ValidAfter:   report.Valid,
	})
}
