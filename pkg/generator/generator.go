// Package generator orchestrates the full pipeline: normalization, feature
// detection, template matching, synthesis (or external generation), and
// validation. A Generator is built once at startup from immutable parts and
// is safe for concurrent use.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowdraft/flowdraft/pkg/cache"
	"github.com/flowdraft/flowdraft/pkg/detect"
	"github.com/flowdraft/flowdraft/pkg/eventbus"
	"github.com/flowdraft/flowdraft/pkg/llm"
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/normalize"
	"github.com/flowdraft/flowdraft/pkg/otelhelper"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/synth"
	"github.com/flowdraft/flowdraft/pkg/templates"
	"github.com/flowdraft/flowdraft/pkg/validate"
)

// Confidence below this threshold rejects the request outright. The
// normalizer floors every non-rejected score above it, so in practice only
// inputs it marked as rejected fall under.
const rejectThreshold = 0.1

const cacheTTL = 10 * time.Minute

// ErrRejected marks the one input class the pipeline refuses: descriptions
// the normalizer could not turn into anything usable.
var ErrRejected = errors.New("description rejected")

// RejectedError carries the normalizer's reason. It unwraps to ErrRejected
// so callers can match with errors.Is.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("description rejected: %s", e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// Request is one generation call. Description accepts any value; non-string
// input is coerced by the normalizer. Zero-value kind and complexity get
// defaults.
type Request struct {
	Description  any
	TriggerKind  models.TriggerKind
	Complexity   models.Complexity
	TemplateHint string
}

// Result is the full pipeline output. The workflow and report are always
// both present on success; validation errors mark the report, they do not
// suppress the workflow.
type Result struct {
	Workflow   *models.Workflow         `json:"workflow"`
	Report     *models.ValidationReport `json:"report"`
	Source     string                   `json:"source"`
	TemplateID string                   `json:"template_id,omitempty"`
	Fallback   bool                     `json:"fallback,omitempty"`
	Confidence float64                  `json:"confidence"`
	Language   string                   `json:"language"`
	Normalized string                   `json:"normalized"`
	CacheHit   bool                     `json:"cache_hit,omitempty"`
}

// Generation sources reported in Result.Source.
const (
	SourceTemplate = "template"
	SourceFeatures = "features"
	SourceLLM      = "llm"
)

// Generator wires the pipeline stages together.
type Generator struct {
	registry    *registry.Registry
	normalizer  *normalize.Normalizer
	detector    *detect.Detector
	matcher     *templates.Matcher
	synthesizer *synth.Synthesizer
	validator   *validate.Validator
	library     *templates.Library
	logger      *slog.Logger

	llm    *llm.Client
	cache  cache.Cache
	bus    eventbus.EventBus
	tracer trace.Tracer
}

// NewGenerator builds a generator from the required pipeline stages.
// Optional collaborators are attached with the With* methods.
func NewGenerator(reg *registry.Registry, library *templates.Library, logger *slog.Logger) *Generator {
	return &Generator{
		registry:    reg,
		normalizer:  normalize.NewNormalizer(),
		detector:    detect.NewDetector(),
		matcher:     templates.NewMatcher(library),
		synthesizer: synth.NewSynthesizer(reg, logger),
		validator:   validate.NewValidator(reg, logger),
		library:     library,
		logger:      logger,
	}
}

// WithLLM attaches an external generation client. When set, generation is
// attempted through it first with deterministic synthesis as the fallback.
func (g *Generator) WithLLM(client *llm.Client) *Generator {
	g.llm = client
	return g
}

// WithCache attaches a result cache keyed by the normalized request triple.
func (g *Generator) WithCache(c cache.Cache) *Generator {
	g.cache = c
	return g
}

// WithEventBus attaches a lifecycle event publisher.
func (g *Generator) WithEventBus(bus eventbus.EventBus) *Generator {
	g.bus = bus
	return g
}

// WithTracer attaches a tracer for per-request spans.
func (g *Generator) WithTracer(tracer trace.Tracer) *Generator {
	g.tracer = tracer
	return g
}

// Validator exposes the shared validator for standalone validation calls.
func (g *Generator) Validator() *validate.Validator {
	return g.validator
}

// Generate runs the pipeline. The only error path is a rejected
// description; every other problem is absorbed into the result's report.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	trigger := req.TriggerKind
	if trigger == "" {
		trigger = models.TriggerWebhook
	}

	complexity := req.Complexity
	if complexity == "" {
		complexity = models.ComplexityMedium
	}

	text, info := g.normalizer.Normalize(req.Description)

	ctx, span := g.startSpan(ctx, trigger, complexity, info)
	defer span.End()

	if info.Rejected || info.Confidence < rejectThreshold {
		err := &RejectedError{Reason: info.RejectReason}
		otelhelper.SetError(span, err)
		g.publishFailure(ctx, info.RejectReason)

		return nil, err
	}

	if cached, ok := g.cachedResult(ctx, text, trigger, complexity); ok {
		span.SetAttributes(attribute.Bool(otelhelper.CacheHitKey, true))
		g.publishGenerated(ctx, cached, trigger, complexity)

		return cached, nil
	}

	features := g.detector.Detect(text)
	template, score := g.pickTemplate(features, text, req.TemplateHint)

	result := &Result{
		Confidence: info.Confidence,
		Language:   info.Language,
		Normalized: text,
	}

	if template != nil {
		result.Source = SourceTemplate
		result.TemplateID = template.ID
	} else {
		result.Source = SourceFeatures
	}

	result.Workflow = g.buildWorkflow(ctx, template, features, text, trigger, complexity, result)
	result.Report = g.validator.Validate(result.Workflow)

	span.SetAttributes(
		attribute.String(otelhelper.WorkflowNameKey, result.Workflow.Name),
		attribute.Int(otelhelper.NodeCountKey, len(result.Workflow.Nodes)),
		attribute.String(otelhelper.SourceKey, result.Source),
	)

	g.logger.Info("generated workflow",
		"name", result.Workflow.Name,
		"nodes", len(result.Workflow.Nodes),
		"source", result.Source,
		"template_id", result.TemplateID,
		"template_score", score,
		"valid", result.Report.Valid,
		"confidence", info.Confidence)

	g.storeResult(ctx, text, trigger, complexity, result)
	g.publishGenerated(ctx, result, trigger, complexity)

	return result, nil
}

// buildWorkflow produces the graph, preferring the external adapter when
// one is configured and falling back to deterministic synthesis on any of
// its failures.
func (g *Generator) buildWorkflow(
	ctx context.Context,
	template *templates.Template,
	features models.FeatureMatch,
	text string,
	trigger models.TriggerKind,
	complexity models.Complexity,
	result *Result,
) *models.Workflow {
	if g.llm != nil {
		workflow, err := g.llm.Generate(ctx, llm.PromptInput{
			Description: text,
			Trigger:     trigger,
			Complexity:  complexity,
			NodeTypes:   g.promptNodeTypes(template, features),
		})
		if err == nil {
			result.Source = SourceLLM

			if len(workflow.Connections) == 0 {
				workflow = g.validator.RepairConnections(workflow)
			}

			return workflow
		}

		result.Fallback = true

		g.logger.Warn("external generation failed, synthesizing instead", "error", err)
	}

	return g.synthesizer.Synthesize(template, features, text, trigger, complexity)
}

// pickTemplate resolves an explicit hint first, then falls back to scoring.
func (g *Generator) pickTemplate(features models.FeatureMatch, text, hint string) (*templates.Template, float64) {
	if hint != "" {
		if template, ok := g.library.Get(hint); ok {
			return template, 1
		}

		g.logger.Warn("template hint not found, matching instead", "hint", hint)
	}

	return g.matcher.BestMatch(features, text)
}

func (g *Generator) promptNodeTypes(template *templates.Template, features models.FeatureMatch) []string {
	if template != nil {
		return template.AllNodeTypes()
	}

	return features.NodeTypes()
}
