package generator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flowdraft/flowdraft/pkg/cache"
	"github.com/flowdraft/flowdraft/pkg/events"
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/normalize"
	"github.com/flowdraft/flowdraft/pkg/otelhelper"
)

func (g *Generator) startSpan(
	ctx context.Context,
	trigger models.TriggerKind,
	complexity models.Complexity,
	info *normalize.Info,
) (context.Context, trace.Span) {
	tracer := g.tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("flowdraft")
	}

	return otelhelper.StartSpan(ctx, tracer, "generate_workflow",
		attribute.String(otelhelper.TriggerKindKey, string(trigger)),
		attribute.String(otelhelper.ComplexityKey, string(complexity)),
		attribute.Float64(otelhelper.ConfidenceKey, info.Confidence),
		attribute.String(otelhelper.LanguageKey, info.Language),
	)
}

// cachedResult returns a previously generated result for the same
// normalized triple. Cache failures degrade to a miss.
func (g *Generator) cachedResult(
	ctx context.Context,
	text string,
	trigger models.TriggerKind,
	complexity models.Complexity,
) (*Result, bool) {
	if g.cache == nil {
		return nil, false
	}

	key := cache.Key(text, string(trigger), string(complexity))

	payload, found, err := g.cache.Get(ctx, key)
	if err != nil {
		g.logger.Warn("cache lookup failed", "error", err)
		return nil, false
	}

	if !found {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		g.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}

	result.CacheHit = true

	return &result, true
}

func (g *Generator) storeResult(
	ctx context.Context,
	text string,
	trigger models.TriggerKind,
	complexity models.Complexity,
	result *Result,
) {
	if g.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		g.logger.Warn("failed to serialize result for cache", "error", err)
		return
	}

	key := cache.Key(text, string(trigger), string(complexity))
	if err := g.cache.Set(ctx, key, payload, cacheTTL); err != nil {
		g.logger.Warn("cache store failed", "error", err)
	}
}

// Event publishing is fire-and-forget; a broken bus never affects the
// response.
func (g *Generator) publishGenerated(
	ctx context.Context,
	result *Result,
	trigger models.TriggerKind,
	complexity models.Complexity,
) {
	if g.bus == nil {
		return
	}

	event := events.WorkflowGenerated{
		BaseEvent:    newBaseEvent(events.WorkflowGeneratedEvent),
		WorkflowName: result.Workflow.Name,
		NodeCount:    len(result.Workflow.Nodes),
		TriggerKind:  string(trigger),
		Complexity:   string(complexity),
		TemplateID:   result.TemplateID,
		Source:       result.Source,
		Confidence:   result.Confidence,
		Valid:        result.Report.Valid,
		CacheHit:     result.CacheHit,
	}

	if err := g.bus.Publish(ctx, event); err != nil {
		g.logger.Warn("failed to publish generation event", "error", err)
	}
}

func (g *Generator) publishFailure(ctx context.Context, reason string) {
	if g.bus == nil {
		return
	}

	event := events.GenerationFailed{
		BaseEvent: newBaseEvent(events.GenerationFailedEvent),
		Reason:    reason,
	}

	if err := g.bus.Publish(ctx, event); err != nil {
		g.logger.Warn("failed to publish failure event", "error", err)
	}
}

func newBaseEvent(eventType events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}
