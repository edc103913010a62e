package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdraft/flowdraft/pkg/cache"
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()

	reg := registry.NewRegistry(slog.Default())
	reg.RegisterDefaultTypes()

	library := templates.NewLibrary()
	require.NoError(t, library.RegisterBuiltin())

	return NewGenerator(reg, library, slog.Default())
}

func TestGenerateWebhookSlack(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description: "send a slack message when a webhook is received",
		TriggerKind: models.TriggerWebhook,
		Complexity:  models.ComplexitySimple,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Workflow)
	require.NotEmpty(t, result.Workflow.Nodes)

	first := result.Workflow.Nodes[0]
	assert.Equal(t, registry.TypeWebhook, first.Type)

	hasSlack := false

	for _, node := range result.Workflow.Nodes {
		if node.Type == registry.TypeSlack {
			hasSlack = true
		}
	}

	assert.True(t, hasSlack, "expected a slack node")

	targets := result.Workflow.Connections.Targets(first.Name)
	require.NotEmpty(t, targets, "trigger must connect to the next node")
	assert.Equal(t, result.Workflow.Nodes[1].Name, targets[0].Node)

	assert.True(t, result.Report.Valid)
}

func TestGenerateEmptyDescription(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{Description: ""})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(result.Workflow.Nodes), 2)
	assert.NotEmpty(t, result.Normalized)
}

func TestGenerateNilDescription(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{Description: nil})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Workflow.Nodes)
}

func TestGenerateRejectsSevereInput(t *testing.T) {
	gen := newTestGenerator(t)

	payload := strings.Repeat("<script>alert(1)</script> ", 5)

	result, err := gen.Generate(context.Background(), Request{Description: payload})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrRejected))

	var rejected *RejectedError

	require.ErrorAs(t, err, &rejected)
	assert.NotEmpty(t, rejected.Reason)
}

func TestGenerateDefaults(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description: "process incoming customer orders",
	})
	require.NoError(t, err)

	assert.Equal(t, registry.TypeWebhook, result.Workflow.Nodes[0].Type)
	assert.GreaterOrEqual(t, len(result.Workflow.Nodes), models.ComplexityMedium.NodeFloor())
}

func TestGenerateTemplateHint(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description:  "completely unrelated text",
		TemplateHint: "scheduled-api-report",
	})
	require.NoError(t, err)

	assert.Equal(t, SourceTemplate, result.Source)
	assert.Equal(t, "scheduled-api-report", result.TemplateID)
}

func TestGenerateUnknownHintFallsBackToMatching(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description:  "post to slack when the webhook fires",
		TemplateHint: "no-such-template",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "no-such-template", result.TemplateID)
}

func TestGenerateMonotonicComplexity(t *testing.T) {
	gen := newTestGenerator(t)

	counts := make([]int, 0, 3)

	for _, complexity := range []models.Complexity{
		models.ComplexitySimple,
		models.ComplexityMedium,
		models.ComplexityComplex,
	} {
		result, err := gen.Generate(context.Background(), Request{
			Description: "archive mentions",
			TriggerKind: models.TriggerManual,
			Complexity:  complexity,
		})
		require.NoError(t, err)

		counts = append(counts, len(result.Workflow.Nodes))
	}

	assert.LessOrEqual(t, counts[0], counts[1])
	assert.LessOrEqual(t, counts[1], counts[2])
}

func TestGenerateShapeDeterminism(t *testing.T) {
	gen := newTestGenerator(t)

	req := Request{
		Description: "fetch the rss feed and email a summary",
		TriggerKind: models.TriggerSchedule,
		Complexity:  models.ComplexityMedium,
	}

	first, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	second, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, second.Workflow.Nodes, len(first.Workflow.Nodes))

	for i := range first.Workflow.Nodes {
		assert.Equal(t, first.Workflow.Nodes[i].Type, second.Workflow.Nodes[i].Type)
	}
}

func TestGenerateConnectivityInvariant(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description: "sync database rows to a spreadsheet and notify the team on slack",
		Complexity:  models.ComplexityComplex,
	})
	require.NoError(t, err)

	targets := result.Workflow.Connections.TargetNames()

	for i, node := range result.Workflow.Nodes {
		if i == 0 {
			continue
		}

		assert.True(t, targets[node.Name], "node %q must have an inbound edge", node.Name)
	}
}

func TestGenerateUniqueIdentity(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description: "send slack and telegram and email alerts on schedule",
		TriggerKind: models.TriggerSchedule,
		Complexity:  models.ComplexityComplex,
	})
	require.NoError(t, err)

	ids := map[string]bool{}
	names := map[string]bool{}

	for _, node := range result.Workflow.Nodes {
		assert.False(t, ids[node.ID], "duplicate id %q", node.ID)
		assert.False(t, names[node.Name], "duplicate name %q", node.Name)

		ids[node.ID] = true
		names[node.Name] = true
	}
}

func TestGenerateCacheRoundTrip(t *testing.T) {
	gen := newTestGenerator(t)

	memory := cache.NewMemory()
	t.Cleanup(func() { _ = memory.Close() })

	gen.WithCache(memory)

	req := Request{
		Description: "notify slack when the webhook fires",
		TriggerKind: models.TriggerWebhook,
		Complexity:  models.ComplexitySimple,
	}

	first, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)

	assert.Equal(t, first.Workflow.Name, second.Workflow.Name)
	assert.Len(t, second.Workflow.Nodes, len(first.Workflow.Nodes))
}

func TestGenerateCacheKeyDistinguishesTriggers(t *testing.T) {
	gen := newTestGenerator(t)
	gen.WithCache(cache.NewMemory())

	_, err := gen.Generate(context.Background(), Request{
		Description: "report metrics",
		TriggerKind: models.TriggerWebhook,
	})
	require.NoError(t, err)

	result, err := gen.Generate(context.Background(), Request{
		Description: "report metrics",
		TriggerKind: models.TriggerSchedule,
	})
	require.NoError(t, err)

	assert.False(t, result.CacheHit)
	assert.Equal(t, registry.TypeScheduleTrigger, result.Workflow.Nodes[0].Type)
}

type recordingBus struct {
	published []any
}

func (b *recordingBus) Publish(_ context.Context, event any) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Close() error { return nil }

func TestGeneratePublishesEvents(t *testing.T) {
	gen := newTestGenerator(t)

	bus := &recordingBus{}
	gen.WithEventBus(bus)

	_, err := gen.Generate(context.Background(), Request{
		Description: "send slack updates",
	})
	require.NoError(t, err)
	require.Len(t, bus.published, 1)
}

func TestGenerateResultSerializes(t *testing.T) {
	gen := newTestGenerator(t)

	result, err := gen.Generate(context.Background(), Request{
		Description: "call the api and post results to slack",
	})
	require.NoError(t, err)

	clone, err := result.Workflow.Clone()
	require.NoError(t, err)
	assert.Equal(t, result.Workflow.Name, clone.Name)
	assert.Len(t, clone.Nodes, len(result.Workflow.Nodes))
}

func TestGenerateWithinDeadline(t *testing.T) {
	gen := newTestGenerator(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := gen.Generate(ctx, Request{Description: "quick check"})
	require.NoError(t, err)
}
