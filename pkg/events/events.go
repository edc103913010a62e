// Package events defines the generation lifecycle events published by the
// service. Publishing is fire-and-forget; generation results never depend
// on it.
package events

import (
	"time"
)

// EventType tags each published event.
type EventType string

// Topic is the event stream all generation events are published to.
const Topic = "flowdraft.events"

const (
	WorkflowGeneratedEvent EventType = "workflow.generated"
	GenerationFailedEvent  EventType = "workflow.generation.failed"
	WorkflowValidatedEvent EventType = "workflow.validated"
	WorkflowRepairedEvent  EventType = "workflow.repaired"
)

// BaseEvent carries the fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkflowGenerated is published after a workflow is produced, whatever the
// producing path was.
type WorkflowGenerated struct {
	BaseEvent

	WorkflowName string  `json:"workflow_name"`
	NodeCount    int     `json:"node_count"`
	TriggerKind  string  `json:"trigger_kind"`
	Complexity   string  `json:"complexity"`
	TemplateID   string  `json:"template_id,omitempty"`
	Source       string  `json:"source"` // "template", "features", or "llm"
	Confidence   float64 `json:"confidence"`
	Valid        bool    `json:"valid"`
	CacheHit     bool    `json:"cache_hit"`
}

// GenerationFailed is published when a request is rejected outright.
type GenerationFailed struct {
	BaseEvent

	Reason string `json:"reason"`
}

// WorkflowValidated is published by the standalone validation endpoint.
type WorkflowValidated struct {
	BaseEvent

	WorkflowName string `json:"workflow_name"`
	Valid        bool   `json:"valid"`
	ErrorCount   int    `json:"error_count"`
	WarningCount int    `json:"warning_count"`
}

// WorkflowRepaired is published when a caller asked for connection repair.
type WorkflowRepaired struct {
	BaseEvent

	WorkflowName string `json:"workflow_name"`
	NodeCount    int    `json:"node_count"`
	ValidAfter   bool   `json:"valid_after"`
}
