// Package eventbus publishes generation events over watermill transports.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/flowdraft/flowdraft/pkg/events"
)

// EventBus publishes generation lifecycle events. A nil *WatermillEventBus
// is a valid no-op publisher, so wiring is optional everywhere.
type EventBus interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// WatermillEventBus publishes events through any watermill publisher
// (GoChannel in dev and tests, Kafka in production).
type WatermillEventBus struct {
	publisher message.Publisher
}

// NewWatermillEventBus wraps a watermill publisher.
func NewWatermillEventBus(publisher message.Publisher) *WatermillEventBus {
	return &WatermillEventBus{publisher: publisher}
}

// GenerateID returns a ULID suitable for event ids.
func (eb *WatermillEventBus) GenerateID() string {
	return watermill.NewULID()
}

// Publish serializes the event and sends it to the shared topic. Events all
// share one topic; consumers dispatch on the embedded type tag.
func (eb *WatermillEventBus) Publish(_ context.Context, event any) error {
	if eb == nil || eb.publisher == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	msg := message.NewMessage("msg-"+eb.GenerateID(), payload)

	return eb.publisher.Publish(events.Topic, msg)
}

// Close shuts the underlying publisher down.
func (eb *WatermillEventBus) Close() error {
	if eb == nil || eb.publisher == nil {
		return nil
	}

	return eb.publisher.Close()
}
