package eventbus_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdraft/flowdraft/pkg/channels/gochannel"
	"github.com/flowdraft/flowdraft/pkg/eventbus"
	"github.com/flowdraft/flowdraft/pkg/events"
)

func TestWatermillEventBusPublish(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub)

	event := events.WorkflowGenerated{
		BaseEvent: events.BaseEvent{
			ID:        bus.GenerateID(),
			Type:      events.WorkflowGeneratedEvent,
			Timestamp: time.Now().UTC(),
		},
		WorkflowName: "Invoice Sync Workflow",
		NodeCount:    4,
		TriggerKind:  "webhook",
		Complexity:   "medium",
		Source:       "template",
		Valid:        true,
	}

	require.NoError(t, bus.Publish(context.Background(), event))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := sub.Subscribe(ctx, events.Topic)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		msg.Ack()

		var received events.WorkflowGenerated

		require.NoError(t, json.Unmarshal(msg.Payload, &received))
		assert.Equal(t, event.ID, received.ID)
		assert.Equal(t, events.WorkflowGeneratedEvent, received.Type)
		assert.Equal(t, "Invoice Sync Workflow", received.WorkflowName)
	case <-ctx.Done():
		t.Fatal("timed out waiting for published event")
	}

	require.NoError(t, bus.Close())
}

func TestNilEventBusIsNoOp(t *testing.T) {
	var bus *eventbus.WatermillEventBus

	require.NoError(t, bus.Publish(context.Background(), events.GenerationFailed{}))
	require.NoError(t, bus.Close())
}
