package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/flowdraft/flowdraft/pkg/channels/gochannel"
	"github.com/flowdraft/flowdraft/pkg/channels/kafka"
	"github.com/flowdraft/flowdraft/pkg/eventbus"
)

// NewEventBus creates an event bus for the given provider. An empty or
// "none" provider disables publishing.
func NewEventBus(provider, brokers string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, _, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), strings.Split(brokers, ","), "flowdraft")
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub)
	case "gochannel":
		pub, _, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create GoChannel pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub)
	case "", "none":
		return nil
	default:
		panic("Unsupported event bus provider: " + provider)
	}
}
