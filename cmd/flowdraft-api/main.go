package main

import (
	"context"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/flowdraft/flowdraft/pkg/cmd"
	"github.com/flowdraft/flowdraft/pkg/llm"
	"github.com/flowdraft/flowdraft/pkg/log"
)

const (
	defaultPort     = 9090
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "flowdraft-api",
		Usage:                 "Generate n8n workflows from text descriptions",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "API key for LLM-backed generation (synthesis only when empty)",
				Sources: cli.EnvVars("OPENAI_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "openai-base-url",
				Usage:   "Override the LLM endpoint base URL",
				Sources: cli.EnvVars("OPENAI_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "openai-model",
				Usage:   "Model used for LLM-backed generation",
				Sources: cli.EnvVars("OPENAI_MODEL"),
			},
			&cli.StringFlag{
				Name:    "templates-path",
				Usage:   "Directory of corpus template JSON files",
				Sources: cli.EnvVars("TEMPLATES_PATH"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for the result cache (in-memory when empty)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel, none)",
				Value:   "none",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma-separated Kafka broker list",
				Value:   "localhost:9092",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OTLP trace export",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Flowdraft API")

			registry := cmd.NewRegistry(logger)
			library := cmd.NewLibrary(logger, command.String("templates-path"))

			resultCache := cmd.NewCache(ctx, logger, command.String("redis-url"))
			defer func() {
				if err := resultCache.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close cache", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), command.String("kafka-brokers"), logger)
			defer func() {
				if eventBus == nil {
					return
				}

				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			var llmClient *llm.Client
			if key := command.String("openai-api-key"); key != "" {
				llmClient = llm.NewClient(llm.Config{
					APIKey:  key,
					BaseURL: command.String("openai-base-url"),
					Model:   command.String("openai-model"),
				}, logger)
			}

			api := NewAPI(
				logger,
				registry,
				library,
				resultCache,
				eventBus,
				llmClient,
				command.Bool("tracing"),
			)

			return api.Start(ctx, command.Int("port"), shutdownTimeout)
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("Flowdraft API exited", "error", err)
		os.Exit(1)
	}
}
