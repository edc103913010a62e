// Package main provides the Flowdraft API server implementation.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/flowdraft/flowdraft/pkg/cache"
	"github.com/flowdraft/flowdraft/pkg/eventbus"
	"github.com/flowdraft/flowdraft/pkg/generator"
	"github.com/flowdraft/flowdraft/pkg/llm"
	"github.com/flowdraft/flowdraft/pkg/otelhelper"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
	"github.com/flowdraft/flowdraft/pkg/web"
)

type API struct {
	logger      *slog.Logger
	registry    *registry.Registry
	library     *templates.Library
	resultCache cache.Cache
	eventBus    eventbus.EventBus
	llmClient   *llm.Client
	tracing     bool
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	reg *registry.Registry,
	library *templates.Library,
	resultCache cache.Cache,
	eventBus eventbus.EventBus,
	llmClient *llm.Client,
	tracing bool,
) *API {
	return &API{
		logger:      logger,
		registry:    reg,
		library:     library,
		resultCache: resultCache,
		eventBus:    eventBus,
		llmClient:   llmClient,
		tracing:     tracing,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App(ctx context.Context) (*fiber.App, error) {
	gen := generator.NewGenerator(a.registry, a.library, a.logger).
		WithCache(a.resultCache).
		WithEventBus(a.eventBus)

	if a.llmClient != nil {
		gen.WithLLM(a.llmClient)
	}

	if a.tracing {
		tracer, err := otelhelper.NewTracer(ctx, "flowdraft-api")
		if err != nil {
			return nil, err
		}

		gen.WithTracer(tracer)
	}

	handlers := web.NewAPIHandlers(gen, a.registry, a.library, a.validate, a.eventBus)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Flowdraft API")
	})

	w := app.Group("/workflows")
	w.Post("/generate", handlers.GenerateWorkflow)
	w.Post("/validate", handlers.ValidateWorkflow)

	app.Get("/node-types", handlers.ListNodeTypes)
	app.Get("/templates", handlers.ListTemplates)
	app.Get("/health", handlers.HealthCheck)

	return app, nil
}

// Start serves until the context is cancelled or an interrupt arrives, then
// drains in-flight requests within the shutdown timeout.
func (a *API) Start(ctx context.Context, port int, timeout time.Duration) error {
	app, err := a.App(ctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- app.Listen(":" + strconv.Itoa(port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down Flowdraft API")

		return app.ShutdownWithTimeout(timeout)
	}
}
