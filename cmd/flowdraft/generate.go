package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/flowdraft/flowdraft/pkg/cmd"
	"github.com/flowdraft/flowdraft/pkg/generator"
	"github.com/flowdraft/flowdraft/pkg/llm"
	"github.com/flowdraft/flowdraft/pkg/log"
	"github.com/flowdraft/flowdraft/pkg/models"
)

func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"g"},
		Usage:     "Generate a workflow from a text description",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "trigger",
				Aliases: []string{"t"},
				Usage:   "Trigger kind (webhook, schedule, manual)",
				Value:   "webhook",
			},
			&cli.StringFlag{
				Name:    "complexity",
				Aliases: []string{"c"},
				Usage:   "Target complexity (simple, medium, complex)",
				Value:   "medium",
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "Force a specific template id",
			},
			&cli.StringFlag{
				Name:    "templates-path",
				Usage:   "Directory of corpus template JSON files",
				Sources: cli.EnvVars("TEMPLATES_PATH"),
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "API key for LLM-backed generation",
				Sources: cli.EnvVars("OPENAI_API_KEY"),
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "Print the validation report alongside the workflow",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("cli")

			description := strings.Join(command.Args().Slice(), " ")

			registry := cmd.NewRegistry(logger)
			library := cmd.NewLibrary(logger, command.String("templates-path"))

			gen := generator.NewGenerator(registry, library, logger)
			if key := command.String("openai-api-key"); key != "" {
				gen.WithLLM(llm.NewClient(llm.Config{APIKey: key}, logger))
			}

			result, err := gen.Generate(ctx, generator.Request{
				Description:  description,
				TriggerKind:  models.TriggerKind(command.String("trigger")),
				Complexity:   models.Complexity(command.String("complexity")),
				TemplateHint: command.String("template"),
			})
			if err != nil {
				return err
			}

			var output any = result.Workflow
			if command.Bool("report") {
				output = result
			}

			payload, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize workflow: %w", err)
			}

			fmt.Println(string(payload))

			return nil
		},
	}
}
