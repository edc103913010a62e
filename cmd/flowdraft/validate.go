package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/flowdraft/flowdraft/pkg/cmd"
	"github.com/flowdraft/flowdraft/pkg/log"
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/validate"
)

var errWorkflowInvalid = errors.New("workflow is invalid")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a workflow JSON file",
		ArgsUsage: "<workflow.json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "repair",
				Usage: "Rebuild connections before reporting",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("cli")

			path := command.Args().First()
			if path == "" {
				return errors.New("a workflow file path is required")
			}

			workflow, err := readWorkflow(path)
			if err != nil {
				return err
			}

			validator := validate.NewValidator(cmd.NewRegistry(logger), logger)

			if command.Bool("repair") {
				workflow = validator.RepairConnections(workflow)
			}

			report := validator.Validate(workflow)

			payload, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize report: %w", err)
			}

			fmt.Println(string(payload))

			if !report.Valid {
				return errWorkflowInvalid
			}

			return nil
		},
	}
}

func readWorkflow(path string) (*models.Workflow, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	var workflow models.Workflow
	if err := json.Unmarshal(payload, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow file: %w", err)
	}

	return &workflow, nil
}
