package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/flowdraft/flowdraft/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "flowdraft",
		Usage:                 "Generate and validate n8n workflow definitions",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			GenerateCommand(),
			ValidateCommand(),
			NodeTypesCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		log.WithModule("cli").Error("command failed", "error", err)
		os.Exit(1)
	}
}
