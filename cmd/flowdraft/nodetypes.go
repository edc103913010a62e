package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/flowdraft/flowdraft/pkg/cmd"
	"github.com/flowdraft/flowdraft/pkg/log"
)

func NodeTypesCommand() *cli.Command {
	return &cli.Command{
		Name:    "node-types",
		Aliases: []string{"nt"},
		Usage:   "List the known node types",
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			registry := cmd.NewRegistry(log.WithModule("cli"))

			for _, spec := range registry.All() {
				required := ""
				if len(spec.RequiredParams) > 0 {
					required = fmt.Sprintf(" (requires %v)", spec.RequiredParams)
				}

				fmt.Printf("%-42s %-18s v%d %s%s\n",
					spec.Type, spec.Category, spec.CurrentVersion, spec.DisplayName, required)
			}

			return nil
		},
	}
}
