// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"log/slog"

	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
)

// NewRegistry builds the node-type registry with the default catalog.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultTypes()

	logger.Debug("registered node types", "count", reg.Len())

	return reg
}

// NewLibrary builds the template library: the built-in templates plus,
// when a path is given, corpus templates loaded from disk.
func NewLibrary(logger *slog.Logger, templatesPath string) *templates.Library {
	library := templates.NewLibrary()

	if err := library.RegisterBuiltin(); err != nil {
		panic(err)
	}

	if templatesPath != "" {
		if err := library.LoadDir(templatesPath); err != nil {
			panic(err)
		}
	}

	logger.Debug("loaded templates", "count", library.Len())

	return library
}
