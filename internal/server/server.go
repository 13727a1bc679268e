// Package server provides a factory for creating the MCP server from
// configuration.
package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jbcom/vendor-connectors/pkg/config"
	"github.com/jbcom/vendor-connectors/pkg/connector"
	"github.com/jbcom/vendor-connectors/pkg/mcpserver"
	"github.com/jbcom/vendor-connectors/pkg/registry"
)

// Version is set at build time.
var Version = "dev"

// New creates the MCP server and registry from a loaded configuration.
func New(cfg *config.Config) (*mcpserver.Server, *registry.Registry) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Per-connector settings blocks become construction-time overrides. A
	// bad block only disables its own connector's overrides.
	for name := range cfg.Connectors.Settings {
		pc, err := cfg.Connector(name)
		if err != nil {
			logger.Warn("skipping connector settings", "connector", name, "error", err)
			continue
		}
		connector.Configure(name, connector.Settings{
			BaseURL:  pc.BaseURL,
			TokenEnv: pc.TokenEnv,
			Timeout:  pc.Timeout,
		})
	}

	reg := registry.New(
		registry.WithEnabled(cfg.Connectors.Enabled),
		registry.WithLogger(logger),
	)

	srv := mcpserver.New(reg,
		mcpserver.WithIdentity(cfg.Server.Name, serverVersion(cfg)),
		mcpserver.WithLogger(logger),
	)
	return srv, reg
}

// NewWithConfig loads the config file at path and builds the server.
func NewWithConfig(path string) (*mcpserver.Server, *registry.Registry, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	srv, reg := New(cfg)
	return srv, reg, nil
}

// NewWithDefaults builds the server with the default configuration: all
// built-in connectors enabled.
func NewWithDefaults() (*mcpserver.Server, *registry.Registry) {
	return New(config.Default())
}

// serverVersion prefers the configured version; an absent one falls back
// to the build-time Version.
func serverVersion(cfg *config.Config) string {
	if cfg.Server.Version != "" {
		return cfg.Server.Version
	}
	return Version
}
