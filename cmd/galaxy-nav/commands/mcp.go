// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents resolve Galaxy navigation and rerun lookups via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/galaxy-nav/internal/core"
	"github.com/harper/galaxy-nav/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs galaxy-nav as an MCP (Model Context Protocol) server, so LLM
agents can resolve Galaxy analysis URLs and classify job reruns via stdio.

The server behaves like one browser tab: a navigation that is still
waiting on its rerun lookup is superseded by the next one.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  galaxy-nav mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "galaxy-nav": {
  #       "command": "galaxy-nav",
  #       "args": ["mcp"],
  #       "env": {"GALAXY_URL": "https://usegalaxy.org"}
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	dispatcher := core.NewDispatcher(env.cfg.Client, env.jobs, nil,
		core.WithLogger(env.logger),
		core.WithRerunTimeout(env.cfg.RerunTimeout),
		core.WithAppRoot(env.cfg.AppRoot))

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Galaxy Navigation",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, dispatcher, env.jobs, env.cfg.AppRoot)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.logger.Info("MCP server starting on stdio",
		zap.String("galaxy_url", env.cfg.GalaxyURL))

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		env.logger.Info("Shutdown signal received")

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
