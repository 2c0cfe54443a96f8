// ABOUTME: Main entry point for the galaxy-nav MCP server with stdio transport
// ABOUTME: Loads config, builds the job client and dispatcher, and serves the navigation tools
package main

import (
	"log"

	"github.com/harper/galaxy-nav/internal/config"
	"github.com/harper/galaxy-nav/internal/core"
	"github.com/harper/galaxy-nav/internal/jobs"
	"github.com/harper/galaxy-nav/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := jobs.NewClientWithConfig(&jobs.ClientConfig{
		BaseURL: cfg.GalaxyURL,
		AppRoot: cfg.AppRoot,
		Timeout: cfg.RerunTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize job client: %v", err)
	}

	// One dispatcher per server: the MCP session is one browser tab
	dispatcher := core.NewDispatcher(cfg.Client, client, nil,
		core.WithLogger(logger),
		core.WithRerunTimeout(cfg.RerunTimeout),
		core.WithAppRoot(cfg.AppRoot))

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Galaxy Navigation",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, dispatcher, client, cfg.AppRoot)

	// Start server with stdio transport
	log.Printf("galaxy-nav MCP server starting on stdio (galaxy %s)...", cfg.GalaxyURL)
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
