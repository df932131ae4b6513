// ABOUTME: Main entry point for the standalone wage MCP server with stdio transport
// ABOUTME: Reads configuration from the environment, then serves the MCP tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/config"
	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/mcp"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	src, err := cfg.Source()
	if err != nil {
		logger.Fatal("invalid dataset location", zap.Error(err))
	}
	loader := dataset.NewLoader(src,
		dataset.WithLogger(logger),
		dataset.WithTimeout(cfg.LoadTimeout),
	)

	server := mcpserver.NewMCPServer("Wage Explorer", "0.1.0")
	mcp.RegisterTools(server, loader, logger, cfg.ListLimit)

	logger.Info("wage MCP server starting on stdio", zap.String("source", src.String()))
	if err := mcpserver.ServeStdio(server); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
