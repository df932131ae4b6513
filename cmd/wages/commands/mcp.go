// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents look up wages via stdio
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the wage explorer as an MCP (Model Context Protocol) server, letting
LLM agents like Claude look up occupational wages via stdio.

Tools: lookup_wages, list_occupations, list_geographies, dataset_info,
reload_dataset.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  wages mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "wages": {
  #       "command": "wages",
  #       "args": ["mcp"],
  #       "env": {"WAGES_DATA": "/data/all_data_M_2023.parquet"}
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer("Wage Explorer", versionInfo.Version)
	mcp.RegisterTools(server, loader, logger, cfg.ListLimit)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the cache so the first tool call is fast; failures surface per call
	go func() {
		if _, err := loader.Load(ctx); err != nil {
			logger.Warn("dataset preload failed", zap.Error(err))
		}
	}()

	logger.Info("MCP server starting on stdio", zap.String("source", loader.Source().String()))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
