// ABOUTME: MCP tool definitions and registration for the wage server
// ABOUTME: Defines JSON schemas for the lookup, list, dataset info and reload tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/dataset"
)

// DefaultListLimit caps list tool responses when no limit is configured
const DefaultListLimit = 100

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, loader *dataset.Loader, logger *zap.Logger, listLimit int) *Handlers {
	handlers := NewHandlers(loader, logger, listLimit)

	// 1. lookup_wages - wage percentiles and metrics for one selection
	server.AddTool(mcp.Tool{
		Name:        "lookup_wages",
		Description: "Look up hourly and annual wage percentiles (10th, 25th, median, 75th, 90th) plus total employment, jobs per 1,000 and location quotient for an occupation nationally, in a state or in a metropolitan area. Titles must match list_occupations and list_geographies exactly.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"occupation": map[string]interface{}{
					"type":        "string",
					"description": "Occupation title, e.g. 'Software Developers'",
				},
				"geo_level": map[string]interface{}{
					"type":        "string",
					"description": "Geography level: National, State or Metropolitan (default: National)",
					"enum":        []string{"National", "State", "Metropolitan"},
					"default":     "National",
				},
				"geography": map[string]interface{}{
					"type":        "string",
					"description": "State code (e.g. 'CA') or metropolitan area title; ignored for National",
				},
			},
			Required: []string{"occupation"},
		},
	}, handlers.LookupWages)

	// 2. list_occupations - selectable occupation titles
	server.AddTool(mcp.Tool{
		Name:        "list_occupations",
		Description: "List occupation titles available for lookup_wages, sorted alphabetically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"contains": map[string]interface{}{
					"type":        "string",
					"description": "Only return titles containing this text (case-insensitive)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of titles to return",
				},
			},
		},
	}, handlers.ListOccupations)

	// 3. list_geographies - selectable geographies for a level
	server.AddTool(mcp.Tool{
		Name:        "list_geographies",
		Description: "List the geographies available for a level: state codes for State, area titles for Metropolitan.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"geo_level": map[string]interface{}{
					"type":        "string",
					"description": "Geography level: National, State or Metropolitan",
					"enum":        []string{"National", "State", "Metropolitan"},
				},
				"contains": map[string]interface{}{
					"type":        "string",
					"description": "Only return values containing this text (case-insensitive)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of values to return",
				},
			},
			Required: []string{"geo_level"},
		},
	}, handlers.ListGeographies)

	// 4. dataset_info - where the data came from
	server.AddTool(mcp.Tool{
		Name:        "dataset_info",
		Description: "Describe the loaded wage dataset: source, row count and load time.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.DatasetInfo)

	// 5. reload_dataset - reread the dataset after it changed on disk
	server.AddTool(mcp.Tool{
		Name:        "reload_dataset",
		Description: "Reread the wage dataset from its source and swap it in. If the read fails the previously loaded data stays in use.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ReloadDataset)

	return handlers
}
