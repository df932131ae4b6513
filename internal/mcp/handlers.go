// ABOUTME: MCP tool handler implementations for the wage server
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/query"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	loader    *dataset.Loader
	logger    *zap.Logger
	listLimit int
}

// NewHandlers creates handlers over loader. A non-positive listLimit uses
// DefaultListLimit.
func NewHandlers(loader *dataset.Loader, logger *zap.Logger, listLimit int) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Handlers{loader: loader, logger: logger, listLimit: listLimit}
}

// LookupWages handles the lookup_wages tool
func (h *Handlers) LookupWages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	occupation, err := request.RequireString("occupation")
	if err != nil {
		return mcp.NewToolResultError("occupation argument is required and must be a string"), nil
	}

	kind, err := models.ParseGeographyKind(request.GetString("geo_level", string(models.National)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	geography := request.GetString("geography", "")
	if kind != models.National && geography == "" {
		return mcp.NewToolResultError(fmt.Sprintf("geography argument is required for %s lookups", kind)), nil
	}

	table, errResult := h.table(ctx)
	if errResult != nil {
		return errResult, nil
	}

	result, err := query.Query(table, occupation, kind, geography)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if result.Duplicated() {
		h.logger.Debug("several rows matched selection; using the first in storage order",
			zap.String("occupation", occupation),
			zap.String("geography", result.Selection.Geography),
			zap.Int("matches", result.Summary.Matches))
	}

	response := map[string]interface{}{
		"title":     result.Selection.Title(),
		"selection": result.Selection,
		"found":     result.Found,
	}
	if result.Found {
		response["percentiles"] = result.Summary.Percentiles
		response["metrics"] = result.Summary.Metrics
		response["matches"] = result.Summary.Matches
	} else {
		response["message"] = models.NoDataMessage
	}

	return jsonResult(response)
}

// ListOccupations handles the list_occupations tool
func (h *Handlers) ListOccupations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, errResult := h.table(ctx)
	if errResult != nil {
		return errResult, nil
	}

	all := query.Occupations(table)
	values := query.MatchValues(all, request.GetString("contains", ""), h.limit(request))

	return jsonResult(map[string]interface{}{
		"occupations": values,
		"total":       len(all),
	})
}

// ListGeographies handles the list_geographies tool
func (h *Handlers) ListGeographies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level, err := request.RequireString("geo_level")
	if err != nil {
		return mcp.NewToolResultError("geo_level argument is required and must be a string"), nil
	}
	kind, err := models.ParseGeographyKind(level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, errResult := h.table(ctx)
	if errResult != nil {
		return errResult, nil
	}

	all := query.GeographyOptions(table, kind)
	values := query.MatchValues(all, request.GetString("contains", ""), h.limit(request))

	return jsonResult(map[string]interface{}{
		"geo_level":   kind,
		"geographies": values,
		"total":       len(all),
	})
}

// DatasetInfo handles the dataset_info tool
func (h *Handlers) DatasetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, errResult := h.table(ctx)
	if errResult != nil {
		return errResult, nil
	}

	return jsonResult(map[string]interface{}{
		"source":      table.Source(),
		"rows":        table.Len(),
		"occupations": len(query.Occupations(table)),
		"loaded_at":   table.LoadedAt().Format(time.RFC3339),
	})
}

// ReloadDataset handles the reload_dataset tool
func (h *Handlers) ReloadDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.loader.Reload(ctx)
	if err != nil {
		h.logger.Error("dataset reload failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("reload failed, previous data still in use: %v", err)), nil
	}
	h.logger.Info("dataset reloaded",
		zap.String("source", table.Source()),
		zap.Int("rows", table.Len()))

	return jsonResult(map[string]interface{}{
		"source":    table.Source(),
		"rows":      table.Len(),
		"loaded_at": table.LoadedAt().Format(time.RFC3339),
	})
}

// table loads the dataset, converting failures into a tool error result
func (h *Handlers) table(ctx context.Context) (*dataset.Table, *mcp.CallToolResult) {
	table, err := h.loader.Load(ctx)
	if err == nil {
		return table, nil
	}

	h.logger.Error("dataset load failed", zap.Error(err))
	if errors.Is(err, dataset.ErrDataUnavailable) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("wage data is unavailable: %v", err))
	}
	return nil, mcp.NewToolResultError(fmt.Sprintf("failed to load wage data: %v", err))
}

func (h *Handlers) limit(request mcp.CallToolRequest) int {
	limit := request.GetInt("limit", h.listLimit)
	if limit <= 0 || limit > h.listLimit {
		return h.listLimit
	}
	return limit
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
