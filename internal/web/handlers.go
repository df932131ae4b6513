// ABOUTME: HTTP handlers for the dashboard page and the JSON API
// ABOUTME: The dashboard keeps its selection in the URL query string
package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/query"
)

var templateFuncs = template.FuncMap{
	"ago":   humanize.Time,
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
}

// option is one entry of a dashboard select box
type option struct {
	Value    string
	Selected bool
}

type dashboardPage struct {
	Title       string
	Selection   models.Selection
	National    bool
	Kinds       []option
	Geographies []option
	Occupations []option
	Result      models.QueryResult
	NoData      string
	Table       *dataset.Table
}

type errorPage struct {
	Title   string
	Message string
	Detail  string
}

func options(values []string, selected string) []option {
	out := make([]option, len(values))
	for i, v := range values {
		out[i] = option{Value: v, Selected: v == selected}
	}
	return out
}

// selectionQuery is the canonical query string for sel
func selectionQuery(sel models.Selection) url.Values {
	values := url.Values{}
	for k, v := range sel.Values() {
		values.Set(k, v)
	}
	return values
}

// dashboard renders the selection named by the query string. Missing or
// stale values are resolved to defaults and the browser is redirected to the
// canonical URL so the address bar always reflects what is shown.
func (s *Server) dashboard(c *gin.Context) {
	table, err := s.loader.Load(c.Request.Context())
	if err != nil {
		s.renderLoadError(c, err)
		return
	}

	requested := map[string]string{
		models.ParamGeoLevel:    c.Query(models.ParamGeoLevel),
		models.ParamSelectedGeo: c.Query(models.ParamSelectedGeo),
		models.ParamSelectedJob: c.Query(models.ParamSelectedJob),
	}
	sel := query.ResolveSelection(table, requested)

	canonical := sel.Values()
	for k, v := range canonical {
		if requested[k] != v {
			c.Redirect(http.StatusFound, "/?"+selectionQuery(sel).Encode())
			return
		}
	}

	result, err := query.Query(table, sel.Occupation, sel.Kind, sel.Geography)
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "error.html", errorPage{
			Title:   "Lookup failed",
			Message: "The selection could not be looked up.",
			Detail:  err.Error(),
		})
		return
	}
	s.logDuplicates(result)

	kinds := make([]string, 0, 3)
	for _, k := range models.GeographyKinds() {
		kinds = append(kinds, k.String())
	}

	c.HTML(http.StatusOK, "dashboard.html", dashboardPage{
		Title:       sel.Title(),
		Selection:   sel,
		National:    sel.Kind == models.National,
		Kinds:       options(kinds, sel.Kind.String()),
		Geographies: options(query.GeographyOptions(table, sel.Kind), sel.Geography),
		Occupations: options(query.Occupations(table), sel.Occupation),
		Result:      result,
		NoData:      models.NoDataMessage,
		Table:       table,
	})
}

func (s *Server) health(c *gin.Context) {
	table, err := s.loader.Load(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(loadErrorStatus(err), gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"source":    table.Source(),
		"rows":      table.Len(),
		"loaded_at": table.LoadedAt(),
	})
}

func (s *Server) listOccupations(c *gin.Context) {
	table, ok := s.apiTable(c)
	if !ok {
		return
	}
	limit, ok := limitParam(c)
	if !ok {
		return
	}

	all := query.Occupations(table)
	c.JSON(http.StatusOK, gin.H{
		"occupations": query.MatchValues(all, c.Query("contains"), limit),
		"total":       len(all),
	})
}

func (s *Server) listGeographies(c *gin.Context) {
	kind, err := models.ParseGeographyKind(c.Query(models.ParamGeoLevel))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	table, ok := s.apiTable(c)
	if !ok {
		return
	}

	all := query.GeographyOptions(table, kind)
	c.JSON(http.StatusOK, gin.H{
		models.ParamGeoLevel: kind,
		"geographies":        query.MatchValues(all, c.Query("contains"), limit),
		"total":              len(all),
	})
}

// lookupWages is the strict API form of the dashboard: no fallbacks.
func (s *Server) lookupWages(c *gin.Context) {
	occupation := c.Query(models.ParamSelectedJob)
	if occupation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ParamSelectedJob + " is required"})
		return
	}
	kind, err := models.ParseGeographyKind(c.DefaultQuery(models.ParamGeoLevel, string(models.National)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	geography := c.Query(models.ParamSelectedGeo)
	if kind != models.National && geography == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ParamSelectedGeo + " is required for " + kind.String()})
		return
	}

	table, ok := s.apiTable(c)
	if !ok {
		return
	}

	result, err := query.Query(table, occupation, kind, geography)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, query.ErrInvalidGeographyKind) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.logDuplicates(result)

	response := gin.H{
		"title":     result.Selection.Title(),
		"selection": result.Selection,
		"found":     result.Found,
	}
	if result.Found {
		response["summary"] = result.Summary
	} else {
		response["message"] = models.NoDataMessage
	}
	c.JSON(http.StatusOK, response)
}

// reload rereads the dataset and swaps it in. On failure the previous table
// keeps serving.
func (s *Server) reload(c *gin.Context) {
	table, err := s.loader.Reload(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(loadErrorStatus(err), gin.H{"status": "failed", "error": err.Error()})
		return
	}
	s.logger.Info("dataset reloaded",
		zap.String("source", table.Source()),
		zap.Int("rows", table.Len()))
	c.JSON(http.StatusOK, gin.H{
		"status":    "reloaded",
		"source":    table.Source(),
		"rows":      table.Len(),
		"loaded_at": table.LoadedAt(),
	})
}

// clearCache drops the cached table; the next request reads the dataset again
func (s *Server) clearCache(c *gin.Context) {
	s.loader.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// apiTable loads the table or writes a JSON error
func (s *Server) apiTable(c *gin.Context) (*dataset.Table, bool) {
	table, err := s.loader.Load(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(loadErrorStatus(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return table, true
}

func (s *Server) renderLoadError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.HTML(loadErrorStatus(err), "error.html", errorPage{
		Title:   "Wage data unavailable",
		Message: "The wage dataset could not be loaded. Check WAGES_DATA and try again.",
		Detail:  err.Error(),
	})
}

func (s *Server) logDuplicates(result models.QueryResult) {
	if !result.Duplicated() {
		return
	}
	s.logger.Debug("several rows matched selection; using the first in storage order",
		zap.String("occupation", result.Selection.Occupation),
		zap.String("geo_level", result.Selection.Kind.String()),
		zap.String("geography", result.Selection.Geography),
		zap.Int("matches", result.Summary.Matches))
}

func loadErrorStatus(err error) int {
	if errors.Is(err, dataset.ErrDataUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// limitParam parses ?limit=, writing a 400 on bad input. Zero means no limit.
func limitParam(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return 0, false
	}
	return limit, true
}
