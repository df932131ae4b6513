// ABOUTME: Web dashboard server built on gin
// ABOUTME: Owns the router, middleware and graceful shutdown
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/dataset"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server serves the dashboard and JSON API over one loader
type Server struct {
	loader *dataset.Loader
	logger *zap.Logger
	engine *gin.Engine
}

// NewServer builds the router. A nil logger disables logging.
func NewServer(loader *dataset.Loader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		loader: loader,
		logger: logger,
		engine: gin.New(),
	}

	s.engine.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
	))
	s.engine.Use(requestID(), requestLogger(logger), gin.Recovery())
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.dashboard)
	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	api.GET("/occupations", s.listOccupations)
	api.GET("/geographies", s.listGeographies)
	api.GET("/wages", s.lookupWages)
	api.POST("/reload", s.reload)
	api.POST("/cache/clear", s.clearCache)
}

// Handler exposes the router for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Serve(ln)
	}()

	s.logger.Info("web dashboard listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("web dashboard stopped")
	return nil
}
