// ABOUTME: Serve command runs the web dashboard
// ABOUTME: Selections are kept in the URL so views can be bookmarked and shared
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/web"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Long: `Run the web dashboard and JSON API.

The dashboard keeps the selected level, geography and occupation in the
query string (geo_level, selected_geo, selected_job).

Routes:
  GET /                  dashboard
  GET /api/occupations   occupation titles (?contains=&limit=)
  GET /api/geographies   geographies for ?geo_level=
  GET /api/wages         lookup (?selected_job=&geo_level=&selected_geo=)
  GET /healthz           dataset status
  POST /api/reload       reread the dataset and swap it in
  POST /api/cache/clear  drop the cached dataset

Send SIGHUP to reread the dataset without restarting.

Examples:
  wages serve
  wages serve --addr 127.0.0.1:8080`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides WAGES_LISTEN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fail fast on a missing dataset instead of on the first request
	table, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("dataset ready",
		zap.String("source", table.Source()),
		zap.Int("rows", table.Len()))

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)
	go reloadOnSignal(ctx, hangup, loader)

	return web.NewServer(loader, logger).Run(ctx, addr)
}

// reloadOnSignal rereads the dataset each time sig fires until ctx is done
func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, loader *dataset.Loader) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			table, err := loader.Reload(ctx)
			if err != nil {
				logger.Error("dataset reload failed; keeping the previous table", zap.Error(err))
				continue
			}
			logger.Info("dataset reloaded",
				zap.String("source", table.Source()),
				zap.Int("rows", table.Len()))
		}
	}
}
