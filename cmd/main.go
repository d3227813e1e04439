package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/touchboard/internal/adapters/chart"
	"github.com/okian/touchboard/internal/adapters/dataset"
	"github.com/okian/touchboard/internal/adapters/http/api"
	"github.com/okian/touchboard/internal/adapters/http/site"
	"github.com/okian/touchboard/internal/adapters/http/swagger"
	app "github.com/okian/touchboard/internal/app"
	"github.com/okian/touchboard/internal/config"
	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/pkg/logger"
	"github.com/okian/touchboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	format, _ := logger.ParseFormat(cfg.LogFormat) // validated by config.Load
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// The dashboard is useless without data: refuse to start.
	loader := dataset.NewLoader(cfg.DataPath,
		dataset.WithSheet(cfg.Sheet),
		dataset.WithLogger(logger.Named("dataset")),
	)
	ds, err := loader.Load(ctx)
	if err != nil {
		loggerInstance.Fatal(ctx, "dataset unavailable", logger.String("path", cfg.DataPath), logger.Error(err))
	}

	svc := newService(cfg, ds, loggerInstance)

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Int("players", ds.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(shutdownCtx, "server stopped")
}

// newService builds the query service from configuration.
func newService(cfg *config.Config, ds *player.Dataset, l logger.Logger) *app.Service {
	return app.New(ds,
		app.WithLogger(l),
		app.WithDefaultUsageMin(cfg.DefaultUsageMin),
		app.WithMaxResultRows(cfg.MaxResultRows),
		app.WithRenderer(chart.NewRenderer(chart.WithSize(cfg.ChartWidth, cfg.ChartHeight))),
	)
}

// newHandler registers every route and wraps the mux with request ids.
func newHandler(ctx context.Context, svc *app.Service) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	return api.RequestID(mux, logger.Named("http"))
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
