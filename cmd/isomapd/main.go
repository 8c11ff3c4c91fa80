// Command isomapd serves isochrone maps over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/flexpolyline"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/here"
	httpadapter "github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/http"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/svg"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/config"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/observability"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/render"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := here.NewClient(cfg.HereAPIKey, cfg.HereTimeout, logger)
	source := here.NewCachedIsolineSource(client, cfg.HereCacheSize, metrics)
	logger.Info("here client ready",
		"cache_size", cfg.HereCacheSize, "timeout", cfg.HereTimeout)

	canvas := svg.NewCanvas(cfg.RenderWidth, cfg.RenderHeight, svg.Viridis())
	service := render.New(client, source, canvas, flexpolyline.Decoder{}, logger, metrics)

	srv := httpadapter.NewServer(cfg, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
