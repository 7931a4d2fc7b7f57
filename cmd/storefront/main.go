package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelsqlite "github.com/jcmexdev/storefront/internal/cancellog/sqlite"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/metrics"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront/internal/storefront/infra/adapters/repository"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "storefront"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	cancelLog, err := cancelsqlite.Open(getEnv("CANCELLOG_PATH", "./data/cancellations.db"))
	if err != nil {
		slog.Error("failed to open cancellation log", "error", err)
		os.Exit(1)
	}
	defer cancelLog.Close()

	redisAddr := getEnv("REDIS_ADDR", "redis-cache:6379")
	redisCache := cache.NewRedisCache(redisAddr, "storefront")

	catalog := repository.NewCachedCatalog(repository.NewInMemoryCatalog(), redisCache, 5*time.Minute)
	orders := repository.NewInMemoryOrders()

	handler := httpx.NewHandler(catalog, orders, orders, cancelLog)
	router := httpx.NewRouter(handler, metrics.NewServerMetrics("api"))

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{
		Addr:    addr,
		Handler: otelhttp.NewHandler(router, "storefront"),
	}

	go func() {
		slog.Info("storefront running", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
