package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/restaurant-orders/internal/app"
	"github.com/jcmexdev/restaurant-orders/internal/infra/console"
	"github.com/jcmexdev/restaurant-orders/internal/infra/persistence"
	"github.com/jcmexdev/restaurant-orders/internal/infra/services"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/cache"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/telemetry"
	"github.com/jcmexdev/restaurant-orders/internal/saga/sagalog"
	sagasqlite "github.com/jcmexdev/restaurant-orders/internal/saga/sagalog/sqlite"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "restaurant-orders"))
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

	// Saga log: SQLite when a path is configured, in-memory otherwise.
	var sagaRepo sagalog.Repository
	if path := os.Getenv("SAGA_DB_PATH"); path != "" {
		repo, err := sagasqlite.Open(path)
		if err != nil {
			slog.Error("failed to open saga log database", "path", path, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		sagaRepo = repo
	} else {
		sagaRepo = sagalog.NewMemoryRepository()
	}

	// Idempotency cache: redis when configured, in-memory otherwise.
	var idempotency cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		idempotency = cache.NewRedisCache(addr, "orders")
	} else {
		idempotency = cache.NewMemoryCache("orders")
	}

	productStore := persistence.NewProductStore()
	customerStore := persistence.NewCustomerStore()
	orderStore := persistence.NewOrderStore()
	stock := services.NewStockService()
	gateway := services.NewMockGateway(services.DefaultChargeLimit)
	notifier := services.NewLogNotifier()

	productSvc := app.NewProductService(productStore)
	customerSvc := app.NewCustomerService(customerStore)
	workflow := app.NewOrderWorkflow(orderStore, productStore, customerStore, stock, gateway, notifier).
		WithSagaLog(sagaRepo).
		WithCache(idempotency)

	fmt.Println("Loading demo data...")
	if err := console.SeedDemoData(ctx, os.Stdout, productSvc, customerSvc); err != nil {
		slog.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}

	menu := console.NewMenu(os.Stdin, os.Stdout, productSvc, customerSvc, workflow, stock)
	menu.Run(ctx)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
