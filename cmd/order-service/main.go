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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berkeshop/ecommerce-orders/internal/coordinator/sagalog/sqlite"
	"github.com/berkeshop/ecommerce-orders/internal/orders/app"
	"github.com/berkeshop/ecommerce-orders/internal/orders/core/ports"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/clients/basket"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/clients/customer"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/clients/payment"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/httpx"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/kafka"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/kafka/noop"
	"github.com/berkeshop/ecommerce-orders/internal/orders/infra/postgres"
	"github.com/berkeshop/ecommerce-orders/internal/pkg/cache"
	"github.com/berkeshop/ecommerce-orders/internal/pkg/config"
	"github.com/berkeshop/ecommerce-orders/internal/pkg/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.InitLogger(cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName)
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store, err := postgres.NewStore(ctx, pool)
	if err != nil {
		slog.Error("failed to initialise order store", "error", err)
		os.Exit(1)
	}

	sagaLog, err := sqlite.Open(cfg.SagaLogPath)
	if err != nil {
		slog.Error("failed to open saga log", "path", cfg.SagaLogPath, "error", err)
		os.Exit(1)
	}
	defer sagaLog.Close()

	redisCache := cache.NewRedisCache(cfg.RedisAddr, "orders")

	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		slog.Warn("no kafka brokers configured, order events will be discarded")
		publisher = noop.Publisher{}
	}

	orderService := app.NewService(
		store,
		customer.NewClient(cfg.CustomerServiceURL, nil, redisCache),
		basket.NewClient(cfg.BasketServiceURL, nil),
		payment.NewClient(cfg.PaymentServiceURL, nil),
		publisher,
		sagaLog,
	)

	router := httpx.NewRouter(httpx.NewHandler(orderService))
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		slog.Info("order service running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
}
