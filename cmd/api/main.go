package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/sukkarlab/sweetshop-backend/api/routes"
	"github.com/sukkarlab/sweetshop-backend/internal/branches"
	"github.com/sukkarlab/sweetshop-backend/internal/catalog"
	"github.com/sukkarlab/sweetshop-backend/internal/content"
	"github.com/sukkarlab/sweetshop-backend/internal/delivery"
	"github.com/sukkarlab/sweetshop-backend/internal/events"
	"github.com/sukkarlab/sweetshop-backend/internal/options"
	"github.com/sukkarlab/sweetshop-backend/internal/orders"
	"github.com/sukkarlab/sweetshop-backend/internal/pricing"
	"github.com/sukkarlab/sweetshop-backend/internal/staff"
	"github.com/sukkarlab/sweetshop-backend/pkg/config"
	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/logger"
	"github.com/sukkarlab/sweetshop-backend/pkg/metrics"
	"github.com/sukkarlab/sweetshop-backend/pkg/migrate"
	pkgredis "github.com/sukkarlab/sweetshop-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency and login throttling disabled")
	}

	svcs, err := buildServices(cfg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, promRegistry, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	var closeErr error
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func buildServices(cfg *config.Config, dbClient *db.Client) (routes.Services, error) {
	gdb := dbClient.DB()

	pricingSvc, err := pricing.NewService(pricing.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}
	deliverySvc, err := delivery.NewService(delivery.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}
	ordersSvc, err := orders.NewService(dbClient, orders.NewRepository(gdb), pricingSvc, deliverySvc)
	if err != nil {
		return routes.Services{}, err
	}
	catalogSvc, err := catalog.NewService(catalog.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}
	optionsSvc, err := options.NewService(options.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}
	branchesSvc, err := branches.NewService(gdb)
	if err != nil {
		return routes.Services{}, err
	}
	eventsSvc, err := events.NewService(gdb)
	if err != nil {
		return routes.Services{}, err
	}
	contentSvc, err := content.NewService(gdb)
	if err != nil {
		return routes.Services{}, err
	}
	staffSvc, err := staff.NewService(staff.NewRepository(gdb), cfg.JWT, cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Pricing:  pricingSvc,
		Orders:   ordersSvc,
		Catalog:  catalogSvc,
		Options:  optionsSvc,
		Delivery: deliverySvc,
		Branches: branchesSvc,
		Events:   eventsSvc,
		Content:  contentSvc,
		Staff:    staffSvc,
	}, nil
}
