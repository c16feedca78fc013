package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pautas-radio/internal/adapter/cache"
	"pautas-radio/internal/adapter/events"
	httpadapter "pautas-radio/internal/adapter/http"
	"pautas-radio/internal/adapter/postgres"
	"pautas-radio/internal/adapter/usecase"
	"pautas-radio/internal/config"
	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
	"pautas-radio/internal/db"
	"pautas-radio/internal/metrics"
)

// main is the entry point of the order service. It loads configuration,
// optionally runs database migrations and the demo seed, wires the
// repository, cache and event publisher into the usecase, then starts the
// HTTP server. On receiving a termination signal it gracefully shuts down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.New(os.Stdout, cfg.Env)

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String(), logger); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			return
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		return
	}
	defer pool.Close()

	repo := postgres.NewOrderRepository(pool)
	if cfg.Psql.Seed {
		if err = db.Seed(ctx, repo, logger); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			return
		}
	}

	var orderCache port.OrderCache
	if cfg.Redis.Enabled {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("redis connection error", slog.Any("error", err))
			return
		}
		defer client.Close()
		orderCache = cache.NewOrderCache(client, cfg.Redis.TTL, logger)
		logger.Info("order cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	var publisher port.EventPublisher
	if cfg.Kafka.Enabled {
		p := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.WriteTimeout, logger)
		defer func() {
			if err := p.Close(); err != nil {
				logger.Error("event publisher close error", slog.Any("error", err))
			}
		}()
		publisher = p
		logger.Info("order events enabled", slog.String("topic", cfg.Kafka.Topic))
	}

	svc := usecase.NewOrderUseCase(repo, orderCache, publisher, logger,
		usecase.WithMaxCampaignDays(cfg.Pauta.MaxCampaignDays),
		usecase.WithDefaultTax(domain.TaxConfig{
			Option:   domain.TaxOption(cfg.Pauta.DefaultTaxOption),
			Currency: domain.Currency(cfg.Pauta.DefaultCurrency),
		}),
	)

	m := metrics.New()
	handler := httpadapter.NewHandler(svc, logger,
		httpadapter.WithObserver(m, m.Middleware, m.Handler()),
		httpadapter.WithMaxImportBytes(cfg.Pauta.MaxImportBytes),
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
		return
	case <-ctx.Done():
		exitCode = 0
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
