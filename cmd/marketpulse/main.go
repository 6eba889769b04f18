package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketpulse/internal/analytics"
	"marketpulse/internal/config"
	"marketpulse/internal/database"
	"marketpulse/internal/handler"
	"marketpulse/internal/metrics"
	"marketpulse/internal/store"
)

type backend interface {
	analytics.Store
	analytics.Lookup
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	var (
		data backend
		ping func(ctx context.Context) error
	)
	if cfg.DatabaseURI == config.MemoryDatabase {
		slog.Warn("using in-memory store, all figures will be zero until data is loaded")
		data = store.NewMemory()
		ping = func(context.Context) error { return nil }
	} else {
		db, err := database.NewDB(ctx, cfg.DatabaseURI, database.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(ctx, db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
		data = store.NewPostgres(db)
		ping = db.PingContext
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(reg)

	// Services
	est := cfg.Analytics.Estimates
	svc := analytics.NewService(data, data, analytics.Config{
		Currency: cfg.Analytics.Currency,
		Estimates: analytics.Estimates{
			SavingsVsMarket:       est.SavingsVsMarket,
			SavingsTrend:          est.SavingsTrend,
			ResponseTimeTrend:     est.ResponseTimeTrend,
			SupplierQualityScore:  est.SupplierQualityScore,
			SupplierResponseHours: est.SupplierResponseHours,
			SupplierWinRate:       est.SupplierWinRate,
		},
	}, slog.Default())

	// Router
	r := handler.NewRouter(svc, handler.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Timeout:   cfg.Analytics.Timeout,
		Ping:      ping,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Analytics.Timeout + 5*time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
