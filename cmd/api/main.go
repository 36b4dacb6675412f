package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sonhosdeninar/shipping-proxy/api/routes"
	"github.com/sonhosdeninar/shipping-proxy/internal/shipping"
	"github.com/sonhosdeninar/shipping-proxy/internal/skucache"
	"github.com/sonhosdeninar/shipping-proxy/pkg/config"
	"github.com/sonhosdeninar/shipping-proxy/pkg/logger"
	"github.com/sonhosdeninar/shipping-proxy/pkg/metrics"
	"github.com/sonhosdeninar/shipping-proxy/pkg/yampi"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "shipping-proxy"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "shipping-proxy",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	yampiClient, err := yampi.NewClient(cfg.Yampi)
	if err != nil {
		logg.Error(context.Background(), "failed to build yampi client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	shippingService, err := shipping.NewService(shipping.ServiceParams{
		Quoter:  yampiClient,
		Catalog: yampiClient,
		Cache:   skucache.New(skucache.DefaultTTL),
		Metrics: quoteMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting shipping proxy")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, registry, shippingService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
}
