package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadchandra19/exchange/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/pkg/redis"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/bootstrap"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/internal/metrics"
	"github.com/muhammadchandra19/exchange/services/bar-aggregator/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	log, err = logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		panic(err)
	}
}

func main() {
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	checks := map[string]healthcheck.Checker{}

	var questdbClient questdb.QuestDBClient
	if cfg.Ingest.StoreBars {
		client, err := questdb.NewClient(ctx, cfg.QuestDB)
		if err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "connect_questdb"})
			return
		}
		defer client.Close()

		questdbClient = client
		checks["questdb"] = client.Ping
	}

	var redisClient redis.Client
	if cfg.Ingest.CacheBars {
		client := redis.NewClient(log, &cfg.Redis)
		if err := client.Connect(ctx); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "connect_redis"})
			return
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error(err, logger.Field{Key: "action", Value: "disconnect_redis"})
			}
		}()

		redisClient = client
		checks["redis"] = client.Ping
	}

	app, err := (&bootstrap.Bootstrap{}).Init(bootstrap.BootstrapConfig{
		Config:  cfg,
		Logger:  log,
		Metrics: m,
		QuestDB: questdbClient,
		Redis:   redisClient,
	})
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "bootstrap"})
		return
	}

	if err := app.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start"})
		return
	}

	var server *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

		hc := healthcheck.HealthCheck{Checks: checks, Timeout: cfg.QuestDB.ConnectTimeout}
		server = &http.Server{Addr: cfg.Metrics.Addr(), Handler: hc.Handler(mux)}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(err, logger.Field{Key: "action", Value: "serve_metrics"})
			}
		}()
	}

	log.Info("Bar aggregator started",
		logger.Field{Key: "app", Value: cfg.App.Name},
		logger.Field{Key: "environment", Value: cfg.App.Environment},
		logger.Field{Key: "metrics_addr", Value: cfg.Metrics.Addr()},
	)

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	app.Stop(shutdownCtx)

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "stop_metrics_server"})
		}
	}

	log.Info("Bar aggregator shutdown complete")
}
