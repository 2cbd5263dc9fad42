package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/config"
	"github.com/civicdataworks/lane-swim-tracker/directory"
	"github.com/civicdataworks/lane-swim-tracker/metrics"
	"github.com/civicdataworks/lane-swim-tracker/pacing"
	"github.com/civicdataworks/lane-swim-tracker/refresh"
	"github.com/civicdataworks/lane-swim-tracker/schedule"
	"github.com/civicdataworks/lane-swim-tracker/server"
	"github.com/civicdataworks/lane-swim-tracker/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	reuseDirectory := flag.Bool("reuse-directory", false, "skip the directory re-fetch when a cached candidate list exists")
	once := flag.Bool("once", false, "run a single refresh cycle and exit without serving")
	flag.Parse()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	if err := config.LoadAppConfig(*configPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	cfg := config.Config

	metrics.Register()

	gate := pacing.New(cfg.Upstream.PolitenessMin(), cfg.Upstream.PolitenessMax())
	dir := directory.NewClient(directory.ClientOptions{
		URL:      cfg.Upstream.DirectoryURL,
		Attempts: cfg.Upstream.RetryAttempts,
		Backoff:  cfg.Upstream.RetryBackoff(),
		Timeout:  cfg.Upstream.Timeout(),
	}, logger)
	schedules := schedule.NewClient(schedule.ClientOptions{
		URLTemplate: cfg.Upstream.ScheduleURLTemplate,
		Attempts:    cfg.Upstream.RetryAttempts,
		Backoff:     cfg.Upstream.RetryBackoff(),
		Timeout:     cfg.Upstream.Timeout(),
	}, gate, logger)
	store := snapshot.NewStore(cfg.Cache.SnapshotPath, logger)
	runner := refresh.NewRunner(
		dir,
		directory.NewCache(cfg.Cache.CandidatesPath),
		schedules,
		schedule.NewNormalizer(logger),
		store,
		cfg.Refresh,
		logger,
	)
	runner.ReuseDirectory = *reuseDirectory

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := runner.RunCycle(ctx); err != nil {
			logger.Fatal().Err(err).Msg("refresh cycle failed")
		}
		return
	}

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	srv, err := server.New(cfg.Server.Port, store, runner.LastSuccess, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build server")
	}
	srv.Start()
	go runner.Start(ctx)

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
