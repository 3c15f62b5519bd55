package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"heroes/internal/config"
	"heroes/internal/logging"
	"heroes/internal/server"
	"heroes/internal/tracing"
)

func parseFlags(cfg config.Server) config.Server {
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "hero store: memory or badger")
	flag.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "badger directory (empty keeps it in memory)")
	flag.DurationVar(&cfg.Latency, "latency", cfg.Latency, "artificial delay added to every /api request")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: heroapi [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Mock hero REST API seeded with the classic ten heroes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return cfg
}

func openStore(cfg config.Server) (server.Store, error) {
	if cfg.Store == config.StoreBadger {
		s, err := server.OpenBadgerStore(cfg.StorePath, server.DefaultHeroes())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return server.NewMemoryStore(server.DefaultHeroes()), nil
}

func run(cfg config.Server) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Setup(ctx, "heroapi")
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close store", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	router := server.NewRouter(store, logger, reg, server.RouterOptions{
		Latency:        cfg.Latency,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := server.NewServer(cfg.Addr, router, logger)
	if err := srv.Start(); err != nil {
		return err
	}
	logger.Info("hero api ready",
		zap.String("store", cfg.Store),
		zap.Duration("latency", cfg.Latency),
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	return nil
}

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "heroapi: %v\n", err)
		os.Exit(1)
	}
	if err := run(parseFlags(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "heroapi: %v\n", err)
		os.Exit(1)
	}
}
