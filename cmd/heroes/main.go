package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"heroes/internal/config"
	"heroes/internal/heroapi"
	"heroes/internal/logging"
	"heroes/internal/message"
	"heroes/internal/search"
	"heroes/internal/tracing"
	"heroes/internal/ui"
)

// parseFlags layers command-line overrides on top of the environment config.
func parseFlags(cfg config.Client) config.Client {
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "base URL of the hero API")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (empty disables logging)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.StartPath, "start", cfg.StartPath, "first screen: dashboard, heroes or detail/<id>")
	flag.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP client timeout (0 for none)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: heroes [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Tour of Heroes in the terminal. Talks to a hero API (see heroapi).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return cfg
}

func run(cfg config.Client) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tp, err := tracing.Setup(ctx, "heroes")
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

	client, err := heroapi.NewClient(cfg.APIURL, heroapi.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	if err != nil {
		return err
	}
	messages := message.NewLog()
	svc := heroapi.NewService(client, messages, logger)

	pipeline := search.New(svc.SearchHeroes,
		search.WithLogger(logger),
		search.WithMessages(messages),
	)
	defer pipeline.Close()

	model, err := ui.NewAppModel(ui.Deps{
		Service:   svc,
		Search:    pipeline,
		Messages:  messages,
		StartPath: cfg.StartPath,
		Context:   ctx,
	})
	if err != nil {
		return err
	}

	logger.Info("heroes starting", zap.String("api", cfg.APIURL), zap.String("start", cfg.StartPath))
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "heroes: %v\n", err)
		os.Exit(1)
	}
	if err := run(parseFlags(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "heroes: %v\n", err)
		os.Exit(1)
	}
}
