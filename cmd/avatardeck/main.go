package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/avatardeck/internal/config"
	"github.com/jask/avatardeck/internal/logging"
	"github.com/jask/avatardeck/internal/reqres"
	"github.com/jask/avatardeck/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client := reqres.NewClient(cfg.Source.BaseURL, cfg.Source.Timeout, logger.Named("reqres"))

	app := tui.New(ctx, client, logger.Named("tui"), tui.Options{
		Title:       cfg.UI.Title,
		Subtitle:    cfg.UI.Subtitle,
		Placeholder: cfg.UI.PlaceholderAvatar,
		Page:        cfg.Source.Page,
		Limit:       cfg.Source.Limit,
	})
	defer app.Close()

	logger.Info("starting", zap.String("source", cfg.Source.BaseURL), zap.Int("page", cfg.Source.Page))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			logger.Info("stopped by signal")
			return nil
		}
		logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}
