package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"pizzabot/internal/chat"
	"pizzabot/internal/config"
	"pizzabot/internal/i18n"
	"pizzabot/internal/logger"
	"pizzabot/internal/service"
)

var (
	apiURL     = flag.String("api", "", "API base URL (default $PIZZABOT_API_URL or http://localhost:8080)")
	language   = flag.String("lang", i18n.English, "Reply language")
	plain      = flag.Bool("plain", false, "Line-oriented chat instead of the full-screen interface")
	local      = flag.Bool("local", false, "Run the assistant in-process against the configured database")
	configFile = flag.String("config", "configs/config.yaml", "Configuration file for -local")
)

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *local {
		return runLocal(ctx)
	}

	client := NewAPIClient(*apiURL)
	if err := client.CheckHealth(ctx); err != nil {
		return fmt.Errorf("API server at %s is not available: %w", client.BaseURL, err)
	}
	sess, err := client.StartSession(ctx, *language)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if *plain {
		return runRemote(ctx, client, sess.Welcome, newLineRenderer(os.Stdin, os.Stdout))
	}
	return runTUI(ctx, client, sess.Welcome)
}

func runLocal(ctx context.Context) error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	// Log lines would tear the terminal UI.
	log := logger.New(cfg.Log.Level, cfg.Log.Format, io.Discard)
	ctx = logger.WithLogger(ctx, log)

	svc, err := service.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	backend := newLocalBackend(svc, *language)
	if *plain {
		return chat.Run(ctx, svc.Engine, backend.sess, newLineRenderer(os.Stdin, os.Stdout))
	}

	welcome, err := backend.Welcome()
	if err != nil {
		return err
	}
	return runTUI(ctx, backend, welcome)
}

func runTUI(ctx context.Context, backend Backend, welcome chat.Reply) error {
	p := tea.NewProgram(initialModel(ctx, backend, welcome), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
