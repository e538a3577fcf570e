package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"todolist/config"
	"todolist/infras/otel"
	"todolist/internal/client/api"
	"todolist/internal/client/tui"
	"todolist/shared/logger"
	"todolist/shared/timezone"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Get()

	logFile, err := logger.InitFileLogger(cfg.Client.LogFile)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logFile.Close()

	logger.SetLogLevel(cfg)
	timezone.Init(cfg.App.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, cleanup := otel.New(cfg)
	defer cleanup()

	program := tea.NewProgram(tui.New(ctx, api.New(cfg, tracer)), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("terminal client stopped")

		return fmt.Errorf("running terminal client: %w", err)
	}

	return nil
}
