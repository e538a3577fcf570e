package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"todolist/config"
	"todolist/di"
	_ "todolist/docs"
	"todolist/helper"
	"todolist/shared/logger"
	"todolist/shared/timezone"
)

// @title Todo List API
// @version 1.0
// @description REST API for managing todo items.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	logger.InitLogger()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Service stopped")
	}
}

func run() error {
	cfg := config.Get()

	logger.SetLogLevel(cfg)
	timezone.Init(cfg.App.Timezone)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := di.InitializeService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer cleanup()

	return server.Serve(ctx) //nolint:wrapcheck
}
