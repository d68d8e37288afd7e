package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/portfolio-api/internal/common/bootstrap"
	"github.com/AlibekovAA/portfolio-api/internal/common/config"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	srv "github.com/AlibekovAA/portfolio-api/internal/common/server"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "portfolio", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}
	defer log.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer app.Close()

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	if err := srv.ListenAndRun(ctx, serverConfig, app.Router, log, "portfolio", app.ShutdownHooks()); err != nil {
		log.Errorf("server exited: %v", err)
		app.Close()
		os.Exit(1)
	}
}
