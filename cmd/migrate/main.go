package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/portfolio-api/internal/common/config"
	"github.com/AlibekovAA/portfolio-api/internal/common/db"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

const usage = "usage: migrate [up|down|status|reset]"

func main() {
	cmd := db.MigrateUp
	if len(os.Args) > 1 {
		cmd = db.MigrationCommand(os.Args[1])
	}
	switch cmd {
	case db.MigrateUp, db.MigrateDown, db.MigrateStatus, db.MigrateReset:
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadMigrate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "migrate", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, log, cfg.DatabaseURL, cmd); err != nil {
		log.Errorf("migrate %s failed: %v", cmd, err)
		stop()
		os.Exit(1)
	}
	log.Infof("migrate %s done", cmd)
}
