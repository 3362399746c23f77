package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spec-kit/society-portal/internal/cli"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	app := cli.NewApp(cfg, logger)
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
