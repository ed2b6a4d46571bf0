package main

import (
	"fmt"
	"os"

	"github.com/homewiz/homewiz-backend/internal/cli"
	"github.com/homewiz/homewiz-backend/internal/config"
	"github.com/homewiz/homewiz-backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, "console", "homewiz-admin")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cli.NewRootCmd(cli.NewApp(cfg, log)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
