package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NasaVasa/pricewatch/internal/app"
	"github.com/NasaVasa/pricewatch/internal/config"
)

func main() {
	checkOnce := flag.Bool("check-once", false, "run a single alert check and exit")
	flag.Parse()

	if err := run(*checkOnce); err != nil {
		fmt.Fprintln(os.Stderr, "pricewatch:", err)
		os.Exit(1)
	}
}

func run(checkOnce bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	if checkOnce {
		return application.CheckOnce(ctx)
	}
	return application.Run(ctx)
}
