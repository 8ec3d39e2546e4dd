// Skillpath - Daily Learning Plans in Your Terminal
//
// A CLI tool that builds multi-day learning roadmaps with an LLM, shares
// them between learners with matching goals, and delivers one bite-sized
// session per day.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/skillpath/internal/cli"
	"github.com/asteroid-belt/skillpath/internal/config"
	"github.com/asteroid-belt/skillpath/internal/log"
	"github.com/asteroid-belt/skillpath/internal/store"
	"github.com/asteroid-belt/skillpath/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open database for persistent tracking ID
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	_ = log.Init(paths.Logs)
	defer func() {
		_ = log.Close()
	}()

	database, err := store.New(store.DefaultConfig(paths.Database))
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	// Use persistent tracking ID from database
	telemetryClient := telemetry.New(database)
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
