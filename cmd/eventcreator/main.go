// Command eventcreator is a terminal front end for the event form client.
// It edits the persisted form, auto-saves drafts and publishes events
// against the backend at API_BASE_URL.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"eventcreator/config"
	"eventcreator/internal/adapters/api"
	"eventcreator/internal/adapters/statestore"
	"eventcreator/internal/clock"
	"eventcreator/internal/composer"
	"eventcreator/internal/notify"
	"eventcreator/internal/registry"
	"eventcreator/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "eventcreator: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := config.NewLogger(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	storage, closer, err := statestore.Open(ctx, statestore.Options{
		Backend:       cfg.StateBackend,
		Path:          cfg.StatePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	clk := clock.Real()
	client := api.NewClient(cfg.APIBaseURL, cfg.APIToken, &http.Client{Timeout: cfg.APITimeout})
	st := store.New(ctx, storage, logger)
	center := notify.NewCenter(clk, logger)
	modules := registry.NewCachedSource(client, registry.Default(), cfg.ModuleConfigTTL, clk, logger)

	in := bufio.NewScanner(os.Stdin)
	sh := newShell(in, os.Stdout, st, center, modules)
	c := composer.New(composer.Deps{
		Store:         st,
		API:           client,
		Notifier:      center,
		Modules:       modules,
		Clock:         clk,
		Confirmer:     composer.ConfirmFunc(sh.confirm),
		Logger:        logger,
		AutoSaveDelay: cfg.AutoSaveDelay,
	})
	defer c.Close()
	sh.composer = c

	return sh.run(ctx)
}
