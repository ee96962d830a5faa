package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"itempatch/internal/config"
	"itempatch/internal/item"
	"itempatch/internal/logger"
	"itempatch/internal/patch"
	"itempatch/internal/session"
	"itempatch/internal/store"
	"itempatch/internal/store/open"
)

func loadConfig() (*config.ClientConfig, error) {
	return config.LoadClientConfig(configPath)
}

func newLogger(cfg *config.ClientConfig) *slog.Logger {
	return logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)
}

func openDB(ctx context.Context, cfg *config.ClientConfig) (store.Store, error) {
	return open.Open(ctx, cfg.Database.DSN)
}

// newSession loads the base item table and wires a resolver that opens the
// configured store once per patch pass.
func newSession(cfg *config.ClientConfig, log *slog.Logger) (*session.Session, *config.Store, error) {
	table, err := item.LoadTable(cfg.Items.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading items: %w", err)
	}
	settings := config.NewStore(cfg)
	resolver := patch.NewNameResolver(open.Source(cfg.Database.DSN), log)
	return session.New(table, settings, resolver, log), settings, nil
}
