// Package app wires configuration, storage and the task list controller together.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"todo/internal/backend/localfile"
	"todo/internal/backend/sqlite"
	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/persist"
	"todo/internal/storage"
)

// App is a mounted controller bound to the storage it persists to.
type App struct {
	*controller.Controller
	store storage.Storage
}

// Open opens the configured storage and loads the task list.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Mount(ctx, store, cfg.StorageKey)
}

// Mount loads the task list stored under key in store.
// On failure store is closed.
func Mount(ctx context.Context, store storage.Storage, key string) (*App, error) {
	ctl := controller.New(persist.New(store, key))
	if err := ctl.Mount(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return &App{Controller: ctl, store: store}, nil
}

// Close releases the storage.
func (a *App) Close() error {
	return a.store.Close()
}

// OpenStorage opens the storage backend selected by cfg.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendSQLite:
		c, err := sqlite.Open(ctx, cfg.DataPath())
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendFile, "":
		c, err := localfile.Open(cfg.DataPath())
		if err != nil {
			return nil, err
		}
		log.FromContext(ctx).Debug("opened data file", "path", c.Path())
		return c, nil
	}
	return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
}
