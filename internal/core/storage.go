package core

import (
	"context"
	"fmt"

	"reactcore/internal/config"
	"reactcore/internal/infra/persistence/memory"
	"reactcore/internal/infra/persistence/postgres"
	"reactcore/internal/infra/persistence/sqlite"
	"reactcore/pkg/rateset"
)

// OpenStore selects a rate set store from the storage configuration.
// An empty driver selects sqlite.
func OpenStore(ctx context.Context, cfg config.Storage) (rateset.Store, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return memory.NewStore(), nil
	case "", config.StorageSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}
