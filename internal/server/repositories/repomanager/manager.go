// Package repomanager opens the configured storage backend, runs its
// migrations and vends entry repositories, either bound to the pool or to a
// transaction.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kbadmin/internal/server/config"
	"github.com/dmitrijs2005/kbadmin/internal/server/repositories/entries"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Entries() entries.Repository
	// InTx runs fn with a repository whose calls share one transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error
	Close() error
}

// Open builds the manager for cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.StorageSQLite:
		return NewSQLiteRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
