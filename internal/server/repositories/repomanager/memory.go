package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/kbadmin/internal/server/repositories/entries"
)

// MemoryRepositoryManager keeps everything in process. Transactions are
// serialized with a mutex; there is no rollback.
type MemoryRepositoryManager struct {
	txMu sync.Mutex
	repo *entries.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repo: entries.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Entries() entries.Repository { return m.repo }

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, repo entries.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.repo)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
