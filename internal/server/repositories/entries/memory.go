package entries

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/kbadmin/internal/common"
	"github.com/dmitrijs2005/kbadmin/internal/server/models"
)

// MemoryRepository keeps entries in a slice. It is safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []models.Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Entry{}, r.entries...), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	e := r.entries[i]
	return &e, nil
}

func (r *MemoryRepository) Create(ctx context.Context, e *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(e.ID) >= 0 {
		return common.ErrAlreadyExists
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, e *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(e.ID)
	if i < 0 {
		return common.ErrNotFound
	}
	r.entries[i] = *e
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return common.ErrNotFound
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return nil
}

func (r *MemoryRepository) index(id string) int {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return i
		}
	}
	return -1
}
