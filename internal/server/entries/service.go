// Package entries implements the knowledge-entry use cases of the reference
// backend on top of a repository manager.
package entries

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/logging"
	"github.com/dmitrijs2005/kbadmin/internal/server/models"
	entryrepo "github.com/dmitrijs2005/kbadmin/internal/server/repositories/entries"
	"github.com/dmitrijs2005/kbadmin/internal/server/repositories/repomanager"
)

type Service struct {
	rm  repomanager.RepositoryManager
	now func() time.Time
	log logging.Logger
}

func NewService(rm repomanager.RepositoryManager, log logging.Logger) *Service {
	return &Service{rm: rm, now: time.Now, log: logging.OrNop(log)}
}

func (s *Service) List(ctx context.Context) ([]models.Entry, error) {
	return s.rm.Entries().List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Entry, error) {
	return s.rm.Entries().Get(ctx, id)
}

// Create stores e. A missing id is filled from the clock in milliseconds and
// a missing createdAt with today's UTC date.
func (s *Service) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	if e.ID == "" {
		e.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if e.CreatedAt == "" {
		e.CreatedAt = now.UTC().Format(time.DateOnly)
	}
	if err := s.rm.Entries().Create(ctx, e); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	s.log.Info(ctx, "entry created", "id", e.ID)
	return e, nil
}

// Update merges p into the stored entry inside one transaction and returns
// the merged record.
func (s *Service) Update(ctx context.Context, id string, p *models.EntryPatch) (*models.Entry, error) {
	var merged *models.Entry
	err := s.rm.InTx(ctx, func(ctx context.Context, repo entryrepo.Repository) error {
		cur, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		p.Apply(cur)
		if err := cur.Validate(); err != nil {
			return err
		}
		if err := repo.Update(ctx, cur); err != nil {
			return err
		}
		merged = cur
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error updating entry %s: %w", id, err)
	}
	s.log.Info(ctx, "entry updated", "id", id)
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.rm.Entries().Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting entry %s: %w", id, err)
	}
	s.log.Info(ctx, "entry deleted", "id", id)
	return nil
}
