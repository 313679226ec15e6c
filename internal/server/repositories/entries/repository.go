// Package entries stores knowledge entries for the reference backend. The
// SQL implementation serves both PostgreSQL and SQLite; an in-memory one
// backs tests and throwaway servers.
package entries

import (
	"context"

	"github.com/dmitrijs2005/kbadmin/internal/server/models"
)

// Repository is the entry storage contract. List returns entries in
// insertion order. Get, Update and Delete return common.ErrNotFound for an
// unknown id; Create returns common.ErrAlreadyExists for a taken one.
type Repository interface {
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id string) (*models.Entry, error)
	Create(ctx context.Context, entry *models.Entry) error
	Update(ctx context.Context, entry *models.Entry) error
	Delete(ctx context.Context, id string) error
}
