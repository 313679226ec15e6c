package client

import (
	"context"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
)

type Client interface {
	ListEntries(ctx context.Context) ([]models.KnowledgeEntry, error)
	GetEntry(ctx context.Context, id string) (models.KnowledgeEntry, error)
	CreateEntry(ctx context.Context, in models.EntryInput) (models.KnowledgeEntry, error)
	UpdateEntry(ctx context.Context, id string, patch models.EntryPatch) (models.KnowledgeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}
