package photos

import (
	"context"

	"github.com/bluecarbonlabs/fieldsync/internal/models"
)

// Repository describes storage operations for Photo metadata records.
type Repository interface {
	// Insert persists a new record; duplicate ids surface as constraint errors.
	Insert(ctx context.Context, p *models.Photo) error

	// List returns records newest-first by capture timestamp.
	List(ctx context.Context) ([]models.Photo, error)

	// ListUnsynced returns records with synced=0 ordered by creation time
	// ascending, then id.
	ListUnsynced(ctx context.Context) ([]*models.Photo, error)

	// MarkSynced flips the synced flag; idempotent.
	MarkSynced(ctx context.Context, id string, syncedAt int64) error

	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)
}
