package measurements

import (
	"context"

	"github.com/bluecarbonlabs/fieldsync/internal/models"
)

// Repository describes storage operations for Measurement records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Insert persists a new record. Ids are caller-generated and expected to
	// be unique; a duplicate id surfaces as a constraint error.
	Insert(ctx context.Context, m *models.Measurement) error

	// List returns records newest-first by capture timestamp. An empty
	// projectID lists all projects.
	List(ctx context.Context, projectID string) ([]models.Measurement, error)

	// ListUnsynced returns records with synced=0 ordered by creation time
	// ascending (then id, so the order is stable between calls).
	ListUnsynced(ctx context.Context) ([]*models.Measurement, error)

	// MarkSynced flips the synced flag. Idempotent: marking an already
	// synced id is a no-op and keeps the original synced_at.
	MarkSynced(ctx context.Context, id string, syncedAt int64) error

	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)
}
