package projects

import (
	"context"

	"github.com/bluecarbonlabs/fieldsync/internal/models"
)

// Repository describes storage operations for the locally mirrored Project
// reference table. The sync engine only reads it; writes come from the
// project-registration flow.
type Repository interface {
	// Insert persists a mirrored project.
	Insert(ctx context.Context, p *models.Project) error

	// List returns projects newest-first by creation time.
	List(ctx context.Context) ([]models.Project, error)

	// GetByID returns a single project or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// Count returns the total number of mirrored projects.
	Count(ctx context.Context) (int, error)
}
