package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/dbx"
	"github.com/bluecarbonlabs/fieldsync/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Project) error {
	query := `INSERT INTO projects (
			id, name, description, ecosystem_type, latitude, longitude,
			radius_m, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, string(p.Ecosystem),
		p.Location.Latitude, p.Location.Longitude,
		p.RadiusMeters, string(p.Status), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Project, error) {
	query := `SELECT id, name, description, ecosystem_type, latitude, longitude,
			radius_m, status, created_at
		FROM projects ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []models.Project
	for rows.Next() {
		var (
			p                 models.Project
			ecosystem, status string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &ecosystem,
			&p.Location.Latitude, &p.Location.Longitude,
			&p.RadiusMeters, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("project scan failed: %w", err)
		}
		p.Ecosystem = models.EcosystemType(ecosystem)
		p.Status = models.ProjectStatus(status)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT id, name, description, ecosystem_type, latitude, longitude,
			radius_m, status, created_at
		FROM projects WHERE id = ?`

	var (
		p                 models.Project
		ecosystem, status string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description,
		&ecosystem, &p.Location.Latitude, &p.Location.Longitude,
		&p.RadiusMeters, &status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	p.Ecosystem = models.EcosystemType(ecosystem)
	p.Status = models.ProjectStatus(status)
	return &p, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}
