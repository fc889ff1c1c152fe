package photos

import (
	"context"
	"database/sql"
	"fmt"

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

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Photo) error {
	query := `INSERT INTO photos (
			id, uri, timestamp, latitude, longitude, description, photo_type,
			file_size, synced, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`

	var lat, lon any
	if p.Location != nil {
		lat, lon = p.Location.Latitude, p.Location.Longitude
	}
	var size any
	if p.FileSize != nil {
		size = *p.FileSize
	}

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.URI, p.Timestamp, lat, lon, p.Description, string(p.Category), size, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Photo, error) {
	query := `SELECT ` + columns + ` FROM photos ORDER BY timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select photos: %w", err)
	}
	defer rows.Close()

	var result []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*models.Photo, error) {
	query := `SELECT ` + columns + ` FROM photos WHERE synced = 0 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select unsynced photos: %w", err)
	}
	defer rows.Close()

	var result []*models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, syncedAt int64) error {
	query := `UPDATE photos SET synced = 1, synced_at = ? WHERE id = ? AND synced = 0`
	if _, err := r.db.ExecContext(ctx, query, syncedAt, id); err != nil {
		return fmt.Errorf("failed to mark photo synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}

const columns = `id, uri, timestamp, latitude, longitude, description, photo_type,
	file_size, synced, synced_at, created_at`

func scanPhoto(rows *sql.Rows) (*models.Photo, error) {
	var (
		p        models.Photo
		lat, lon sql.NullFloat64
		category string
		size     sql.NullInt64
		synced   int
		syncedAt sql.NullInt64
	)
	if err := rows.Scan(&p.ID, &p.URI, &p.Timestamp, &lat, &lon,
		&p.Description, &category, &size, &synced, &syncedAt, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("photo scan failed: %w", err)
	}
	if lat.Valid {
		p.Location = &models.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	p.Category = models.PhotoCategory(category)
	if size.Valid {
		p.FileSize = &size.Int64
	}
	p.Synced = synced == 1
	if syncedAt.Valid {
		p.SyncedAt = &syncedAt.Int64
	}
	return &p, nil
}
