package measurements

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

func (r *SQLiteRepository) Insert(ctx context.Context, m *models.Measurement) error {
	query := `INSERT INTO measurements (
			id, project_id, timestamp, latitude, longitude, altitude, accuracy,
			measurement_type, data, notes, collector_id, synced, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ProjectID, m.Timestamp,
		m.Location.Latitude, m.Location.Longitude,
		nullFloat(m.Location.Altitude), nullFloat(m.Location.Accuracy),
		string(m.Type), string(m.Payload), m.Notes, m.CollectorID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert measurement: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, projectID string) ([]models.Measurement, error) {
	query := `SELECT ` + columns + ` FROM measurements ORDER BY timestamp DESC`
	args := []any{}
	if projectID != "" {
		query = `SELECT ` + columns + ` FROM measurements WHERE project_id = ? ORDER BY timestamp DESC`
		args = append(args, projectID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select measurements: %w", err)
	}
	defer rows.Close()

	var result []models.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*models.Measurement, error) {
	query := `SELECT ` + columns + ` FROM measurements WHERE synced = 0 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select unsynced measurements: %w", err)
	}
	defer rows.Close()

	var result []*models.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, syncedAt int64) error {
	// synced = 0 guard makes repeated calls no-ops and preserves the
	// original synced_at.
	query := `UPDATE measurements SET synced = 1, synced_at = ? WHERE id = ? AND synced = 0`
	if _, err := r.db.ExecContext(ctx, query, syncedAt, id); err != nil {
		return fmt.Errorf("failed to mark measurement synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count measurements: %w", err)
	}
	return n, nil
}

const columns = `id, project_id, timestamp, latitude, longitude, altitude, accuracy,
	measurement_type, data, notes, collector_id, synced, synced_at, created_at`

func scanMeasurement(rows *sql.Rows) (*models.Measurement, error) {
	var (
		m                  models.Measurement
		altitude, accuracy sql.NullFloat64
		mtype, data        string
		synced             int
		syncedAt           sql.NullInt64
	)
	if err := rows.Scan(&m.ID, &m.ProjectID, &m.Timestamp,
		&m.Location.Latitude, &m.Location.Longitude, &altitude, &accuracy,
		&mtype, &data, &m.Notes, &m.CollectorID, &synced, &syncedAt, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("measurement scan failed: %w", err)
	}
	if altitude.Valid {
		m.Location.Altitude = &altitude.Float64
	}
	if accuracy.Valid {
		m.Location.Accuracy = &accuracy.Float64
	}
	m.Type = models.MeasurementType(mtype)
	m.Payload = []byte(data)
	m.Synced = synced == 1
	if syncedAt.Valid {
		m.SyncedAt = &syncedAt.Int64
	}
	return &m, nil
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
