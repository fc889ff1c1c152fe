// Package store owns the on-device SQLite database: schema migrations and
// the record-store surface used by capture flows and the sync engine.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/dbx"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/bluecarbonlabs/fieldsync/internal/models"
	"github.com/bluecarbonlabs/fieldsync/internal/repositories/measurements"
	"github.com/bluecarbonlabs/fieldsync/internal/repositories/photos"
	"github.com/bluecarbonlabs/fieldsync/internal/repositories/projects"
	"github.com/bluecarbonlabs/fieldsync/internal/store/migrations"
)

// Counts reports per-table totals for storage-usage screens.
type Counts struct {
	Measurements int
	Photos       int
	Projects     int
}

// Store is the durable local record store. All operations fail with
// common.ErrNotInitialized until Open has completed, so startup races
// surface instead of silently dropping writes.
type Store struct {
	db    *sql.DB
	log   logging.Logger
	ready atomic.Bool

	measurements measurements.Repository
	photos       photos.Repository
	projects     projects.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn, migrates the
// schema and returns a ready Store.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	// modernc.org/sqlite allows a single writer; one connection avoids
	// SQLITE_BUSY under concurrent access.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrations: %w", common.ErrStorage, err)
	}

	s := &Store{
		db:           db,
		log:          log,
		measurements: measurements.NewSQLiteRepository(db),
		photos:       photos.NewSQLiteRepository(db),
		projects:     projects.NewSQLiteRepository(db),
	}
	s.ready.Store(true)
	return s, nil
}

// Close marks the store unusable and closes the database.
func (s *Store) Close() error {
	if s == nil || !s.ready.Swap(false) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) guard() error {
	if s == nil || !s.ready.Load() {
		return common.ErrNotInitialized
	}
	return nil
}

// PutMeasurement durably inserts a new measurement with synced=false.
func (s *Store) PutMeasurement(ctx context.Context, m *models.Measurement) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.measurements.Insert(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

// PutPhoto durably inserts a new photo record with synced=false.
func (s *Store) PutPhoto(ctx context.Context, p *models.Photo) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.photos.Insert(ctx, p); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

// PutProject mirrors a registry project locally.
func (s *Store) PutProject(ctx context.Context, p *models.Project) error {
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.projects.Insert(ctx, p); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

// ListMeasurements returns measurements newest-first, optionally filtered by
// project. Read failures degrade to an empty slice so list screens stay up;
// the failure is logged. An uninitialized store still errors.
func (s *Store) ListMeasurements(ctx context.Context, projectID string) ([]models.Measurement, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	list, err := s.measurements.List(ctx, projectID)
	if err != nil {
		s.log.Error(ctx, "listing measurements failed", "error", err)
		return []models.Measurement{}, nil
	}
	if list == nil {
		list = []models.Measurement{}
	}
	return list, nil
}

// ListPhotos returns photo records newest-first, degrading like ListMeasurements.
func (s *Store) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	list, err := s.photos.List(ctx)
	if err != nil {
		s.log.Error(ctx, "listing photos failed", "error", err)
		return []models.Photo{}, nil
	}
	if list == nil {
		list = []models.Photo{}
	}
	return list, nil
}

// ListProjects returns the mirrored projects newest-first.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.projects.List(ctx)
}

// GetProject resolves one mirrored project by id.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

// ListUnsynced is the unsynced index: every measurement and photo with
// synced=false, merged oldest-first by creation time. Ties are broken
// measurement-before-photo, then by id, so two calls with no intervening
// writes return the same order.
func (s *Store) ListUnsynced(ctx context.Context) ([]models.PendingRecord, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	ms, err := s.measurements.ListUnsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	ps, err := s.photos.ListUnsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	merged := make([]models.PendingRecord, 0, len(ms)+len(ps))
	i, j := 0, 0
	for i < len(ms) && j < len(ps) {
		if ms[i].CreatedAt <= ps[j].CreatedAt {
			merged = append(merged, models.PendingRecord{Kind: models.KindMeasurement, Measurement: ms[i]})
			i++
		} else {
			merged = append(merged, models.PendingRecord{Kind: models.KindPhoto, Photo: ps[j]})
			j++
		}
	}
	for ; i < len(ms); i++ {
		merged = append(merged, models.PendingRecord{Kind: models.KindMeasurement, Measurement: ms[i]})
	}
	for ; j < len(ps); j++ {
		merged = append(merged, models.PendingRecord{Kind: models.KindPhoto, Photo: ps[j]})
	}
	return merged, nil
}

// MarkSynced flips the synced flag on one record. Idempotent: marking an
// already-synced id is a no-op.
func (s *Store) MarkSynced(ctx context.Context, kind models.RecordKind, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	syncedAt := time.Now().UnixMilli()
	var err error
	switch kind {
	case models.KindMeasurement:
		err = s.measurements.MarkSynced(ctx, id, syncedAt)
	case models.KindPhoto:
		err = s.photos.MarkSynced(ctx, id, syncedAt)
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

// PurgeSynced irreversibly deletes every synced measurement and photo.
func (s *Store) PurgeSynced(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE synced = 1`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE synced = 1`)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: purge synced: %w", common.ErrStorage, err)
	}
	return nil
}

// PurgeAll irreversibly deletes all measurements, photos and projects.
func (s *Store) PurgeAll(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, q := range []string{
			`DELETE FROM measurements`,
			`DELETE FROM photos`,
			`DELETE FROM projects`,
		} {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: purge all: %w", common.ErrStorage, err)
	}
	return nil
}

// Counts returns per-table totals.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	if err := s.guard(); err != nil {
		return Counts{}, err
	}

	var c Counts
	var err error
	if c.Measurements, err = s.measurements.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if c.Photos, err = s.photos.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if c.Projects, err = s.projects.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return c, nil
}
