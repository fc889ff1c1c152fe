package projects

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE projects (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  ecosystem_type TEXT NOT NULL,
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  radius_m REAL NOT NULL DEFAULT 100,
  status TEXT NOT NULL DEFAULT 'active',
  created_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestInsertListGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	p := &models.Project{
		ID:           "pr1",
		Name:         "Komodo mangroves",
		Description:  "restoration site",
		Ecosystem:    models.EcosystemMangrove,
		Location:     models.Location{Latitude: -8.55, Longitude: 119.48},
		RadiusMeters: 250,
		Status:       models.ProjectActive,
		CreatedAt:    10,
	}
	require.NoError(t, r.Insert(ctx, p))
	require.NoError(t, r.Insert(ctx, &models.Project{
		ID: "pr2", Name: "Seagrass south", Ecosystem: models.EcosystemSeagrass,
		Location: models.Location{Latitude: -8.6, Longitude: 119.5},
		Status:   models.ProjectPlanning, CreatedAt: 20,
	}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "pr2", list[0].ID, "newest first")

	got, err := r.GetByID(ctx, "pr1")
	require.NoError(t, err)
	assert.Equal(t, models.EcosystemMangrove, got.Ecosystem)
	assert.Equal(t, 250.0, got.RadiusMeters)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}
