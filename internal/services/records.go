// Package services implements the capture flows: it assigns ids and
// timestamps to new records and hands them to the local store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bluecarbonlabs/fieldsync/internal/models"
	"github.com/bluecarbonlabs/fieldsync/internal/store"
)

var (
	ErrMissingProject = errors.New("measurement requires a project id")
	ErrMissingURI     = errors.New("photo requires a file uri")
	ErrMissingName    = errors.New("project requires a name")
)

// RecordService is the capture surface used by the CLI.
type RecordService interface {
	AddMeasurement(ctx context.Context, projectID string, loc models.Location, payload models.Payload, notes string) (*models.Measurement, error)
	AddPhoto(ctx context.Context, uri string, category models.PhotoCategory, loc *models.Location, description string) (*models.Photo, error)
	AddProject(ctx context.Context, p models.Project) (*models.Project, error)
	ListMeasurements(ctx context.Context, projectID string) ([]models.Measurement, error)
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
}

type recordService struct {
	store       *store.Store
	collectorID string
	now         func() time.Time
}

// NewRecordService wires a capture service. collectorID tags every
// measurement this device produces.
func NewRecordService(s *store.Store, collectorID string) RecordService {
	return &recordService{store: s, collectorID: collectorID, now: time.Now}
}

func (s *recordService) AddMeasurement(ctx context.Context, projectID string, loc models.Location, payload models.Payload, notes string) (*models.Measurement, error) {
	if projectID == "" {
		return nil, ErrMissingProject
	}

	typ, raw, err := models.EncodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	now := s.now().UnixMilli()
	m := &models.Measurement{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Timestamp:   now,
		Location:    loc,
		Type:        typ,
		Payload:     raw,
		Notes:       notes,
		CollectorID: s.collectorID,
		CreatedAt:   now,
	}

	if err := s.store.PutMeasurement(ctx, m); err != nil {
		return nil, fmt.Errorf("saving measurement: %w", err)
	}
	return m, nil
}

func (s *recordService) AddPhoto(ctx context.Context, uri string, category models.PhotoCategory, loc *models.Location, description string) (*models.Photo, error) {
	if uri == "" {
		return nil, ErrMissingURI
	}
	if category == "" {
		category = models.PhotoGeneral
	}

	now := s.now().UnixMilli()
	p := &models.Photo{
		ID:          uuid.NewString(),
		URI:         uri,
		Timestamp:   now,
		Location:    loc,
		Category:    category,
		Description: description,
		CreatedAt:   now,
	}

	if err := s.store.PutPhoto(ctx, p); err != nil {
		return nil, fmt.Errorf("saving photo: %w", err)
	}
	return p, nil
}

func (s *recordService) AddProject(ctx context.Context, p models.Project) (*models.Project, error) {
	if p.Name == "" {
		return nil, ErrMissingName
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}
	p.CreatedAt = s.now().UnixMilli()

	if err := s.store.PutProject(ctx, &p); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}
	return &p, nil
}

func (s *recordService) ListMeasurements(ctx context.Context, projectID string) ([]models.Measurement, error) {
	return s.store.ListMeasurements(ctx, projectID)
}

func (s *recordService) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	return s.store.ListPhotos(ctx)
}

func (s *recordService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *recordService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.store.GetProject(ctx, id)
}
