// Package models defines the field records persisted in the local store and
// the payload types carried by them.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MeasurementType classifies a field measurement.
type MeasurementType string

const (
	MeasurementBiomass MeasurementType = "biomass"
	MeasurementSoil    MeasurementType = "soil"
	MeasurementWater   MeasurementType = "water"
	MeasurementSpecies MeasurementType = "species"
)

var ErrUnknownMeasurementType = errors.New("unknown measurement type")

// Location is a GPS fix taken at capture time.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// HealthStatus grades an observed specimen.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// Payload is the kind-specific portion of a measurement. Concrete payloads
// are plain structs; the storage layer sees them only as serialized bytes.
type Payload interface {
	Type() MeasurementType
}

// Biomass records vegetation structure in a sample plot.
type Biomass struct {
	TreeCount       int     `json:"treeCount"`
	AverageHeight   float64 `json:"averageHeight"`
	AverageDiameter float64 `json:"averageDiameter"`
	CanopyCover     float64 `json:"canopyCover"`
}

func (Biomass) Type() MeasurementType { return MeasurementBiomass }

// Soil records a soil core sample.
type Soil struct {
	SoilDepth     float64 `json:"soilDepth"`
	CarbonContent float64 `json:"carbonContent"`
	PH            float64 `json:"ph"`
	Salinity      float64 `json:"salinity"`
}

func (Soil) Type() MeasurementType { return MeasurementSoil }

// Water records a water-column reading.
type Water struct {
	WaterDepth  float64 `json:"waterDepth"`
	Temperature float64 `json:"temperature"`
	Turbidity   float64 `json:"turbidity"`
}

func (Water) Type() MeasurementType { return MeasurementWater }

// Species records a species sighting.
type Species struct {
	SpeciesName string       `json:"speciesName"`
	Abundance   int          `json:"abundance"`
	Health      HealthStatus `json:"healthStatus"`
}

func (Species) Type() MeasurementType { return MeasurementSpecies }

// EncodePayload serializes a payload for storage, returning its kind tag
// alongside the canonical JSON bytes.
func EncodePayload(p Payload) (MeasurementType, []byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", nil, err
	}
	return p.Type(), b, nil
}

// DecodePayload reverses EncodePayload. The switch is exhaustive over the
// known measurement types; anything else is a schema drift error.
func DecodePayload(t MeasurementType, raw []byte) (Payload, error) {
	switch t {
	case MeasurementBiomass:
		var v Biomass
		return v, json.Unmarshal(raw, &v)
	case MeasurementSoil:
		var v Soil
		return v, json.Unmarshal(raw, &v)
	case MeasurementWater:
		var v Water
		return v, json.Unmarshal(raw, &v)
	case MeasurementSpecies:
		var v Species
		return v, json.Unmarshal(raw, &v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeasurementType, t)
	}
}

// Measurement is one field observation. It is append/flag-only: after
// insertion the only mutation is flipping Synced/SyncedAt.
type Measurement struct {
	// ID is a client-generated, globally unique identifier.
	ID string

	// ProjectID links the observation to its monitoring project.
	ProjectID string

	// Timestamp is the capture time in epoch milliseconds.
	Timestamp int64

	// Location is the GPS fix at capture time.
	Location Location

	// Type tags the Payload blob.
	Type MeasurementType

	// Payload holds the kind-specific fields, serialized via EncodePayload.
	Payload []byte

	// Notes is free-form text entered by the collector.
	Notes string

	// CollectorID identifies the device/user that captured the record.
	CollectorID string

	// Synced is true once the record has been delivered to the content store.
	Synced bool

	// SyncedAt is the delivery time in epoch milliseconds; set iff Synced.
	SyncedAt *int64

	// CreatedAt is the local insertion time in epoch milliseconds.
	CreatedAt int64
}

// measurementExport is the canonical document uploaded to the content store.
type measurementExport struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	Timestamp   int64           `json:"timestamp"`
	Location    Location        `json:"location"`
	Type        MeasurementType `json:"measurementType"`
	Data        json.RawMessage `json:"data"`
	Notes       string          `json:"notes,omitempty"`
	CollectorID string          `json:"collectorId,omitempty"`
}

// MarshalExport serializes the measurement into the canonical upload form.
func (m *Measurement) MarshalExport() ([]byte, error) {
	doc := measurementExport{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Timestamp:   m.Timestamp,
		Location:    m.Location,
		Type:        m.Type,
		Data:        json.RawMessage(m.Payload),
		Notes:       m.Notes,
		CollectorID: m.CollectorID,
	}
	return json.Marshal(doc)
}
