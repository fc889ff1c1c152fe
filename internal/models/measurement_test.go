package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePayload(t *testing.T) {
	tests := []struct {
		name     string
		payload  Payload
		wantType MeasurementType
	}{
		{"biomass", Biomass{TreeCount: 42, AverageHeight: 6.5, AverageDiameter: 0.3, CanopyCover: 0.8}, MeasurementBiomass},
		{"soil", Soil{SoilDepth: 1.2, CarbonContent: 4.1, PH: 6.8, Salinity: 30}, MeasurementSoil},
		{"water", Water{WaterDepth: 2.4, Temperature: 18.5, Turbidity: 3.1}, MeasurementWater},
		{"species", Species{SpeciesName: "Avicennia marina", Abundance: 12, Health: HealthGood}, MeasurementSpecies},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ, raw, err := EncodePayload(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, typ)

			got, err := DecodePayload(typ, raw)
			require.NoError(t, err)
			assert.Equal(t, tc.payload, got)
		})
	}
}

func TestDecodePayload_UnknownType(t *testing.T) {
	_, err := DecodePayload("sediment", []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownMeasurementType)
}

func TestMeasurement_MarshalExport_EmbedsPayload(t *testing.T) {
	typ, raw, err := EncodePayload(Soil{SoilDepth: 0.5, CarbonContent: 2.2, PH: 7.1, Salinity: 28})
	require.NoError(t, err)

	alt := 3.0
	m := &Measurement{
		ID:          "m1",
		ProjectID:   "p1",
		Timestamp:   1700000000000,
		Location:    Location{Latitude: -8.5, Longitude: 119.3, Altitude: &alt},
		Type:        typ,
		Payload:     raw,
		Notes:       "north transect",
		CollectorID: "device-7",
	}

	b, err := m.MarshalExport()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "m1", doc["id"])
	assert.Equal(t, "p1", doc["projectId"])
	assert.Equal(t, "soil", doc["measurementType"])
	assert.Equal(t, "north transect", doc["notes"])

	data, ok := doc["data"].(map[string]any)
	require.True(t, ok, "data must be an embedded object, not a string")
	assert.Equal(t, 0.5, data["soilDepth"])
}

func TestPhoto_MarshalExport_OmitsEmptyLocation(t *testing.T) {
	p := &Photo{ID: "ph1", URI: "file:///dcim/1.jpg", Timestamp: 1700000000000, Category: PhotoGeneral}
	b, err := p.MarshalExport()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "ph1", doc["id"])
	assert.Equal(t, "general", doc["type"])
	_, hasLoc := doc["location"]
	assert.False(t, hasLoc)
}
