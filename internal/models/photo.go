package models

import "encoding/json"

// PhotoCategory classifies a captured photo.
type PhotoCategory string

const (
	PhotoField     PhotoCategory = "field"
	PhotoEquipment PhotoCategory = "equipment"
	PhotoSpecies   PhotoCategory = "species"
	PhotoDamage    PhotoCategory = "damage"
	PhotoGeneral   PhotoCategory = "general"
)

// Photo is the metadata for one captured image. The image file itself lives
// in device storage and is referenced by URI.
type Photo struct {
	ID          string
	URI         string
	Timestamp   int64
	Location    *Location
	Category    PhotoCategory
	Description string
	FileSize    *int64
	Synced      bool
	SyncedAt    *int64
	CreatedAt   int64
}

type photoExport struct {
	ID          string        `json:"id"`
	Timestamp   int64         `json:"timestamp"`
	Location    *Location     `json:"location,omitempty"`
	Category    PhotoCategory `json:"type"`
	Description string        `json:"description,omitempty"`
	FileSize    *int64        `json:"fileSize,omitempty"`
	URI         string        `json:"uri"`
}

// MarshalExport serializes the photo metadata into the canonical upload form.
func (p *Photo) MarshalExport() ([]byte, error) {
	doc := photoExport{
		ID:          p.ID,
		Timestamp:   p.Timestamp,
		Location:    p.Location,
		Category:    p.Category,
		Description: p.Description,
		FileSize:    p.FileSize,
		URI:         p.URI,
	}
	return json.Marshal(doc)
}
