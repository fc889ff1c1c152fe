package models

// RecordKind tags the two syncable record kinds.
type RecordKind string

const (
	KindMeasurement RecordKind = "measurement"
	KindPhoto       RecordKind = "photo"
)

// PendingRecord is one unsynced record pulled from the unsynced index,
// tagged with its kind. Exactly one of Measurement/Photo is non-nil.
type PendingRecord struct {
	Kind        RecordKind
	Measurement *Measurement
	Photo       *Photo
}

// ID returns the wrapped record's identifier.
func (r PendingRecord) ID() string {
	if r.Kind == KindMeasurement {
		return r.Measurement.ID
	}
	return r.Photo.ID
}

// CreatedAt returns the wrapped record's local insertion time.
func (r PendingRecord) CreatedAt() int64 {
	if r.Kind == KindMeasurement {
		return r.Measurement.CreatedAt
	}
	return r.Photo.CreatedAt
}

// MarshalExport serializes the wrapped record's canonical upload document.
func (r PendingRecord) MarshalExport() ([]byte, error) {
	if r.Kind == KindMeasurement {
		return r.Measurement.MarshalExport()
	}
	return r.Photo.MarshalExport()
}

// ExternalID is the identifier registered on the ledger: the owning project
// for measurements, the photo's own id otherwise.
func (r PendingRecord) ExternalID() string {
	if r.Kind == KindMeasurement {
		return r.Measurement.ProjectID
	}
	return r.Photo.ID
}
