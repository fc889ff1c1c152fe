package models

import "time"

// SyncStatus is the process-lifetime sync state shown to the user. It is
// derived, never persisted; pending counts are recomputed from the unsynced
// index rather than maintained incrementally.
type SyncStatus struct {
	Online              bool
	LastSync            *time.Time
	PendingMeasurements int
	PendingPhotos       int
	SyncInProgress      bool
	SyncError           string
}
