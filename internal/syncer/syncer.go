// Package syncer drains the unsynced index against the remote content store
// and ledger, and publishes aggregate sync state for the UI.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/bluecarbonlabs/fieldsync/internal/models"
	"github.com/bluecarbonlabs/fieldsync/internal/netx"
	"github.com/bluecarbonlabs/fieldsync/internal/remote"
	"github.com/bluecarbonlabs/fieldsync/internal/store"
)

// Orchestrator runs sync passes. At most one pass runs at a time per
// process; a pass works through a snapshot of the unsynced index taken at
// its start, sequentially, oldest record first.
type Orchestrator struct {
	store   *store.Store
	content remote.ContentStore
	ledger  remote.Ledger
	probe   netx.Probe
	status  *StatusPublisher
	log     logging.Logger

	running atomic.Bool
	now     func() time.Time
}

// New wires an orchestrator. The process owns the remote clients; the
// orchestrator only borrows them.
func New(s *store.Store, content remote.ContentStore, ledger remote.Ledger,
	probe netx.Probe, status *StatusPublisher, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		store:   s,
		content: content,
		ledger:  ledger,
		probe:   probe,
		status:  status,
		log:     log,
		now:     time.Now,
	}
}

// Status returns the publisher so callers can read and subscribe.
func (o *Orchestrator) Status() *StatusPublisher { return o.status }

// CheckOnline probes connectivity and records the result in the status.
func (o *Orchestrator) CheckOnline(ctx context.Context) bool {
	online := o.probe.Online(ctx)
	o.status.update(func(st *models.SyncStatus) { st.Online = online })
	return online
}

// RefreshCounts recomputes the pending counters from the unsynced index.
func (o *Orchestrator) RefreshCounts(ctx context.Context) error {
	pending, err := o.store.ListUnsynced(ctx)
	if err != nil {
		o.log.Error(ctx, "loading pending counts failed", "error", err)
		return err
	}
	o.publishCounts(pending)
	return nil
}

func (o *Orchestrator) publishCounts(pending []models.PendingRecord) {
	var nm, np int
	for _, r := range pending {
		if r.Kind == models.KindMeasurement {
			nm++
		} else {
			np++
		}
	}
	o.status.update(func(st *models.SyncStatus) {
		st.PendingMeasurements = nm
		st.PendingPhotos = np
	})
}

// Sync runs one pass over the unsynced records.
//
// A second call while a pass is running returns immediately with no effect.
// When offline it fails fast with common.ErrOffline, touching no record. A
// failed record is skipped, left pending for the next pass, and reported via
// SyncStatus.SyncError; Sync itself only returns an error when at least one
// record was attempted and none succeeded.
func (o *Orchestrator) Sync(ctx context.Context) error {
	if !o.running.CompareAndSwap(false, true) {
		return nil
	}
	defer o.running.Store(false)

	if !o.CheckOnline(ctx) {
		return common.ErrOffline
	}

	o.status.update(func(st *models.SyncStatus) {
		st.SyncInProgress = true
		st.SyncError = ""
	})
	defer o.status.update(func(st *models.SyncStatus) { st.SyncInProgress = false })

	// a snapshot: records created during the pass wait for the next one
	pending, err := o.store.ListUnsynced(ctx)
	if err != nil {
		o.status.update(func(st *models.SyncStatus) { st.SyncError = err.Error() })
		return err
	}

	var synced int
	var lastErr error
	for _, rec := range pending {
		if err := o.syncRecord(ctx, rec); err != nil {
			lastErr = err
			o.log.Error(ctx, "record sync failed", "kind", rec.Kind, "id", rec.ID(), "error", err)
			continue
		}
		synced++
	}

	if after, err := o.store.ListUnsynced(ctx); err != nil {
		o.log.Error(ctx, "recomputing pending counts failed", "error", err)
	} else {
		o.publishCounts(after)
	}

	o.status.update(func(st *models.SyncStatus) {
		if synced > 0 {
			now := o.now()
			st.LastSync = &now
		}
		if lastErr != nil {
			st.SyncError = lastErr.Error()
		}
	})

	o.log.Info(ctx, "sync pass finished", "attempted", len(pending), "synced", synced)

	if lastErr != nil && synced == 0 {
		return fmt.Errorf("%w: %w", common.ErrNothingSynced, lastErr)
	}
	return nil
}

// syncRecord delivers one record: upload, best-effort registration, mark
// synced. MarkSynced is the durability boundary: once it returns the
// record never goes back to pending.
func (o *Orchestrator) syncRecord(ctx context.Context, rec models.PendingRecord) error {
	payload, err := rec.MarshalExport()
	if err != nil {
		return fmt.Errorf("%w: serialize: %w", common.ErrUpload, err)
	}

	cid, err := o.content.Upload(ctx, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUpload, err)
	}

	// "synced" means delivered to the content store; registration failures
	// are logged for out-of-band recovery and never block the flag
	if err := o.register(ctx, rec, cid); err != nil {
		o.log.Warn(ctx, "registration failed", "kind", rec.Kind, "id", rec.ID(), "cid", cid, "error", err)
	}

	return o.store.MarkSynced(ctx, rec.Kind, rec.ID())
}

func (o *Orchestrator) register(ctx context.Context, rec models.PendingRecord, cid remote.ContentID) error {
	_, err := o.ledger.Register(ctx, rec.ExternalID(), cid)
	if errors.Is(err, common.ErrConflict) {
		// already registered: fine for our purposes
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRegistration, err)
	}
	return nil
}

// SyncOne delivers a single record outside a pass, for sync-after-capture
// flows. Unlike Sync it surfaces every error directly, and returns the
// content id on success.
func (o *Orchestrator) SyncOne(ctx context.Context, rec models.PendingRecord) (remote.ContentID, error) {
	if !o.CheckOnline(ctx) {
		return "", common.ErrOffline
	}

	payload, err := rec.MarshalExport()
	if err != nil {
		return "", fmt.Errorf("%w: serialize: %w", common.ErrUpload, err)
	}
	cid, err := o.content.Upload(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUpload, err)
	}
	if err := o.register(ctx, rec, cid); err != nil {
		o.log.Warn(ctx, "registration failed", "kind", rec.Kind, "id", rec.ID(), "cid", cid, "error", err)
	}
	if err := o.store.MarkSynced(ctx, rec.Kind, rec.ID()); err != nil {
		return "", err
	}

	_ = o.RefreshCounts(ctx)
	return cid, nil
}

// ClearHistory resets lastSync and the last error without touching any
// persisted record.
func (o *Orchestrator) ClearHistory(ctx context.Context) {
	o.status.update(func(st *models.SyncStatus) {
		st.LastSync = nil
		st.SyncError = ""
	})
	_ = o.RefreshCounts(ctx)
}
