package syncer

import (
	"testing"

	"github.com/bluecarbonlabs/fieldsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPublisher_GetReturnsCopy(t *testing.T) {
	p := NewStatusPublisher()
	p.update(func(st *models.SyncStatus) { st.PendingMeasurements = 3 })

	got := p.Get()
	got.PendingMeasurements = 99

	assert.Equal(t, 3, p.Get().PendingMeasurements)
}

func TestStatusPublisher_SubscribeReceivesSnapshots(t *testing.T) {
	p := NewStatusPublisher()
	ch := p.Subscribe()
	defer p.Unsubscribe(ch)

	p.update(func(st *models.SyncStatus) { st.Online = true })

	st := <-ch
	assert.True(t, st.Online)
}

func TestStatusPublisher_SlowSubscriberGetsLatest(t *testing.T) {
	p := NewStatusPublisher()
	ch := p.Subscribe()
	defer p.Unsubscribe(ch)

	// subscriber never drains between updates; only the newest snapshot
	// must remain in the channel
	p.update(func(st *models.SyncStatus) { st.PendingMeasurements = 1 })
	p.update(func(st *models.SyncStatus) { st.PendingMeasurements = 2 })
	p.update(func(st *models.SyncStatus) { st.PendingMeasurements = 3 })

	st := <-ch
	assert.Equal(t, 3, st.PendingMeasurements)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra snapshot: %+v", extra)
	default:
	}
}

func TestStatusPublisher_UnsubscribeStopsDelivery(t *testing.T) {
	p := NewStatusPublisher()
	ch := p.Subscribe()
	p.Unsubscribe(ch)

	p.update(func(st *models.SyncStatus) { st.Online = true })

	select {
	case st, ok := <-ch:
		require.False(t, ok || st.Online, "unsubscribed channel must not receive updates")
	default:
	}
}
