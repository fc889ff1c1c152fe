package syncer

import (
	"sync"

	"github.com/bluecarbonlabs/fieldsync/internal/models"
)

// StatusPublisher holds the current SyncStatus and fans updates out to
// subscribers. The orchestrator is the sole writer; readers tolerate the
// value changing between reads.
type StatusPublisher struct {
	mu     sync.RWMutex
	status models.SyncStatus
	subs   map[chan models.SyncStatus]struct{}
}

// NewStatusPublisher returns a publisher with a zero status.
func NewStatusPublisher() *StatusPublisher {
	return &StatusPublisher{subs: make(map[chan models.SyncStatus]struct{})}
}

// Get returns a copy of the current status.
func (p *StatusPublisher) Get() models.SyncStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Subscribe registers a listener. The channel has capacity one and always
// carries the latest snapshot: a slow subscriber skips intermediate states
// instead of blocking the publisher.
func (p *StatusPublisher) Subscribe() chan models.SyncStatus {
	ch := make(chan models.SyncStatus, 1)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener registered with Subscribe.
func (p *StatusPublisher) Unsubscribe(ch chan models.SyncStatus) {
	p.mu.Lock()
	delete(p.subs, ch)
	p.mu.Unlock()
}

// update applies fn to the status under the lock and broadcasts the result.
func (p *StatusPublisher) update(fn func(*models.SyncStatus)) {
	p.mu.Lock()
	fn(&p.status)
	st := p.status
	for ch := range p.subs {
		select {
		case ch <- st:
		default:
			// replace the stale snapshot with the latest one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
	p.mu.Unlock()
}
