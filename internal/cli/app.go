// Package cli is the interactive shell for capturing field records and
// driving sync against the remote registry.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/config"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/bluecarbonlabs/fieldsync/internal/services"
	"github.com/bluecarbonlabs/fieldsync/internal/store"
	"github.com/bluecarbonlabs/fieldsync/internal/syncer"
)

type App struct {
	config  *config.Config
	records services.RecordService
	syncer  *syncer.Orchestrator
	store   *store.Store
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config, records services.RecordService, orch *syncer.Orchestrator, st *store.Store, log logging.Logger) *App {
	return &App{
		config:  c,
		records: records,
		syncer:  orch,
		store:   st,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	a.Root(ctx)
}

// StartOnlineStatusWatcher re-probes reachability on a fixed interval so the
// prompt reflects connectivity without the user asking for it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			a.syncer.CheckOnline(probeCtx)
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
