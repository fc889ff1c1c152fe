package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/buildinfo"
	"github.com/bluecarbonlabs/fieldsync/internal/cli"
	"github.com/bluecarbonlabs/fieldsync/internal/config"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/bluecarbonlabs/fieldsync/internal/netx"
	"github.com/bluecarbonlabs/fieldsync/internal/remote"
	"github.com/bluecarbonlabs/fieldsync/internal/services"
	"github.com/bluecarbonlabs/fieldsync/internal/store"
	"github.com/bluecarbonlabs/fieldsync/internal/syncer"

	_ "modernc.org/sqlite"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	st, err := store.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("opening local store: %v", err)
	}
	defer st.Close()

	content, err := remote.NewMinioContentStore(remote.MinioOptions{
		Endpoint:        cfg.ContentEndpoint,
		AccessKey:       cfg.ContentAccessKey,
		SecretKey:       cfg.ContentSecretKey,
		UseSSL:          cfg.ContentUseSSL,
		Region:          cfg.ContentRegion,
		Bucket:          cfg.ContentBucket,
		MaxPayloadBytes: cfg.MaxPayloadBytes,
	}, logger)
	if err != nil {
		log.Fatalf("initializing content store: %v", err)
	}

	// best effort: when offline the bucket check fails and sync reports
	// offline instead
	if err := content.EnsureBucket(ctx); err != nil {
		logger.Warn(ctx, "content bucket not verified", "error", err)
	}

	ledger := remote.NewRPCLedger(cfg.LedgerRPCURL, cfg.LedgerProgramID, 10*time.Second, logger)
	probe := netx.NewHTTPProbe(cfg.ProbeURL, 3*time.Second, logger)

	orch := syncer.New(st, content, ledger, probe, syncer.NewStatusPublisher(), logger)
	records := services.NewRecordService(st, cfg.CollectorID)

	app := cli.NewApp(cfg, records, orch, st, logger)
	app.Run(ctx)

}
