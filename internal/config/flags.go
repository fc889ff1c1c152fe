package config

import (
	"flag"
	"os"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local SQLite database
//	-e string   content store endpoint (host:port)
//	-b string   content store bucket
//	-r string   ledger JSON-RPC URL
//	-p string   reachability probe URL
//	-u string   collector id for captured measurements
//	-i int      online check interval in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-b", "-r", "-p", "-u", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.ContentEndpoint, "e", cfg.ContentEndpoint, "content store endpoint")
	fs.StringVar(&cfg.ContentBucket, "b", cfg.ContentBucket, "content store bucket")
	fs.StringVar(&cfg.LedgerRPCURL, "r", cfg.LedgerRPCURL, "ledger JSON-RPC URL")
	fs.StringVar(&cfg.ProbeURL, "p", cfg.ProbeURL, "reachability probe URL")
	fs.StringVar(&cfg.CollectorID, "u", cfg.CollectorID, "collector id")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
