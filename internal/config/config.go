// Package config loads runtime settings for the fieldsync CLI.
//
// Sources are applied in order: built-in defaults, then an optional JSON file
// (-c/-config), then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the fieldsync CLI.
//
// Units: OnlineCheckInterval is a time.Duration; MaxPayloadBytes is bytes.
type Config struct {
	// DatabasePath is the SQLite file holding the local record store.
	DatabasePath string

	// Content store (S3-compatible) settings.
	ContentEndpoint  string
	ContentAccessKey string
	ContentSecretKey string
	ContentBucket    string
	ContentRegion    string
	ContentUseSSL    bool
	MaxPayloadBytes  int64

	// Registry ledger JSON-RPC settings.
	LedgerRPCURL    string
	LedgerProgramID string

	// ProbeURL is the endpoint used for reachability checks.
	ProbeURL string

	// OnlineCheckInterval is how often the CLI probes reachability in the
	// background.
	OnlineCheckInterval time.Duration

	// CollectorID tags measurements captured on this device.
	CollectorID string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "fieldsync.db"
	c.ContentEndpoint = "127.0.0.1:9000"
	c.ContentAccessKey = "minioadmin"
	c.ContentSecretKey = "minioadmin"
	c.ContentBucket = "fieldsync-records"
	c.ContentRegion = "us-east-1"
	c.ContentUseSSL = false
	c.MaxPayloadBytes = 1 << 20
	c.LedgerRPCURL = "http://127.0.0.1:8899"
	c.LedgerProgramID = "CarbonRegistry11111111111111111111111111111"
	c.ProbeURL = "http://127.0.0.1:9000/minio/health/live"
	c.OnlineCheckInterval = 10 * time.Second
	c.CollectorID = "field-device"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
