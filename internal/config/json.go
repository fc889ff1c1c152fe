package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/flagx"
	"github.com/bluecarbonlabs/fieldsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath        string         `json:"database_path"`
	ContentEndpoint     string         `json:"content_endpoint"`
	ContentAccessKey    string         `json:"content_access_key"`
	ContentSecretKey    string         `json:"content_secret_key"`
	ContentBucket       string         `json:"content_bucket"`
	ContentRegion       string         `json:"content_region"`
	ContentUseSSL       bool           `json:"content_use_ssl"`
	MaxPayloadBytes     int64          `json:"max_payload_bytes"`
	LedgerRPCURL        string         `json:"ledger_rpc_url"`
	LedgerProgramID     string         `json:"ledger_program_id"`
	ProbeURL            string         `json:"probe_url"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	CollectorID         string         `json:"collector_id"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags();
// when neither is present no JSON is loaded. Read or unmarshal errors panic
// (caller should recover if desired). Empty JSON fields keep the value the
// earlier stages produced, so a partial file only overrides what it names.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ContentEndpoint != "" {
		cfg.ContentEndpoint = jc.ContentEndpoint
	}
	if jc.ContentAccessKey != "" {
		cfg.ContentAccessKey = jc.ContentAccessKey
	}
	if jc.ContentSecretKey != "" {
		cfg.ContentSecretKey = jc.ContentSecretKey
	}
	if jc.ContentBucket != "" {
		cfg.ContentBucket = jc.ContentBucket
	}
	if jc.ContentRegion != "" {
		cfg.ContentRegion = jc.ContentRegion
	}
	cfg.ContentUseSSL = jc.ContentUseSSL
	if jc.MaxPayloadBytes > 0 {
		cfg.MaxPayloadBytes = jc.MaxPayloadBytes
	}
	if jc.LedgerRPCURL != "" {
		cfg.LedgerRPCURL = jc.LedgerRPCURL
	}
	if jc.LedgerProgramID != "" {
		cfg.LedgerProgramID = jc.LedgerProgramID
	}
	if jc.ProbeURL != "" {
		cfg.ProbeURL = jc.ProbeURL
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.CollectorID != "" {
		cfg.CollectorID = jc.CollectorID
	}
}
