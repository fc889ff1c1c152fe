package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "fieldsync.db", c.DatabasePath)
	assert.Equal(t, "fieldsync-records", c.ContentBucket)
	assert.Equal(t, int64(1<<20), c.MaxPayloadBytes)
	assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "fieldsync.db", cfg.DatabasePath)
	assert.Equal(t, "http://127.0.0.1:8899", cfg.LedgerRPCURL)
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
}
