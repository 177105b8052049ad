package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5000/api", c.BaseURL)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, "session.db", c.SessionDBPath)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"base_url":        "http://json:1/api",
		"request_timeout": "7s",
	})

	withDotEnv(t, "")
	t.Setenv("GRADEBOOK_BASE_URL", "http://env:1/api")
	t.Setenv("GRADEBOOK_SESSION_DB", "/tmp/env.db")
	t.Setenv("GRADEBOOK_LOG_LEVEL", "warn")

	os.Args = []string{"gradebook", "-c", jsonPath, "-l", "debug"}

	got := LoadConfig()
	want := &Config{
		BaseURL:        "http://json:1/api",
		RequestTimeout: 7 * time.Second,
		SessionDBPath:  "/tmp/env.db",
		LogLevel:       "debug",
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"gradebook"}

	withDotEnv(t, "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}
