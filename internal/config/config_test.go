package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NEXT_PUBLIC_HOST", "NEXT_PUBLIC_WS_URL", "NEXT_PUBLIC_SITE_URL", "SELLER_ENV", "SELLER_STORAGE_PATH", "SELLER_API_TIMEOUT", "CONFIG_PATH"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBaseURL())
	assert.Equal(t, 3000*time.Millisecond, cfg.ReconnectDelay())
	assert.Equal(t, 5000*time.Millisecond, cfg.TicketRetryDelay())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  host: https://api.negromart.com/
  prefix: /api/v1
ws:
  url: wss://api.negromart.com
  reconnect_delay_ms: 1000
storage:
  type: memory
`), 0o600))
	t.Setenv("NEXT_PUBLIC_WS_URL", "wss://ws.negromart.com")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.negromart.com/api/v1", cfg.APIBaseURL())
	assert.Equal(t, "wss://ws.negromart.com", cfg.WS.URL)
	assert.Equal(t, time.Second, cfg.ReconnectDelay())
	assert.Equal(t, DefaultTicketRetryDelay, cfg.TicketRetryDelay())
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestValidate_RejectsHTTPSocketURL(t *testing.T) {
	cfg := Defaults()
	cfg.WS.URL = "https://api.negromart.com"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Storage.Type = "s3"
	assert.Error(t, cfg.Validate())
}

func TestUploadPolicy_Allows(t *testing.T) {
	p := Defaults().UploadPolicy()

	assert.True(t, p.Allows("application/pdf", 1024))
	assert.False(t, p.Allows("application/zip", 1024))
	assert.False(t, p.Allows("image/png", p.MaxSize+1))
	assert.True(t, UploadPolicy{}.Allows("application/zip", 1<<30))
}
