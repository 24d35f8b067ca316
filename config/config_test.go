package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, LockBackendLocal, cfg.Lock.Backend)
	assert.Equal(t, 5*time.Second, cfg.Lock.WaitTimeout)
	assert.Equal(t, QueueBackendMemory, cfg.Queue.Backend)
	assert.Equal(t, 10, cfg.RSVP.MaxPlusOnes)
	assert.Same(t, AppConfig, cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOCK_BACKEND", "redis")
	t.Setenv("LOCK_WAIT_TIMEOUT", "750ms")
	t.Setenv("RSVP_MAX_PLUS_ONES", "4")
	t.Setenv("TICKET_QR_SIGNING_SECRET", "s3cret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, LockBackendRedis, cfg.Lock.Backend)
	assert.Equal(t, 750*time.Millisecond, cfg.Lock.WaitTimeout)
	assert.Equal(t, 4, cfg.RSVP.MaxPlusOnes)
	assert.Equal(t, "s3cret", cfg.Ticket.QRSigningSecret)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: \"9090\"\nqueue:\n  backend: redis\n  max_retry: 7\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("QUEUE_MAX_RETRY", "9")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, QueueBackendRedis, cfg.Queue.Backend)
	// 環境變數優先於設定檔
	assert.Equal(t, 9, cfg.Queue.MaxRetry)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTestConfig(t *testing.T) {
	cfg := LoadTestConfig()
	assert.Equal(t, "5433", cfg.Database.Port)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, 1, cfg.Redis.DB)
}
