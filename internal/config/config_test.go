package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/transposer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transposer.yaml")
	doc := `
input_dir: pieces
workers: 8
redis:
  addr: redis:6379
  ttl: 1h
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pieces", cfg.InputDir)
	assert.Equal(t, "outputs", cfg.OutputDir, "unset keys keep defaults")
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "transposer:result:", cfg.Redis.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transposer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fail_fast": true, "http": {"addr": ":9090"}}`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transposer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wrokers: 3\n"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
