package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novapool/internal/bufferpool"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novapool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app_name: bench
storage:
  backend: leveldb
  workdir: /tmp/np
buffer_pool:
  pool_size: 64
  replacer: clock
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "bench", cfg.AppName)
	require.Equal(t, BackendLevelDB, cfg.Storage.Backend)
	require.Equal(t, "/tmp/np", cfg.Storage.Workdir)
	require.Equal(t, "pages", cfg.Storage.Base)
	require.Equal(t, 64, cfg.BufferPool.PoolSize)
	require.Equal(t, bufferpool.PolicyClock, cfg.Policy())

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "buffer_pool:\n  pool_size: 16\n")
	t.Setenv("NOVAPOOL_BUFFER_POOL_POOL_SIZE", "32")
	t.Setenv("NOVAPOOL_STORAGE_BACKEND", "memory")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 32, cfg.BufferPool.PoolSize)
	require.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	require.Equal(t, BackendFile, cfg.Storage.Backend)
	require.Equal(t, bufferpool.DefaultCapacity, cfg.BufferPool.PoolSize)
	require.Equal(t, bufferpool.PolicyLRU, cfg.Policy())
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]string{
		"backend":   "storage:\n  backend: s3\n",
		"pool size": "buffer_pool:\n  pool_size: 0\n",
		"replacer":  "buffer_pool:\n  replacer: arc\n",
		"log level": "log:\n  level: loud\n",
		"workdir":   "storage:\n  workdir: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
