package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, data string) string {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0600))
	return p
}

func TestLoad(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)

		lvl, err := cfg.Logger.ZapLevel()
		require.NoError(t, err)
		require.Equal(t, zapcore.InfoLevel, lvl)
	})

	t.Run("file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
Logger:
  Level: debug
Ledger:
  DB:
    Type: leveldb
    LevelDBOptions:
      DataDirectoryPath: /tmp/token
  InitGuard: true
RPC:
  Endpoint: http://localhost:30333
  Contract: 0x0102030405060708090a0b0c0d0e0f1011121314
  RequestTimeout: 1m
Metrics:
  PushGateway: http://localhost:9091
`))
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.Logger.Level)
		require.Equal(t, dbconfig.LevelDB, cfg.Ledger.DB.Type)
		require.Equal(t, "/tmp/token", cfg.Ledger.DB.LevelDBOptions.DataDirectoryPath)
		require.True(t, cfg.Ledger.InitGuard)
		require.Equal(t, "http://localhost:30333", cfg.RPC.Endpoint)
		require.Equal(t, "0x0102030405060708090a0b0c0d0e0f1011121314", cfg.RPC.Contract)
		require.Equal(t, time.Minute, cfg.RPC.RequestTimeout)
		require.Equal(t, "http://localhost:9091", cfg.Metrics.PushGateway)
		// not overridden
		require.Equal(t, defaultTimeout, cfg.RPC.DialTimeout)
		require.Equal(t, defaultMetricsJob, cfg.Metrics.Job)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yml"))
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeConfig(t, "Logger: [}"))
		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	for name, mod := range map[string]func(*Config){
		"log level":    func(c *Config) { c.Logger.Level = "loud" },
		"db type":      func(c *Config) { c.Ledger.DB.Type = "postgres" },
		"bolt path":    func(c *Config) { c.Ledger.DB.BoltDBOptions.FilePath = "" },
		"leveldb path": func(c *Config) { c.Ledger.DB.Type = dbconfig.LevelDB },
		"timeout":      func(c *Config) { c.RPC.DialTimeout = -time.Second },
		"metrics job":  func(c *Config) { c.Metrics.PushGateway, c.Metrics.Job = "http://localhost:9091", "" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mod(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Ledger.DB.Type = dbconfig.InMemoryDB
	require.NoError(t, cfg.Validate())
}
