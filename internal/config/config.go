// Package config contains configuration of the token CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config groups all CLI settings.
type Config struct {
	Logger  Logger  `yaml:"Logger"`
	Ledger  Ledger  `yaml:"Ledger"`
	RPC     RPC     `yaml:"RPC"`
	Metrics Metrics `yaml:"Metrics"`
}

// Logger configures CLI logging.
type Logger struct {
	// One of zap levels: debug, info, warn, error.
	Level string `yaml:"Level"`
}

// Ledger configures the local token ledger.
type Ledger struct {
	DB dbconfig.DBConfiguration `yaml:"DB"`
	// Forbid repeated initialization.
	InitGuard bool `yaml:"InitGuard"`
}

// RPC configures access to the token contract deployed to Neo network.
type RPC struct {
	Endpoint string `yaml:"Endpoint"`
	// Contract address or script hash.
	Contract       string        `yaml:"Contract"`
	DialTimeout    time.Duration `yaml:"DialTimeout"`
	RequestTimeout time.Duration `yaml:"RequestTimeout"`
}

// Metrics configures delivery of ledger call counters.
type Metrics struct {
	// Prometheus Pushgateway URL, counters of local commands are pushed there
	// when set.
	PushGateway string `yaml:"PushGateway"`
	Job         string `yaml:"Job"`
}

const (
	defaultMetricsJob = "token"
	defaultLogLevel   = "info"
	defaultDBPath     = "token.db"
	defaultTimeout    = 15 * time.Second
)

// Default returns configuration used when no file is given. Loaded files
// override its values.
func Default() Config {
	return Config{
		Logger: Logger{Level: defaultLogLevel},
		Ledger: Ledger{
			DB: dbconfig.DBConfiguration{
				Type:          dbconfig.BoltDB,
				BoltDBOptions: dbconfig.BoltDBOptions{FilePath: defaultDBPath},
			},
		},
		RPC: RPC{
			DialTimeout:    defaultTimeout,
			RequestTimeout: defaultTimeout,
		},
		Metrics: Metrics{Job: defaultMetricsJob},
	}
}

// Load reads YAML configuration from the file over Default and validates the
// result. Empty path means Default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}

		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("decode config file %q: %w", path, err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := c.Logger.ZapLevel(); err != nil {
		return err
	}

	db := c.Ledger.DB
	switch db.Type {
	case dbconfig.InMemoryDB:
	case dbconfig.BoltDB:
		if db.BoltDBOptions.FilePath == "" {
			return errors.New("missing BoltDB file path")
		}
	case dbconfig.LevelDB:
		if db.LevelDBOptions.DataDirectoryPath == "" {
			return errors.New("missing LevelDB directory path")
		}
	default:
		return fmt.Errorf("unsupported DB type %q", db.Type)
	}

	if c.RPC.DialTimeout < 0 || c.RPC.RequestTimeout < 0 {
		return errors.New("negative RPC timeout")
	}

	if c.Metrics.PushGateway != "" && c.Metrics.Job == "" {
		return errors.New("missing metrics job name")
	}

	return nil
}

// ZapLevel parses configured log level.
func (l Logger) ZapLevel() (zapcore.Level, error) {
	var lvl zapcore.Level

	err := lvl.UnmarshalText([]byte(l.Level))
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	return lvl, nil
}
