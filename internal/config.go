package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/novapool/internal/bufferpool"
)

// Storage backends understood by Config.Storage.Backend.
const (
	BackendFile    = "file"
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
)

var ErrInvalidConfig = errors.New("config: invalid")

type NovaPoolConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Backend string `mapstructure:"backend"`
		Workdir string `mapstructure:"workdir"`
		Base    string `mapstructure:"base"`
	} `mapstructure:"storage"`

	BufferPool struct {
		PoolSize int    `mapstructure:"pool_size"`
		Replacer string `mapstructure:"replacer"`
	} `mapstructure:"buffer_pool"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novapool")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.workdir", "./data")
	v.SetDefault("storage.base", "pages")
	v.SetDefault("buffer_pool.pool_size", bufferpool.DefaultCapacity)
	v.SetDefault("buffer_pool.replacer", string(bufferpool.PolicyLRU))
	v.SetDefault("log.level", "info")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NOVAPOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*NovaPoolConfig, error) {
	var cfg NovaPoolConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the defaults with NOVAPOOL_* environment overrides.
func DefaultConfig() (*NovaPoolConfig, error) {
	return decode(newViper())
}

// LoadConfig reads a YAML file; keys it does not set keep their defaults and
// NOVAPOOL_* environment variables win over both.
func LoadConfig(path string) (*NovaPoolConfig, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

func (c *NovaPoolConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendLevelDB:
		if c.Storage.Workdir == "" {
			return fmt.Errorf("%w: storage.workdir is required for %s", ErrInvalidConfig, c.Storage.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: storage.backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.BufferPool.PoolSize <= 0 {
		return fmt.Errorf("%w: buffer_pool.pool_size must be positive, got %d", ErrInvalidConfig, c.BufferPool.PoolSize)
	}
	if _, err := bufferpool.ParsePolicy(c.BufferPool.Replacer); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Policy is the parsed buffer_pool.replacer.
func (c *NovaPoolConfig) Policy() bufferpool.Policy {
	p, _ := bufferpool.ParsePolicy(c.BufferPool.Replacer)
	return p
}

// LogLevel is the parsed log.level.
func (c *NovaPoolConfig) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return lvl, nil
}
