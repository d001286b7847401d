// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package config provides configuration management for the ceddbench tool.
// Values are read from a configuration file (YAML, TOML, JSON...) and can be
// overridden with environment variables prefixed with CEDD, for instance
// CEDD_ENGINE_NODESIZE.
package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/dalzilio/cedd"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Run    RunConfig    `mapstructure:"run"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
}

// EngineConfig holds the parameters used to create BDDs. A zero value means
// that we keep the default of the library.
type EngineConfig struct {
	Nodesize        int `mapstructure:"nodesize"`
	Maxnodesize     int `mapstructure:"maxnodesize"`
	Maxnodeincrease int `mapstructure:"maxnodeincrease"`
	Minfreenodes    int `mapstructure:"minfreenodes"`
	Cachesize       int `mapstructure:"cachesize"`
	Cacheratio      int `mapstructure:"cacheratio"`
}

// RunConfig holds the parameters of benchmark runs.
type RunConfig struct {
	Jobs   int    `mapstructure:"jobs"`   // number of problems solved concurrently
	Format string `mapstructure:"format"` // text or prom
}

// StoreConfig holds the configuration of the results database.
type StoreConfig struct {
	DSN string `mapstructure:"dsn"` // path of the SQLite database, empty if disabled
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Directory string `mapstructure:"directory"`
	File      string `mapstructure:"file"`
	Size      int    `mapstructure:"size"`
	Count     int    `mapstructure:"count"`
	Console   bool   `mapstructure:"console"`
	Level     string `mapstructure:"level"`
}

// Load reads configuration from the specified file path. We use the default
// values if path is empty.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return unmarshal(v)
}

// LoadFromReader loads configuration from a byte slice (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("cedd")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.nodesize", 0)
	v.SetDefault("engine.maxnodesize", 0)
	v.SetDefault("engine.maxnodeincrease", 0)
	v.SetDefault("engine.minfreenodes", 0)
	v.SetDefault("engine.cachesize", 0)
	v.SetDefault("engine.cacheratio", 0)

	v.SetDefault("run.jobs", 1)
	v.SetDefault("run.format", "text")

	v.SetDefault("store.dsn", "")

	v.SetDefault("log.directory", os.TempDir())
	v.SetDefault("log.file", "ceddbench.log")
	v.SetDefault("log.size", 1048576)
	v.SetDefault("log.count", 10)
	v.SetDefault("log.console", false)
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	e := c.Engine
	if e.Nodesize < 0 || e.Maxnodesize < 0 || e.Maxnodeincrease < 0 || e.Cachesize < 0 || e.Cacheratio < 0 {
		return errors.New("engine parameters must be positive")
	}
	if e.Minfreenodes < 0 || e.Minfreenodes > 100 {
		return errors.Errorf("minfreenodes is a percentage, got %d", e.Minfreenodes)
	}
	if e.Maxnodesize > 0 && e.Nodesize > e.Maxnodesize {
		return errors.Errorf("nodesize (%d) is larger than maxnodesize (%d)", e.Nodesize, e.Maxnodesize)
	}
	if c.Run.Jobs < 1 {
		return errors.New("number of jobs must be at least 1")
	}
	switch c.Run.Format {
	case "text", "prom":
	default:
		return errors.Errorf("unsupported output format: %s", c.Run.Format)
	}
	return nil
}

// Options returns the configuration options to use with cedd.New. The logger
// is optional.
func (e EngineConfig) Options(log *logger.L) []cedd.Option {
	res := []cedd.Option{}
	if e.Nodesize > 0 {
		res = append(res, cedd.Nodesize(e.Nodesize))
	}
	if e.Maxnodesize > 0 {
		res = append(res, cedd.Maxnodesize(e.Maxnodesize))
	}
	if e.Maxnodeincrease > 0 {
		res = append(res, cedd.Maxnodeincrease(e.Maxnodeincrease))
	}
	if e.Minfreenodes > 0 {
		res = append(res, cedd.Minfreenodes(e.Minfreenodes))
	}
	if e.Cachesize > 0 {
		res = append(res, cedd.Cachesize(e.Cachesize))
	}
	if e.Cacheratio > 0 {
		res = append(res, cedd.Cacheratio(e.Cacheratio))
	}
	if log != nil {
		res = append(res, cedd.Logger(log))
	}
	return res
}

// Configuration returns the parameters used to initialise the logging
// channels.
func (l LogConfig) Configuration() logger.Configuration {
	return logger.Configuration{
		Directory: l.Directory,
		File:      l.File,
		Size:      l.Size,
		Count:     l.Count,
		Console:   l.Console,
		Levels: map[string]string{
			logger.DefaultTag: l.Level,
		},
	}
}
