// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Run.Jobs)
	assert.Equal(t, "text", cfg.Run.Format)
	assert.Equal(t, "", cfg.Store.DSN)
	assert.Equal(t, "ceddbench.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Engine.Options(nil))
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
engine:
  nodesize: 5000
  maxnodesize: 100000
  cachesize: 1000
run:
  jobs: 4
  format: prom
store:
  dsn: results.db
log:
  directory: /tmp/cedd
  level: debug
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Engine.Nodesize)
	assert.Equal(t, 100000, cfg.Engine.Maxnodesize)
	assert.Equal(t, 1000, cfg.Engine.Cachesize)
	assert.Equal(t, 4, cfg.Run.Jobs)
	assert.Equal(t, "prom", cfg.Run.Format)
	assert.Equal(t, "results.db", cfg.Store.DSN)
	assert.Len(t, cfg.Engine.Options(nil), 3)

	lc := cfg.Log.Configuration()
	assert.Equal(t, "/tmp/cedd", lc.Directory)
	assert.Equal(t, "debug", lc.Levels[logger.DefaultTag])
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CEDD_ENGINE_NODESIZE", "2000")
	t.Setenv("CEDD_RUN_JOBS", "3")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Engine.Nodesize)
	assert.Equal(t, 3, cfg.Run.Jobs)
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader("toml", []byte("[engine]\nnodesize = 42\ncacheratio = 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Engine.Nodesize)
	assert.Equal(t, 4, cfg.Engine.Cacheratio)
	assert.Len(t, cfg.Engine.Options(nil), 2)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative nodesize", "engine:\n  nodesize: -1\n"},
		{"bad percentage", "engine:\n  minfreenodes: 120\n"},
		{"nodesize above max", "engine:\n  nodesize: 2000\n  maxnodesize: 1000\n"},
		{"no jobs", "run:\n  jobs: 0\n"},
		{"bad format", "run:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader("yaml", []byte(tt.content))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
