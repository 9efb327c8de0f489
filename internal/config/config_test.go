package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadWritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")

	cfg, _, err := Load(dir, "")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "table", cfg.Output)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoadKeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), `
store:
  driver: MySQL
  host: db.internal
  user: hr
  database: company_db
output: json
log:
  level: DEBUG
`)

	cfg, v, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Store.Driver)
	assert.Equal(t, "db.internal", cfg.Store.Host)
	assert.Equal(t, "company_db", cfg.Store.Database)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "hr", v.GetString(KeyUser))

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "db.internal", "existing file is not overwritten")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "output: yaml\n")
	t.Setenv("ORGCHART_OUTPUT", "json")
	t.Setenv("ORGCHART_STORE_PATH", "/tmp/org.db")
	t.Setenv("ORGCHART_STORE_PORT", "5433")

	cfg, _, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "/tmp/org.db", cfg.Store.Path)
	assert.Equal(t, 5433, cfg.Store.Port)
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "ORGCHART_STORE_PASSWORD=s3cret\n")
	t.Setenv("ORGCHART_STORE_PASSWORD", "")
	os.Unsetenv("ORGCHART_STORE_PASSWORD")

	cfg, _, err := Load(dir, envFile)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Store.Password)

	_, _, err = Load(dir, filepath.Join(dir, "missing.env"))
	assert.NoError(t, err, "a missing .env file is ignored")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Store:  Store{Driver: "sqlite"},
			Log:    Log{Level: "info", Format: "json"},
			Output: "table",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "sqlite needs no network settings", mutate: func(*Config) {}},
		{
			name: "postgres with network settings",
			mutate: func(c *Config) {
				c.Store = Store{Driver: "postgres", Host: "db", User: "hr", Database: "company", SSLMode: "require"}
			},
		},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "oracle" }, wantErr: "store.driver"},
		{name: "mysql without host", mutate: func(c *Config) { c.Store = Store{Driver: "mysql", User: "root", Database: "company_db"} }, wantErr: "store.host"},
		{name: "bad output", mutate: func(c *Config) { c.Output = "csv" }, wantErr: "output"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "bad port", mutate: func(c *Config) { c.Store.Port = 70000 }, wantErr: "store.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "store:\n  driver: postgres\n")

	_, _, err := Load(dir, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "store.host")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "store: [driver\n")

	_, _, err := Load(dir, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
