package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, "EliteSupps", cfg.System.Appid)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigFromFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "elitesupps.yml")
	content := `
system:
  appid: EliteSupps
  workdir: /tmp/elitesupps-test
web:
  host: 127.0.0.1
  port: 2816
database:
  type: sqlite
  name: shop
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "/tmp/elitesupps-test", cfg.System.Workdir)
	assert.Equal(t, 2816, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "shop", cfg.Database.Name)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ELITESUPPS_DB_TYPE", "sqlite")
	t.Setenv("ELITESUPPS_DB_PORT", "5433")
	t.Setenv("ELITESUPPS_WEB_HOST", "10.0.0.5")
	t.Setenv("ELITESUPPS_WEB_PORT", "2816")
	t.Setenv("ELITESUPPS_SYSTEM_DEBUG", "on")

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "10.0.0.5", cfg.Web.Host)
	assert.Equal(t, 2816, cfg.Web.Port)
	assert.True(t, cfg.System.Debug)

	// a malformed numeric override is ignored, not applied
	t.Setenv("ELITESUPPS_WEB_PORT", "not-a-port")
	cfg = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, 1816, cfg.Web.Port)
}

func TestLoadConfigLeavesDefaultsUntouched(t *testing.T) {
	t.Setenv("ELITESUPPS_DB_TYPE", "sqlite")
	t.Setenv("ELITESUPPS_DB_PORT", "5433")

	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, "sqlite", cfg.Database.Type)

	// overrides apply to a copy, the shared defaults keep their values
	assert.Equal(t, "postgres", DefaultAppConfig.Database.Type)
	assert.Equal(t, 5432, DefaultAppConfig.Database.Port)
}
