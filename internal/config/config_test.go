package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
http:
  port: "9000"
database:
  url: postgres://yaml
followup:
  tick: 30s
  report_hour: 18
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("SUPABASE_JWT_SECRET", "segredo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, "postgres://env", cfg.Database.URL)
	assert.Equal(t, 30*time.Second, cfg.FollowUp.Tick)
	assert.Equal(t, 18, cfg.FollowUp.ReportHour)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nao-existe.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "SUPABASE_JWT_SECRET")

	cfg.Debug = true
	cfg.Database.URL = "postgres://x"
	assert.NoError(t, cfg.Validate())

	cfg.FollowUp.ReportHour = 25
	assert.Error(t, cfg.Validate())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))

	t.Setenv("X_BOOL", "true")
	assert.True(t, getEnvAsBool("X_BOOL", false))

	t.Setenv("X_DUR", "2m")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("X_DUR", time.Second))
}
