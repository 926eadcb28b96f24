package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Server.Env)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "./data/meetings", cfg.Data.MeetingsDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Export.MaxConcurrent)
	assert.Equal(t, "professional", cfg.Export.DefaultTemplate)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
data:
  meetings_dir: /srv/meetings
export:
  max_concurrent: 2
  default_template: meeting_minutes
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/meetings", cfg.Data.MeetingsDir)
	assert.Equal(t, 2, cfg.Export.MaxConcurrent)
	assert.Equal(t, "meeting_minutes", cfg.Export.DefaultTemplate)
	// untouched fields keep defaults
	assert.Equal(t, "dev", cfg.Server.Env)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "8123")
	t.Setenv("EXPORT_MAX_CONCURRENT", "1")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8123", cfg.Server.Port)
	assert.Equal(t, 1, cfg.Export.MaxConcurrent)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(base()))
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.Security.JWTSecret = ""
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.Security.JWTSecret = "short"
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("auth disabled in production", func(t *testing.T) {
		cfg := base()
		cfg.Server.Env = "production"
		cfg.Security.AuthDisabled = true
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("bad concurrency", func(t *testing.T) {
		cfg := base()
		cfg.Export.MaxConcurrent = 0
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = "http"
		assert.Error(t, ValidateConfig(cfg))
	})
}
