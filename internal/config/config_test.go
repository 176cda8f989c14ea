package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 15*time.Minute, cfg.Limits.Window)
	require.Equal(t, 100, cfg.Limits.GeneralMax)
	require.Equal(t, 20, cfg.Limits.StrictMax)
	require.True(t, cfg.Security.HSTS.Enabled)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
env: prod
http_addr: ":9090"
cors:
  allowed_origins: ["https://app.example.com"]
  allow_credentials: false
limits:
  window: 1m
  general_max: 500
security:
  hsts:
    enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Load()
	require.NoError(t, loadFromFile(path, &cfg))
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
	require.False(t, cfg.CORS.AllowCredentials)
	require.Equal(t, time.Minute, cfg.Limits.Window)
	require.Equal(t, 500, cfg.Limits.GeneralMax)
	// 未覆盖的字段保持默认值
	require.Equal(t, 20, cfg.Limits.StrictMax)
	require.False(t, cfg.Security.HSTS.Enabled)
}

func TestLoadFromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"env":"test","limits":{"window":"30s","strict_max":5}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Load()
	require.NoError(t, loadFromFile(path, &cfg))
	require.Equal(t, "test", cfg.Env)
	require.Equal(t, 30*time.Second, cfg.Limits.Window)
	require.Equal(t, 5, cfg.Limits.StrictMax)
}

func TestCORSAllowed(t *testing.T) {
	c := CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}
	require.True(t, c.Allowed("http://localhost:3000"))
	require.False(t, c.Allowed("http://evil.example.com"))

	c = CORSConfig{AllowedOrigins: []string{"*"}}
	require.True(t, c.Allowed("http://anything.example.com"))
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "present.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("env: dev"), 0o600))

	require.Equal(t, existing, FirstExisting(filepath.Join(dir, "missing.yaml"), existing))
	require.Equal(t, "", FirstExisting(filepath.Join(dir, "missing.yaml"), ""))
}
