package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenthumb/greenthumb-cli/pkg/config"
)

func pointConfigAt(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)
	return path
}

func TestLoadDefaults(t *testing.T) {
	pointConfigAt(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000", cfg.Server)
	require.Equal(t, "en", cfg.Language)
	require.Equal(t, 60, cfg.TimeoutSeconds)
}

func TestLoadFromFile(t *testing.T) {
	path := pointConfigAt(t)

	contents := "server: http://farm.example.com:9000\nlanguage: hi\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "http://farm.example.com:9000", cfg.Server)
	require.Equal(t, "hi", cfg.Language)
	// Fields absent from the file keep their defaults.
	require.Equal(t, 60, cfg.TimeoutSeconds)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := pointConfigAt(t)

	require.NoError(t, os.WriteFile(path, []byte("language: hi\n"), 0o644))
	t.Setenv("GREENTHUMB_LANGUAGE", "kn")
	t.Setenv("GREENTHUMB_TIMEOUT_SECONDS", "15")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "kn", cfg.Language)
	require.Equal(t, 15, cfg.TimeoutSeconds)
}

func TestLoadMalformedFile(t *testing.T) {
	path := pointConfigAt(t)

	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(dir, "nested", "config.yaml"))

	want := config.Config{
		Server:         "http://farm.example.com:9000",
		Language:       "kn",
		TimeoutSeconds: 30,
	}
	require.NoError(t, config.Save(want))

	got, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPathOverride(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "/tmp/custom.yaml")

	path, err := config.Path()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.yaml", path)
}
