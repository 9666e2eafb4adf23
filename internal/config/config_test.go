package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexus/internal/config"
	"nexus/internal/errors"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const (
	validYAML = `
server:
  url: "http://files.internal:9000"
  timeout_seconds: 5
ui:
  view_mode: list
  theme: dark
watch:
  ignore: ["*.tmp", "build/*"]
  debounce_millis: 100
`
	invalidSyntaxYAML = `
server:
  url: "http://localhost
ui: [
`
	invalidViewYAML = `
ui:
  view_mode: carousel
`
	invalidURLYAML = `
server:
  url: "files.internal"
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML), nil)
		require.NoError(t, err)

		assert.Equal(t, "http://files.internal:9000", cfg.Server.URL)
		assert.Equal(t, 5*time.Second, cfg.Timeout())
		assert.Equal(t, "list", cfg.UI.ViewMode)
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.Equal(t, []string{"*.tmp", "build/*"}, cfg.Watch.Ignore)
		assert.Equal(t, 100*time.Millisecond, cfg.Debounce())
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		require.NoError(t, err, "a missing file yields defaults")

		defaults := config.New()
		assert.Equal(t, defaults.Server.URL, cfg.Server.URL)
		assert.Equal(t, defaults.Server.TimeoutSeconds, cfg.Server.TimeoutSeconds)
		assert.Equal(t, "grid", cfg.UI.ViewMode)
	})

	t.Run("invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("invalid view mode", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidViewYAML), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("relative server url", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidURLYAML), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.url")
	})
}

func TestOverrides(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("NEXUS_SERVER_URL", "https://env.example:8443")
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML), nil)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example:8443", cfg.Server.URL)
	})

	t.Run("changed flags win over file", func(t *testing.T) {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("server", "", "")
		flags.Int("timeout", 0, "")
		require.NoError(t, flags.Parse([]string{"--timeout", "9"}))

		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML), flags)
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.Server.TimeoutSeconds)
		assert.Equal(t, "http://files.internal:9000", cfg.Server.URL, "unchanged flags do not override")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"defaults", func(c *config.Config) {}, ""},
		{"zero timeout", func(c *config.Config) { c.Server.TimeoutSeconds = 0 }, "timeout"},
		{"unknown theme", func(c *config.Config) { c.UI.Theme = "neon" }, "unknown theme"},
		{"bad glob", func(c *config.Config) { c.Watch.Ignore = []string{"[unclosed"} }, "ignore pattern 0"},
		{"negative debounce", func(c *config.Config) { c.Watch.DebounceMillis = -1 }, "debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Server.URL = "http://saved:1234"
	cfg.UI.ViewMode = "list"

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:1234", loaded.Server.URL)
	assert.Equal(t, "list", loaded.UI.ViewMode)
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "105", config.GetTheme("dark")["primary"])
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("does-not-exist"))
}
