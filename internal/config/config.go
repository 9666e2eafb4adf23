package config

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nexus/internal/errors"

	"github.com/gobwas/glob"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the client configuration. None of it is session state:
// the current location, edit and execute targets are never stored here.
type Config struct {
	Server struct {
		URL            string `yaml:"url" mapstructure:"url"`                         // File Service base URL
		TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"` // Per-request deadline
	} `yaml:"server" mapstructure:"server"`
	UI struct {
		ViewMode string `yaml:"view_mode" mapstructure:"view_mode"` // grid or list
		Theme    string `yaml:"theme" mapstructure:"theme"`
	} `yaml:"ui" mapstructure:"ui"`
	Watch struct {
		Ignore         []string `yaml:"ignore" mapstructure:"ignore"`                   // Glob patterns skipped by watch
		DebounceMillis int      `yaml:"debounce_millis" mapstructure:"debounce_millis"` // Quiet period before a push
	} `yaml:"watch" mapstructure:"watch"`
	Log struct {
		Debug bool   `yaml:"debug" mapstructure:"debug"`
		File  string `yaml:"file" mapstructure:"file"` // Used while the TUI owns the terminal
	} `yaml:"log" mapstructure:"log"`
}

// Flags that override configuration keys when set on the command line.
var flagKeys = map[string]string{
	"server":  "server.url",
	"timeout": "server.timeout_seconds",
	"debug":   "log.debug",
	"view":    "ui.view_mode",
	"theme":   "ui.theme",
}

// DefaultConfigPath returns ~/.config/nexus/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("cannot resolve home directory", "", errors.ConfigNotFound, err)
	}
	return filepath.Join(home, ".config", "nexus", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path, nil)
}

// LoadConfigFile loads configuration from path, layering NEXUS_* environment
// variables and any changed flags in flags on top. A missing file yields the
// defaults.
func LoadConfigFile(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout_seconds", cfg.Server.TimeoutSeconds)
	v.SetDefault("ui.view_mode", cfg.UI.ViewMode)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("watch.ignore", cfg.Watch.Ignore)
	v.SetDefault("watch.debounce_millis", cfg.Watch.DebounceMillis)
	v.SetDefault("log.debug", cfg.Log.Debug)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetEnvPrefix("NEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.NewConfigError("cannot bind flag", name, errors.InvalidConfig, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("error decoding config", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.URL = "http://localhost:8080"
	cfg.Server.TimeoutSeconds = 30
	cfg.UI.ViewMode = "grid"
	cfg.UI.Theme = "default"
	cfg.Watch.Ignore = []string{".git/*", "*.swp", "*~"}
	cfg.Watch.DebounceMillis = 300
	cfg.Log.Debug = false
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.Log.File = filepath.Join(dir, "nexus", "nexus.log")
	}
	return cfg
}

// New creates a configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig writes cfg as YAML, creating parent directories.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigError("server url must be an absolute http(s) URL", "server.url", errors.InvalidConfig, err)
	}

	if c.Server.TimeoutSeconds < 1 {
		return errors.NewConfigError("timeout must be >= 1 second", "server.timeout_seconds", errors.InvalidConfig, nil)
	}

	switch c.UI.ViewMode {
	case "grid", "list":
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid view mode %q", c.UI.ViewMode), "ui.view_mode", errors.InvalidConfig, nil)
	}

	validTheme := false
	for _, name := range ListThemes() {
		if name == c.UI.Theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return errors.NewConfigError(fmt.Sprintf("unknown theme %q", c.UI.Theme), "ui.theme", errors.InvalidConfig, nil)
	}

	if c.Watch.DebounceMillis < 0 {
		return errors.NewConfigError("debounce must be >= 0", "watch.debounce_millis", errors.InvalidConfig, nil)
	}
	for i, pattern := range c.Watch.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError(fmt.Sprintf("ignore pattern %d", i), "watch.ignore", errors.InvalidConfig, err)
		}
	}

	return nil
}

// Timeout returns the per-request deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// Debounce returns the watch quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMillis) * time.Millisecond
}

// GetTheme returns a predefined theme by name, or the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary": "213", // Purple
			"success": "114", // Green
			"warning": "220", // Yellow
			"error":   "196", // Red
			"info":    "39",  // Blue
			"muted":   "245",
			"border":  "213",
		},
		"dark": {
			"primary": "105",
			"success": "78",
			"warning": "214",
			"error":   "160",
			"info":    "33",
			"muted":   "240",
			"border":  "105",
		},
		"light": {
			"primary": "135",
			"success": "150",
			"warning": "222",
			"error":   "210",
			"info":    "117",
			"muted":   "250",
			"border":  "135",
		},
		"monochrome": {
			"primary": "245",
			"success": "252",
			"warning": "241",
			"error":   "232",
			"info":    "248",
			"muted":   "243",
			"border":  "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ListThemes returns the available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
