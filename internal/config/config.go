// Package config loads and saves application configuration.
//
// Configuration lives in a TOML file under the user config directory
// (~/.config/drift/config.toml on Linux) and can be overridden with
// DRIFT_* environment variables, e.g. DRIFT_SERVER_PORT=8080.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	appDirName     = "drift"
	configFileName = "config.toml"
	envPrefix      = "DRIFT"
)

// Config is the full application configuration
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Server   ServerConfig   `mapstructure:"server"`
	Location LocationConfig `mapstructure:"location"`
	URL      URLConfig      `mapstructure:"url"`
	APIKeys  APIKeysConfig  `mapstructure:"api_keys"`
	History  HistoryConfig  `mapstructure:"history"`
	Log      LogConfig      `mapstructure:"log"`

	v *viper.Viper
}

// DefaultsConfig holds default generation parameters
type DefaultsConfig struct {
	Backend        string  `mapstructure:"backend"`
	Radius         float64 `mapstructure:"radius"`
	Points         int     `mapstructure:"points"`
	GridResolution int     `mapstructure:"grid_resolution"`
	Format         string  `mapstructure:"format"`
	AnomalyType    string  `mapstructure:"type"`
	Mode           string  `mapstructure:"mode"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	RateLimit      int    `mapstructure:"rate_limit"`
	RateWindowSecs int    `mapstructure:"rate_window_secs"`
}

// LocationConfig holds location lookup settings
type LocationConfig struct {
	// DefaultHere makes IP-based location the default when none is given
	DefaultHere bool `mapstructure:"default_here"`
}

// URLConfig holds map URL generation settings
type URLConfig struct {
	Default   string            `mapstructure:"default"`
	Providers map[string]string `mapstructure:"providers"`
}

// APIKeysConfig holds API keys for external services
type APIKeysConfig struct {
	ANU string `mapstructure:"anu"`
}

// HistoryConfig holds history storage settings
type HistoryConfig struct {
	Path       string `mapstructure:"path"`
	MaxEntries int    `mapstructure:"max_entries"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Dir returns the configuration directory path
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Path returns the configuration file path
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DataDir returns the data directory used for history storage
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDirName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("defaults.backend", "pseudo")
	v.SetDefault("defaults.radius", 3000.0)
	v.SetDefault("defaults.points", 10000)
	v.SetDefault("defaults.grid_resolution", 50)
	v.SetDefault("defaults.format", "text")
	v.SetDefault("defaults.type", "attractor")
	v.SetDefault("defaults.mode", "standard")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 7878)
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("server.rate_window_secs", 60)

	v.SetDefault("location.default_here", false)

	v.SetDefault("url.default", "google")
	v.SetDefault("url.providers", map[string]string{
		"google":        "https://www.google.com/maps/@{lat},{lng},15z",
		"openstreetmap": "https://www.openstreetmap.org/#map=18/{lat}/{lng}",
		"apple":         "https://maps.apple.com/?ll={lat},{lng}",
	})

	v.SetDefault("api_keys.anu", "")

	v.SetDefault("history.path", "")
	v.SetDefault("history.max_entries", 100)

	v.SetDefault("log.level", "info")

	return v
}

// Load reads configuration from the default path, creating a default config
// file if none exists
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific file path
func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.History.Path == "" {
		dataDir, err := DataDir()
		if err != nil {
			return nil, err
		}
		cfg.History.Path = filepath.Join(dataDir, "history.db")
	}

	return cfg, nil
}

// Save writes the configuration to its file, creating the directory if
// needed
func (c *Config) Save() error {
	path := c.v.ConfigFileUsed()
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := c.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AvailableKeys lists the config keys addressable with Get and Set
func AvailableKeys() []string {
	return []string{
		"defaults.backend",
		"defaults.radius",
		"defaults.points",
		"defaults.grid_resolution",
		"defaults.format",
		"defaults.type",
		"defaults.mode",
		"server.host",
		"server.port",
		"server.jwt_secret",
		"server.rate_limit",
		"server.rate_window_secs",
		"location.default_here",
		"url.default",
		"api_keys.anu",
		"history.path",
		"history.max_entries",
		"log.level",
	}
}

// Get returns a configuration value by dot-separated key path, or false if
// the key is unknown
func (c *Config) Get(key string) (string, bool) {
	for _, known := range AvailableKeys() {
		if key == known {
			return c.v.GetString(key), true
		}
	}
	return "", false
}

// Set updates a configuration value by dot-separated key path, validating
// numeric and boolean values
func (c *Config) Set(key, value string) error {
	known := false
	for _, k := range AvailableKeys() {
		if key == k {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown config key: %s", key)
	}

	switch key {
	case "defaults.radius":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s", key, value)
		}
		c.v.Set(key, parsed)
	case "defaults.points", "defaults.grid_resolution", "server.port",
		"server.rate_limit", "server.rate_window_secs", "history.max_entries":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s", key, value)
		}
		c.v.Set(key, parsed)
	case "location.default_here":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s", key, value)
		}
		c.v.Set(key, parsed)
	default:
		c.v.Set(key, value)
	}

	return c.v.Unmarshal(c)
}

// FormatURL renders a map URL for the given provider (empty means the
// configured default), replacing {lat} and {lng} placeholders
func (c *Config) FormatURL(provider string, lat, lng float64) (string, error) {
	if provider == "" {
		provider = c.URL.Default
	}

	template, ok := c.URL.Providers[provider]
	if !ok {
		return "", fmt.Errorf("unknown URL provider: %s", provider)
	}

	url := strings.ReplaceAll(template, "{lat}", strconv.FormatFloat(lat, 'f', -1, 64))
	url = strings.ReplaceAll(url, "{lng}", strconv.FormatFloat(lng, 'f', -1, 64))
	return url, nil
}

// ServerAddr returns the server listen address as "host:port"
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
