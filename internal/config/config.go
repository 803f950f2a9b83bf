// Package config handles the configuration directory, its files and config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tudo"

	// OAuthClientFile is the default OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// LogFile receives debug logs while the TUI owns the terminal.
	LogFile = "tudo.log"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are read from config.yaml.
	Settings Settings
}

// Settings is the content of config.yaml.
type Settings struct {
	// ClientSecret is the OAuth client file, relative to Dir unless absolute.
	ClientSecret string `yaml:"client_secret,omitempty"`

	// TickRate is how often the TUI redraws relative due dates.
	TickRate time.Duration `yaml:"tick_rate,omitempty"`

	// APITimeout bounds each backend call.
	APITimeout time.Duration `yaml:"api_timeout,omitempty"`
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() Settings {
	return Settings{
		ClientSecret: OAuthClientFile,
		TickRate:     250 * time.Millisecond,
		APITimeout:   10 * time.Second,
	}
}

// New creates a new Config with the default or specified config directory
// and default settings.
// If configDir is empty, uses XDG_CONFIG_HOME/tudo or $HOME/.config/tudo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load is New followed by reading config.yaml from the directory.
// A missing config.yaml leaves the defaults in place.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	if err := yaml.Unmarshal(data, &cfg.Settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
	}

	defaults := DefaultSettings()
	if cfg.Settings.ClientSecret == "" {
		cfg.Settings.ClientSecret = defaults.ClientSecret
	}
	if cfg.Settings.TickRate <= 0 {
		cfg.Settings.TickRate = defaults.TickRate
	}
	if cfg.Settings.APITimeout <= 0 {
		cfg.Settings.APITimeout = defaults.APITimeout
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	name := c.Settings.ClientSecret
	if name == "" {
		name = OAuthClientFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// LogPath returns the path of the debug log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
