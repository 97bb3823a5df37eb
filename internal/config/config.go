// Package config handles the XDG configuration directory, config.toml and file paths.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the settings filename.
	ConfigFile = "config.toml"

	// SessionFile is the persisted session filename.
	SessionFile = "session.json"

	// LogFile receives debug logs from the interactive UI.
	LogFile = "taskman.log"

	// ServerEnv overrides base_url from config.toml.
	ServerEnv = "TASKMAN_SERVER"

	// DefaultBaseURL is the task service address used when nothing else is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every API call.
	DefaultTimeout = 10 * time.Second

	maxTimeout = 5 * time.Minute
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the task service address, without a trailing slash.
	BaseURL string

	// Timeout bounds each API call.
	Timeout time.Duration

	// APIToken, when set, is sent as a bearer token on every request.
	APIToken string

	// LogLevel is the slog level name used when Debug is off.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings mirrors config.toml.
type fileSettings struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	APIToken       string `toml:"api_token"`
	LogLevel       string `toml:"log_level"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
// Settings are defaults; call Load to read config.toml.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		LogLevel: "info",
	}, nil
}

// Load reads config.toml from the config directory, if present, then applies
// the TASKMAN_SERVER environment override. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.ConfigFilePath())
	switch {
	case err == nil:
		var fs fileSettings
		if err := toml.Unmarshal(data, &fs); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		c.apply(fs)
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if env := strings.TrimSpace(os.Getenv(ServerEnv)); env != "" {
		c.BaseURL = env
	}
	return c.normalize()
}

// SetServer overrides the base URL (from --server).
func (c *Config) SetServer(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	c.BaseURL = raw
	return c.normalize()
}

func (c *Config) apply(fs fileSettings) {
	if strings.TrimSpace(fs.BaseURL) != "" {
		c.BaseURL = fs.BaseURL
	}
	if fs.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(fs.TimeoutSeconds) * time.Second
	}
	c.APIToken = strings.TrimSpace(fs.APIToken)
	if strings.TrimSpace(fs.LogLevel) != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(fs.LogLevel))
	}
}

func (c *Config) normalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server address: %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Timeout > maxTimeout {
		c.Timeout = maxTimeout
	}
	return nil
}

// Save writes the current settings to config.toml, creating the directory.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := toml.Marshal(fileSettings{
		BaseURL:        c.BaseURL,
		TimeoutSeconds: int(c.Timeout / time.Second),
		APIToken:       c.APIToken,
		LogLevel:       c.LogLevel,
	})
	if err != nil {
		return err
	}
	tmp := c.ConfigFilePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, c.ConfigFilePath())
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

// ConfigFilePath returns the path to config.toml.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// SessionPath returns the path to the persisted session.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// LogPath returns the path to the interactive UI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
