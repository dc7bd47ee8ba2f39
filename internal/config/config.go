package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/tripchat/internal/errors"
)

const (
	// DefaultAPIURL is the chat service address used when nothing else is configured.
	DefaultAPIURL = "http://localhost:8000"
	// DefaultRequestTimeoutSeconds bounds a single chat request.
	DefaultRequestTimeoutSeconds = 60
	// DefaultHealthTimeoutSeconds bounds the health probe.
	DefaultHealthTimeoutSeconds = 5

	// EnvAPIURL overrides the configured API URL (but not the --api-url flag).
	// Like the flag, it is never written back to the config file.
	EnvAPIURL = "TRIPCHAT_API_URL"
)

// Config holds the application configuration
type Config struct {
	APIURL                string `json:"api_url,omitempty"`                 // Base URL of the chat service
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // Timeout for POST /chat
	HealthTimeoutSeconds  int    `json:"health_timeout_seconds,omitempty"`  // Timeout for GET /health
	Theme                 string `json:"theme,omitempty"`                   // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notification when a reply arrives unfocused
	LogLevel              string `json:"log_level,omitempty"`               // debug, info, warn, error

	mu             sync.RWMutex
	filePath       string
	apiURLOverride string // from TRIPCHAT_API_URL or --api-url, not persisted
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tripchat"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns an empty config that saves to path. Unset fields read as
// their defaults.
func New(path string) *Config {
	return &Config{filePath: path}
}

// Load reads the config from path (DefaultPath when empty), or returns
// defaults if the file doesn't exist. The TRIPCHAT_API_URL environment
// variable is applied after the file is read.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.ConfigLoadFailed("~/.tripchat/config.json", err)
		}
		path = p
	}

	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.apiURLOverride = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// apiURL returns the effective URL: override, then file value, then default.
// Callers must hold c.mu.
func (c *Config) apiURL() string {
	if c.apiURLOverride != "" {
		return c.apiURLOverride
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultAPIURL
}

// seconds converts a configured timeout, treating zero as unset.
func seconds(n, def int) time.Duration {
	if n == 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidateAPIURL(c.apiURL()); err != nil {
		return err
	}
	if c.RequestTimeoutSeconds < 0 {
		return errors.ConfigInvalid("request_timeout_seconds must be positive")
	}
	if c.HealthTimeoutSeconds < 0 {
		return errors.ConfigInvalid("health_timeout_seconds must be positive")
	}
	return nil
}

// ValidateAPIURL reports whether raw is an absolute http(s) URL.
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.E(errors.Op("config.Validate"), errors.KindInvalid, "api_url is not a valid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid("api_url must use http or https: " + raw)
	}
	if u.Host == "" {
		return errors.ConfigInvalid("api_url has no host: " + raw)
	}
	return nil
}

// Save writes the config to disk. Overrides and defaults stay out of the
// file so it only holds what the user set there.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return errors.ConfigSaveFailed("", errors.E("no file path set"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// SetFilePath sets where Save writes. Used by tests.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// FilePath returns where Save writes.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetAPIURL returns the chat service base URL without a trailing slash
func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimRight(c.apiURL(), "/")
}

// SetAPIURL overrides the chat service base URL for this run only. Used for
// the --api-url flag.
func (c *Config) SetAPIURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiURLOverride = u
}

// RequestTimeout returns the chat request timeout
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return seconds(c.RequestTimeoutSeconds, DefaultRequestTimeoutSeconds)
}

// HealthTimeout returns the health probe timeout
func (c *Config) HealthTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return seconds(c.HealthTimeoutSeconds, DefaultHealthTimeoutSeconds)
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLogLevel returns the configured log level name
func (c *Config) GetLogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogLevel
}
