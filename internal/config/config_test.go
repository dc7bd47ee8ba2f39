package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zhubert/tripchat/internal/errors"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_NewConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "missing", "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GetAPIURL() != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.GetAPIURL(), DefaultAPIURL)
	}
	if cfg.RequestTimeout() != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", cfg.RequestTimeout())
	}
	if cfg.HealthTimeout() != 5*time.Second {
		t.Errorf("HealthTimeout = %v, want 5s", cfg.HealthTimeout())
	}
	if cfg.FilePath() != path {
		t.Errorf("FilePath = %q, want %q", cfg.FilePath(), path)
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := writeConfig(t, `{
		"api_url": "https://trips.example.com/",
		"request_timeout_seconds": 30,
		"theme": "nord",
		"notifications_enabled": true,
		"log_level": "debug"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GetAPIURL() != "https://trips.example.com" {
		t.Errorf("APIURL = %q, trailing slash should be trimmed", cfg.GetAPIURL())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout())
	}
	if cfg.HealthTimeout() != 5*time.Second {
		t.Errorf("HealthTimeout should default to 5s, got %v", cfg.HealthTimeout())
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("Theme = %q, want nord", cfg.GetTheme())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("NotificationsEnabled should be true")
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.GetLogLevel())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example:9000")
	path := writeConfig(t, `{"api_url": "http://file.example:8000"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.GetAPIURL() != "http://env.example:9000" {
		t.Errorf("env should override the file, got %q", cfg.GetAPIURL())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "invalid json")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail with invalid JSON")
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", errors.GetKind(err))
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := writeConfig(t, `{"api_url": "ftp://example.com"}`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for a non-http URL")
	}
	if !errors.Is(err, errors.KindInvalid) {
		t.Errorf("expected KindInvalid, got %v", errors.GetKind(err))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "defaults",
			cfg:     New(""),
			wantErr: false,
		},
		{
			name:    "https url",
			cfg:     &Config{APIURL: "https://api.example.com", RequestTimeoutSeconds: 1, HealthTimeoutSeconds: 1},
			wantErr: false,
		},
		{
			name:    "missing scheme",
			cfg:     &Config{APIURL: "localhost:8000", RequestTimeoutSeconds: 1, HealthTimeoutSeconds: 1},
			wantErr: true,
		},
		{
			name:    "no host",
			cfg:     &Config{APIURL: "http://", RequestTimeoutSeconds: 1, HealthTimeoutSeconds: 1},
			wantErr: true,
		},
		{
			name:    "negative request timeout",
			cfg:     &Config{APIURL: DefaultAPIURL, RequestTimeoutSeconds: -1, HealthTimeoutSeconds: 1},
			wantErr: true,
		},
		{
			name:    "negative health timeout",
			cfg:     &Config{APIURL: DefaultAPIURL, RequestTimeoutSeconds: 1, HealthTimeoutSeconds: -1},
			wantErr: true,
		},
		{
			name:    "unset fields use defaults",
			cfg:     &Config{},
			wantErr: false,
		},
		{
			name:    "invalid override",
			cfg:     &Config{apiURLOverride: "localhost:9000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := New(path)
	cfg.APIURL = "http://saved.example:8123"
	cfg.SetTheme("dark-purple")
	cfg.SetNotificationsEnabled(true)

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), `"api_url": "http://saved.example:8123"`) {
		t.Errorf("saved config missing api_url:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.GetAPIURL() != "http://saved.example:8123" {
		t.Errorf("APIURL = %q after round trip", loaded.GetAPIURL())
	}
	if loaded.GetTheme() != "dark-purple" {
		t.Errorf("Theme = %q after round trip", loaded.GetTheme())
	}
	if !loaded.GetNotificationsEnabled() {
		t.Error("NotificationsEnabled should survive a round trip")
	}
}

func TestConfig_SaveKeepsOverridesOutOfFile(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		flag     string
		wantLive string
	}{
		{name: "env", env: "http://env-host:9000", wantLive: "http://env-host:9000"},
		{name: "flag", flag: "http://flag-host:1234", wantLive: "http://flag-host:1234"},
		{name: "flag over env", env: "http://env-host:9000", flag: "http://flag-host:1234", wantLive: "http://flag-host:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, `{"api_url": "http://file-host:8000", "theme": "dark-purple"}`)

			t.Setenv(EnvAPIURL, tt.env)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if tt.flag != "" {
				cfg.SetAPIURL(tt.flag)
			}
			if cfg.GetAPIURL() != tt.wantLive {
				t.Errorf("GetAPIURL() = %q, want %q", cfg.GetAPIURL(), tt.wantLive)
			}

			cfg.SetTheme("nord")
			if err := cfg.Save(); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read saved config: %v", err)
			}
			for _, unwanted := range []string{"env-host", "flag-host", "request_timeout_seconds", "health_timeout_seconds"} {
				if strings.Contains(string(data), unwanted) {
					t.Errorf("saved config should not contain %q:\n%s", unwanted, data)
				}
			}

			t.Setenv(EnvAPIURL, "")
			reloaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if reloaded.GetAPIURL() != "http://file-host:8000" {
				t.Errorf("GetAPIURL() after override removed = %q, want the file value", reloaded.GetAPIURL())
			}
			if reloaded.GetTheme() != "nord" {
				t.Errorf("Theme = %q, want nord", reloaded.GetTheme())
			}
		})
	}
}

func TestConfig_SaveWithoutPath(t *testing.T) {
	cfg := &Config{}
	err := cfg.Save()
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("Save() without a path should fail with KindConfig, got %v", err)
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := New("")
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetTheme("nord")
			cfg.SetNotificationsEnabled(true)
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetTheme()
			_ = cfg.GetAPIURL()
			_ = cfg.RequestTimeout()
		}()
	}

	wg.Wait()
}
