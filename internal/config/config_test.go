package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diogo/tradebot/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != models.DefaultBaseURL {
		t.Errorf("Expected default base URL %q, got %q", models.DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("Expected no request timeout by default, got %d", cfg.RequestTimeout)
	}
	if cfg.Verbose {
		t.Error("Expected Verbose to be false")
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("Expected tokyonight theme, got %q", cfg.TUITheme)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Expected dark markdown style, got %q", cfg.Markdown.Style)
	}
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	want := filepath.Join(home, ".tradebot", "config.json")
	if path != want {
		t.Errorf("GetConfigPath() = %s, want %s", path, want)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.BaseURL != models.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "")

	cfg := DefaultConfig()
	cfg.BaseURL = "https://trades.example.com/"
	cfg.RequestTimeout = 45
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.BaseURL != "https://trades.example.com" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", loaded.BaseURL)
	}
	if loaded.Timeout() != 45*time.Second {
		t.Errorf("Timeout() = %v, want 45s", loaded.Timeout())
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard should round-trip")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "")

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("LoadConfig() should fail on invalid JSON")
	}
	if cfg.BaseURL != models.DefaultBaseURL {
		t.Errorf("LoadConfig() should fall back to defaults, got %q", cfg.BaseURL)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "http://10.0.0.5:8080/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:8080" {
		t.Errorf("BaseURL = %q, want env override", cfg.BaseURL)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https", func(c *Config) { c.BaseURL = "https://example.com" }, false},
		{"empty url", func(c *Config) { c.BaseURL = "  " }, true},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://example.com" }, true},
		{"missing host", func(c *Config) { c.BaseURL = "http://" }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Config{RequestTimeout: 0}
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", cfg.Timeout())
	}
	cfg.RequestTimeout = -5
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0 for negative", cfg.Timeout())
	}
}
