package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the local server", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "http://127.0.0.1:8000" {
			t.Errorf("expected BaseURL to be 'http://127.0.0.1:8000', got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("no proxy by default", func(t *testing.T) {
		t.Parallel()
		if cfg.ProxyAddress != "" {
			t.Errorf("expected empty ProxyAddress, got %q", cfg.ProxyAddress)
		}
	})

	t.Run("default size limits", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize 5MB, got %d", cfg.MaxBodySize)
		}
		if cfg.MaxImageSize != 10*1024*1024 {
			t.Errorf("expected MaxImageSize 10MB, got %d", cfg.MaxImageSize)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"valid config returns nil", func(*Config) {}, nil},
		{"https base URL is valid", func(c *Config) { c.BaseURL = "https://manutencao.example.com" }, nil},
		{"empty base URL", func(c *Config) { c.BaseURL = "" }, ErrInvalidBaseURL},
		{"relative base URL", func(c *Config) { c.BaseURL = "/reports" }, ErrInvalidBaseURL},
		{"ftp base URL", func(c *Config) { c.BaseURL = "ftp://example.com" }, ErrInvalidBaseURL},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, ErrInvalidTimeout},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"json and markdown", func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, ErrConflictingReportFormats},
		{"json only", func(c *Config) { c.JSONReport = true }, nil},
		{"markdown only", func(c *Config) { c.MarkdownReport = true }, nil},
		{"negative body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"negative image size", func(c *Config) { c.MaxImageSize = -1 }, ErrInvalidMaxBodySize},
		{"valid proxy", func(c *Config) { c.ProxyAddress = "127.0.0.1:1080" }, nil},
		{"proxy without port", func(c *Config) { c.ProxyAddress = "127.0.0.1" }, ErrInvalidProxyAddress},
		{"proxy without host", func(c *Config) { c.ProxyAddress = ":1080" }, ErrInvalidProxyAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestFileGetSiteConfig tests the GetSiteConfig method.
func TestFileGetSiteConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when host not found", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: SiteConfig{Cookie: "sessionid=default"},
			Sites:    map[string]SiteConfig{},
		}

		cfg := file.GetSiteConfig("unknown.example.com")
		if cfg.Cookie != "sessionid=default" {
			t.Errorf("expected default cookie, got %q", cfg.Cookie)
		}
	})

	t.Run("site values override defaults", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: SiteConfig{
				Cookie:    "sessionid=default",
				CSRFToken: "default-token",
				Headers:   map[string]string{"Accept-Language": "pt-BR"},
			},
			Sites: map[string]SiteConfig{
				"manutencao.example.com": {
					Cookie:  "sessionid=site",
					Headers: map[string]string{"X-Tenant": "1"},
				},
			},
		}

		cfg := file.GetSiteConfig("manutencao.example.com")
		if cfg.Cookie != "sessionid=site" {
			t.Errorf("expected site cookie, got %q", cfg.Cookie)
		}
		if cfg.CSRFToken != "default-token" {
			t.Errorf("expected default CSRF token, got %q", cfg.CSRFToken)
		}
		if cfg.Headers["Accept-Language"] != "pt-BR" || cfg.Headers["X-Tenant"] != "1" {
			t.Errorf("expected merged headers, got %v", cfg.Headers)
		}
	})

	t.Run("merging does not mutate defaults", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: SiteConfig{Headers: map[string]string{"A": "1"}},
			Sites: map[string]SiteConfig{
				"host": {Headers: map[string]string{"B": "2"}},
			},
		}

		_ = file.GetSiteConfig("host")
		if _, ok := file.Defaults.Headers["B"]; ok {
			t.Error("defaults were modified by merge")
		}
	})

	t.Run("nil sites map", func(t *testing.T) {
		t.Parallel()

		file := &File{Defaults: SiteConfig{CSRFToken: "tok"}}
		if cfg := file.GetSiteConfig("any"); cfg.CSRFToken != "tok" {
			t.Errorf("expected default token, got %q", cfg.CSRFToken)
		}
	})
}

func TestConfigSiteConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if got := cfg.SiteConfig("http://example.com/"); got.Cookie != "" {
		t.Errorf("expected empty site config without file, got %+v", got)
	}

	cfg.SiteConfigs = &File{
		Sites: map[string]SiteConfig{"example.com:8443": {Cookie: "sessionid=x"}},
	}
	if got := cfg.SiteConfig("https://example.com:8443/reports/1/"); got.Cookie != "sessionid=x" {
		t.Errorf("expected host:port match, got %+v", got)
	}
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.relatorio")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".relatorio")
		content := `baseURL: "https://manutencao.example.com"
defaults:
  cookie: "sessionid=abc"
sites:
  manutencao.example.com:
    csrfToken: "tok123"
    headers:
      Accept-Language: "pt-BR"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://manutencao.example.com" {
			t.Errorf("unexpected base URL %q", cfg.BaseURL)
		}
		if cfg.Defaults.Cookie != "sessionid=abc" {
			t.Errorf("expected default cookie, got %q", cfg.Defaults.Cookie)
		}
		site, ok := cfg.Sites["manutencao.example.com"]
		if !ok {
			t.Fatal("expected site entry")
		}
		if site.CSRFToken != "tok123" {
			t.Errorf("expected csrf token, got %q", site.CSRFToken)
		}
		if site.Headers["Accept-Language"] != "pt-BR" {
			t.Errorf("expected Accept-Language header")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".relatorio")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Sites map", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".relatorio")
		if err := os.WriteFile(configPath, []byte("defaults: {}\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

func TestXDGConfigFile(t *testing.T) {
	t.Parallel()

	path := XDGConfigFile()
	if !strings.HasSuffix(path, filepath.Join(AppName, "config.yaml")) {
		t.Errorf("unexpected XDG config file %q", path)
	}
	if XDGConfigDir() == "" {
		t.Error("expected non-empty XDG config dir")
	}
}
