package config

import (
	"net"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the address of a locally running report server.
	// The development server of the web application listens here.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultTimeout bounds each HTTP request. Uploading several photos over
	// a slow link is the slowest operation the tool performs.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of simultaneous equipment lookups or
	// image inspections.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "relatorio"

	// DefaultUserAgent identifies relatorio in HTTP requests.
	DefaultUserAgent = "relatorio/1.0 (+https://github.com/nao1215/relatorio)"

	// DefaultMaxBodySize limits the size of response bodies read from the server.
	// 5MB is far above any JSON reply or rendered form page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxImageSize limits the size of an image attachment.
	DefaultMaxImageSize = 10 * 1024 * 1024 // 10MB
)

// Config holds all configuration options for relatorio.
// It is populated from defaults, the optional configuration file and CLI
// flags, and passed through the application rather than kept in globals.
type Config struct {
	// BaseURL is the root URL of the report server, e.g. "https://manutencao.example.com".
	// API paths such as /reports/api/... are resolved against it.
	BaseURL string

	// Timeout is the timeout for each HTTP request.
	Timeout time.Duration

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	// When empty, connections are made directly.
	ProxyAddress string

	// Concurrency is the number of lookups or image inspections run at once.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the default locations (see FindConfigFile).
	ConfigFilePath string

	// SiteConfigs holds per-host configurations loaded from the config file.
	SiteConfigs *File

	// JSONReport enables JSON output instead of human-readable text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of human-readable text.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. When set, output is written to
	// this file instead of stdout.
	ReportFile string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// MaxImageSize is the maximum size in bytes of an image attachment.
	MaxImageSize int64
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		Concurrency:  DefaultConcurrency,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		MaxImageSize: DefaultMaxImageSize,
	}
}

// XDGConfigDir returns the XDG config directory for relatorio.
// On Linux: ~/.config/relatorio
// On macOS: ~/Library/Application Support/relatorio
// On Windows: %APPDATA%\relatorio
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the configuration file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinel errors.
func (c *Config) Validate() error {
	if !isValidBaseURL(c.BaseURL) {
		return ErrInvalidBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 || c.MaxImageSize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.ProxyAddress != "" {
		host, port, err := net.SplitHostPort(c.ProxyAddress)
		if err != nil || host == "" || port == "" {
			return ErrInvalidProxyAddress
		}
	}

	return nil
}

// SiteConfig returns the merged settings for the host of rawURL.
// Unknown hosts and unparsable URLs get the defaults.
func (c *Config) SiteConfig(rawURL string) SiteConfig {
	if c.SiteConfigs == nil {
		return SiteConfig{}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return c.SiteConfigs.Defaults
	}
	return c.SiteConfigs.GetSiteConfig(u.Host)
}

// isValidBaseURL reports whether s is an absolute http(s) URL with a host.
func isValidBaseURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
