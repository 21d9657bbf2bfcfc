package config

import "maps"

// SiteConfig holds settings applied to requests sent to a single host.
// The report server uses session cookies and CSRF protection, so these
// are the values a user copies from an authenticated browser session.
type SiteConfig struct {
	// Cookie is the Cookie header to send, e.g. "sessionid=abc; csrftoken=xyz".
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// CSRFToken is sent as csrfmiddlewaretoken when the form page does not
	// provide one, and as the X-CSRFToken header.
	CSRFToken string `yaml:"csrfToken,omitempty"`
}

// File represents the structure of the .relatorio configuration file.
type File struct {
	// BaseURL overrides the default server address.
	// The --base-url flag takes precedence over this value.
	BaseURL string `yaml:"baseURL,omitempty"`

	// Sites maps host names ("host" or "host:port") to their settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains settings applied to all hosts unless overridden.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a host, merged with defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = maps.Clone(cf.Defaults.Headers)
	}

	siteConfig, ok := cf.Sites[host]
	if !ok {
		return result
	}

	if siteConfig.Cookie != "" {
		result.Cookie = siteConfig.Cookie
	}
	if siteConfig.CSRFToken != "" {
		result.CSRFToken = siteConfig.CSRFToken
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(siteConfig.Headers))
		}
		maps.Copy(result.Headers, siteConfig.Headers)
	}

	return result
}
