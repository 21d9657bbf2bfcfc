// Package config provides configuration structures and utilities for relatorio.
// It defines the server location, HTTP client settings, per-host cookies and
// headers, and report output preferences.
package config
