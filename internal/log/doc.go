// Package log provides logging with automatic redaction of session data,
// built on top of the standard slog package.
//
// relatorio forwards browser session cookies and CSRF tokens copied from the
// configuration file. Those values must never reach the terminal or a shared
// log file, even with --verbose.
//
// # Redaction
//
// The SecureHandler masks:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-CSRFToken)
//   - Django session and CSRF identifiers (sessionid, csrftoken, csrfmiddlewaretoken)
//   - values that look like bearer tokens, JWTs or long opaque tokens
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("submitting update",
//	    "url", actionURL,
//	    "csrfmiddlewaretoken", token, // logged as ***REDACTED***
//	)
package log
