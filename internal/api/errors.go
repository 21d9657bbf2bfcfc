package api

import (
	"errors"
	"fmt"
)

// ErrInvalidBaseURL is returned when the client base URL cannot be used.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// HTTPStatusError is returned when the server answers with a non-2xx status.
type HTTPStatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// URL is the requested URL.
	URL string
}

// Error returns the message shown to the user, e.g. "Erro HTTP: 500".
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("Erro HTTP: %d", e.StatusCode)
}

// ServerError is returned when the server answers {"success": false}.
type ServerError struct {
	// Message is the server-provided reason, possibly empty.
	Message string
}

// Error returns the server message.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server reported failure"
	}
	return e.Message
}
