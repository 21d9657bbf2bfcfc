package model

import (
	"errors"
	"fmt"
	"strings"
)

// ReportStatus represents the lifecycle stage of a maintenance report.
// The string values match the choices accepted by the server form.
type ReportStatus string

const (
	// StatusPending indicates no work has started on the report.
	StatusPending ReportStatus = "pendente"

	// StatusInProgress indicates work (or documentation of the problem) is under way.
	StatusInProgress ReportStatus = "em_andamento"

	// StatusResolved indicates the work is complete.
	StatusResolved ReportStatus = "resolvido"
)

// ErrInvalidStatus is returned when text does not name one of the known statuses.
var ErrInvalidStatus = errors.New("invalid report status")

// AllStatuses returns the statuses in lifecycle order.
func AllStatuses() []ReportStatus {
	return []ReportStatus{StatusPending, StatusInProgress, StatusResolved}
}

// IsValid reports whether the status is one of the known values.
func (s ReportStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// String returns the wire value of the status.
func (s ReportStatus) String() string {
	return string(s)
}

// Label returns the human-readable label shown in the status dropdown.
func (s ReportStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusInProgress:
		return "Em Andamento"
	case StatusResolved:
		return "Resolvido"
	default:
		return "Desconhecido"
	}
}

// Color returns the Bootstrap contextual color name for the status.
func (s ReportStatus) Color() string {
	switch s {
	case StatusInProgress:
		return "warning"
	case StatusResolved:
		return "success"
	default:
		return "secondary"
	}
}

// ParseReportStatus converts text into a ReportStatus.
// Leading and trailing whitespace is ignored and matching is case-insensitive.
// Any other free text is rejected with ErrInvalidStatus.
func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
