// Package model defines the data structures shared across relatorio.
//
// This package contains the following main types:
//   - ReportStatus: The lifecycle stage of a maintenance report
//   - Equipment: An equipment entry returned by the location lookup endpoint
//   - UpdateResponse: The JSON body returned when an update is submitted
//   - StatusPreview: The derived status and badge data shown for a form
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The status, form, api and report packages all need these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// for decoding server responses.
package model
