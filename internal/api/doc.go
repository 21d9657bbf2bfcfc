// Package api is the HTTP client for the report server.
//
// It covers the three requests the report form makes:
//   - GET /reports/api/equipamentos-por-local/{localId}/ to fill the
//     equipment dropdown of a location
//   - GET of the report page, to read the rendered update form
//   - POST of the update form (multipart, X-Requested-With: XMLHttpRequest)
//
// Session cookies, CSRF tokens and extra headers come from the configuration
// file; the client never authenticates on its own.
package api
