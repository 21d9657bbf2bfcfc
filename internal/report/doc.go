// Package report renders form previews, equipment lookups and update results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output with colored badges
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for tickets and documentation
//
// Design decision: Writers only format data from the model package; they do
// not derive anything. The status a writer prints is always the one the form
// state produced, so every format agrees.
package report
