package report

import (
	"io"

	"github.com/nao1215/relatorio/internal/model"
)

// Writer defines the interface for report output.
// Implementations write results in various formats.
type Writer interface {
	// WritePreview outputs the derived status of a report form.
	WritePreview(preview *model.StatusPreview) (int, error)

	// WriteEquipment outputs the equipment found for each location.
	WriteEquipment(results []model.LocationEquipment) (int, error)

	// WriteUpdate outputs the result of an update modal save.
	WriteUpdate(result *model.UpdateResult) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because each format renders the value itself;
// the same bytes cannot be copied to every destination.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WritePreview outputs the preview to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) WritePreview(preview *model.StatusPreview) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WritePreview(preview) })
}

// WriteEquipment outputs the lookups to all configured Writers.
func (m *MultiWriter) WriteEquipment(results []model.LocationEquipment) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteEquipment(results) })
}

// WriteUpdate outputs the update result to all configured Writers.
func (m *MultiWriter) WriteUpdate(result *model.UpdateResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteUpdate(result) })
}

// each calls fn for every writer and sums the bytes written.
func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
