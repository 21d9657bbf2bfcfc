package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/relatorio/internal/model"
)

// Badge colors matching the web page classes.
var badgeColors = map[string]lipgloss.Color{
	"bg-secondary": lipgloss.Color("#6c757d"),
	"bg-info":      lipgloss.Color("#0dcaf0"),
	"bg-warning":   lipgloss.Color("#ffc107"),
	"bg-success":   lipgloss.Color("#198754"),
}

// SimpleWriter outputs human-readable text reports.
//
// Design decision: Badges are styled with lipgloss through a renderer bound
// to the output, so colors appear on a terminal and vanish when the output
// is redirected to a file or pipe.
type SimpleWriter struct {
	baseWriter

	renderer *lipgloss.Renderer

	// verbose enables image metadata in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		renderer:   lipgloss.NewRenderer(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// badge renders text in the color of a display class.
func (w *SimpleWriter) badge(text, class string) string {
	style := w.renderer.NewStyle().Bold(true).Padding(0, 1)
	if c, ok := badgeColors[class]; ok {
		style = style.Background(c)
		if class == "bg-warning" || class == "bg-info" {
			style = style.Foreground(lipgloss.Color("#000000"))
		} else {
			style = style.Foreground(lipgloss.Color("#ffffff"))
		}
	}
	return style.Render(text)
}

// WritePreview outputs the status preview in human-readable format.
func (w *SimpleWriter) WritePreview(p *model.StatusPreview) (int, error) {
	var sb strings.Builder

	writeTitle(&sb, "STATUS PREVIEW")

	fmt.Fprintf(&sb, "Progress:  %s\n", w.badge(p.BadgeText, p.DisplayClass))
	fmt.Fprintf(&sb, "Status:    %s (%s)\n", p.Status.Label(), p.Status)
	fmt.Fprintf(&sb, "Tooltip:   %s\n", p.Tooltip)
	fmt.Fprintf(&sb, "Field:     %s\n", p.BorderClass)
	fmt.Fprintf(&sb, "Images:    %s\n", yesNo(p.HasImages))

	if len(p.Tips) > 0 {
		sb.WriteString("\n")
		for _, tip := range p.Tips {
			fmt.Fprintf(&sb, "  * %s\n", tip)
		}
	}

	if len(p.Images) > 0 {
		sb.WriteString("\nAttachments:\n")
		for _, img := range p.Images {
			w.writeImage(&sb, img)
		}
	}

	return io.WriteString(w.output, sb.String())
}

// writeImage writes one inspected attachment.
func (w *SimpleWriter) writeImage(sb *strings.Builder, img model.ImageInfo) {
	if img.Error != "" {
		fmt.Fprintf(sb, "  [!] %s: %s\n", img.Path, img.Error)
		return
	}

	fmt.Fprintf(sb, "  - %s (%s, %s, %d bytes)", img.Path, img.Field, img.ContentType, img.Size)
	if img.HasGPS {
		sb.WriteString(" [GPS]")
	}
	sb.WriteString("\n")

	if !w.verbose {
		return
	}
	for _, k := range sortedKeys(img.Metadata) {
		fmt.Fprintf(sb, "      %s: %s\n", k, img.Metadata[k])
	}
}

// WriteEquipment outputs the equipment of each location.
func (w *SimpleWriter) WriteEquipment(results []model.LocationEquipment) (int, error) {
	var sb strings.Builder

	writeTitle(&sb, "EQUIPMENT BY LOCATION")

	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		if r.Error != "" {
			fmt.Fprintf(&sb, "Location %d: lookup failed: %s\n", r.LocalID, r.Error)
			continue
		}
		fmt.Fprintf(&sb, "Location %d: %d item(s)\n", r.LocalID, len(r.Equipment))
		for _, e := range r.Equipment {
			fmt.Fprintf(&sb, "  [%d] %s\n", e.ID, e.Label())
		}
	}

	return io.WriteString(w.output, sb.String())
}

// WriteUpdate outputs the result of an update save.
func (w *SimpleWriter) WriteUpdate(r *model.UpdateResult) (int, error) {
	var sb strings.Builder

	writeTitle(&sb, "REPORT UPDATE")

	fmt.Fprintf(&sb, "Action:    %s\n", r.ActionURL)
	fmt.Fprintf(&sb, "Progress:  %d%% (%s)\n", r.Progress, r.Status.Label())
	if r.Success {
		fmt.Fprintf(&sb, "Result:    %s\n", w.badge("OK", "bg-success"))
	} else {
		fmt.Fprintf(&sb, "Result:    %s\n", w.badge("FAILED", "bg-secondary"))
	}
	fmt.Fprintf(&sb, "Message:   %s\n", r.Message)

	if len(r.Images) > 0 {
		sb.WriteString("\nAttachments:\n")
		for _, img := range r.Images {
			w.writeImage(&sb, img)
		}
	}

	return io.WriteString(w.output, sb.String())
}

// writeTitle writes a title underlined to its width.
func writeTitle(sb *strings.Builder, title string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
	sb.WriteString("\n\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
