package report

import (
	"io"
	"slices"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/relatorio/internal/model"
)

// MarkdownWriter outputs reports in Markdown format, for pasting into
// maintenance tickets.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WritePreview outputs the status preview in Markdown format.
func (w *MarkdownWriter) WritePreview(p *model.StatusPreview) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Status Preview")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Progress", p.BadgeText},
			{"Status", p.Status.Label() + " (`" + p.Status.String() + "`)"},
			{"Badge", "`" + p.DisplayClass + "`"},
			{"Tooltip", p.Tooltip},
			{"Images", yesNo(p.HasImages)},
		},
	})
	md.PlainText("")

	if len(p.Tips) > 0 {
		md.Tip(p.Tips[0])
		md.PlainText("")
		md.BulletList(p.Tips[1:]...)
		md.PlainText("")
	}

	if len(p.Images) > 0 {
		w.writeImages(md, p.Images)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeImages writes the inspected attachments table and GPS warning.
func (w *MarkdownWriter) writeImages(md *markdown.Markdown, images []model.ImageInfo) {
	md.H2("Attachments")
	md.PlainText("")

	rows := make([][]string, 0, len(images))
	withGPS := 0
	for _, img := range images {
		if img.HasGPS {
			withGPS++
		}
		note := "-"
		if img.Error != "" {
			note = img.Error
		} else if camera := img.Metadata["Model"]; camera != "" {
			note = camera
		}
		rows = append(rows, []string{
			"`" + img.Path + "`",
			img.Field,
			dash(img.ContentType),
			strconv.FormatInt(img.Size, 10),
			note,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Field", "Type", "Bytes", "Notes"},
		Rows:   rows,
	})
	md.PlainText("")

	if withGPS > 0 {
		md.Warningf("%d attachment(s) carry GPS coordinates in their EXIF metadata.", withGPS)
		md.PlainText("")
	}
}

// WriteEquipment outputs the equipment of each location in Markdown format.
func (w *MarkdownWriter) WriteEquipment(results []model.LocationEquipment) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Equipment by Location")
	md.PlainText("")

	byType := map[string]uint64{}
	for _, r := range results {
		md.H2("Location " + strconv.Itoa(r.LocalID))
		md.PlainText("")

		if r.Error != "" {
			md.Cautionf("Lookup failed: %s", r.Error)
			md.PlainText("")
			continue
		}
		if len(r.Equipment) == 0 {
			md.Note("No equipment registered at this location.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, 0, len(r.Equipment))
		for _, e := range r.Equipment {
			byType[e.Tipo]++
			rows = append(rows, []string{strconv.Itoa(e.ID), e.Nome, e.Codigo, e.Tipo})
		}
		md.Table(markdown.TableSet{
			Header: []string{"ID", "Name", "Code", "Type"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(byType) > 1 {
		w.writePieChart(md, byType)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writePieChart writes a mermaid pie chart of equipment types.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, byType map[string]uint64) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Equipment by Type"),
		piechart.WithShowData(true),
	)

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		chart.LabelAndIntValue(t, byType[t])
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteUpdate outputs the update result in Markdown format.
func (w *MarkdownWriter) WriteUpdate(r *model.UpdateResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Report Update")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Action", "`" + r.ActionURL + "`"},
			{"Progress", strconv.Itoa(r.Progress) + "%"},
			{"Status", r.Status.Label()},
		},
	})
	md.PlainText("")

	if r.Success {
		md.Tip(r.Message)
	} else {
		md.Cautionf("%s", r.Message)
	}
	md.PlainText("")

	if len(r.Images) > 0 {
		w.writeImages(md, r.Images)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [relatorio](https://github.com/nao1215/relatorio)*")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
