package form

import (
	"github.com/nao1215/relatorio/internal/media"
	"github.com/nao1215/relatorio/internal/model"
	"github.com/nao1215/relatorio/internal/status"
)

// File field names of the report form.
const (
	// FieldMainImage is the main evidence image.
	FieldMainImage = "imagem_principal"

	// FieldSecondaryImage is used for every additional image.
	FieldSecondaryImage = "imagem_secundaria"
)

// ReportForm is the state of the report create/edit form.
// It is not safe for concurrent use.
type ReportForm struct {
	progress        int
	mainImage       string
	secondaryImages []string
	existingImages  int
	status          model.ReportStatus
}

// NewReportForm returns a form with the given initial progress, clamped to
// [0,100], and no images.
func NewReportForm(progress int) *ReportForm {
	f := &ReportForm{}
	f.SetProgress(progress)
	return f
}

// SetProgress handles a slider change.
func (f *ReportForm) SetProgress(progress int) {
	f.progress = status.ClampProgress(progress)
	f.recompute()
}

// AttachMainImage selects the main image. An empty path clears it.
func (f *ReportForm) AttachMainImage(path string) {
	f.mainImage = path
	f.recompute()
}

// AttachSecondaryImage adds additional images. Empty paths are ignored.
func (f *ReportForm) AttachSecondaryImage(paths ...string) {
	for _, p := range paths {
		if p != "" {
			f.secondaryImages = append(f.secondaryImages, p)
		}
	}
	f.recompute()
}

// SetExistingImages records how many saved images the page showed in edit mode.
func (f *ReportForm) SetExistingImages(n int) {
	f.existingImages = max(0, n)
	f.recompute()
}

// recompute re-derives the status after an input event.
func (f *ReportForm) recompute() {
	f.status = status.Derive(f.progress, f.HasImages()).Status
}

// Progress returns the current progress value.
func (f *ReportForm) Progress() int {
	return f.progress
}

// Status returns the value of the status field.
func (f *ReportForm) Status() model.ReportStatus {
	return f.status
}

// HasImages reports image presence: a main image, any secondary image, or
// saved images shown in edit mode.
func (f *ReportForm) HasImages() bool {
	return f.mainImage != "" || len(f.secondaryImages) > 0 || f.existingImages > 0
}

// Attachments returns the newly attached files in form order.
func (f *ReportForm) Attachments() []media.Attachment {
	out := make([]media.Attachment, 0, len(f.secondaryImages)+1)
	if f.mainImage != "" {
		out = append(out, media.Attachment{Path: f.mainImage, Field: FieldMainImage})
	}
	for _, p := range f.secondaryImages {
		out = append(out, media.Attachment{Path: p, Field: FieldSecondaryImage})
	}
	return out
}

// View renders the badge, tooltip, status field feedback and image tips.
func (f *ReportForm) View() *model.StatusPreview {
	return status.Preview(f.progress, f.HasImages())
}
