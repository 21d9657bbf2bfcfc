package status

import (
	"errors"
	"fmt"

	"github.com/nao1215/relatorio/internal/model"
)

// Progress bounds. Both bounds are status transition points.
const (
	MinProgress = 0
	MaxProgress = 100
)

// Badge color classes.
const (
	ClassSecondary = "bg-secondary"
	ClassInfo      = "bg-info"
	ClassWarning   = "bg-warning"
	ClassSuccess   = "bg-success"
)

// ErrProgressOutOfRange is returned by ValidateProgress for values outside [0,100].
var ErrProgressOutOfRange = errors.New("progress out of range: must be between 0 and 100")

// Result is the outcome of a derivation: the status plus the presentation
// metadata used by the view layer.
type Result struct {
	// Status is the derived report status.
	Status model.ReportStatus

	// DisplayClass is the progress badge color class.
	DisplayClass string

	// Tooltip is the rationale text shown on the badge.
	Tooltip string
}

// rule is one row of the derivation table.
type rule struct {
	status  model.ReportStatus
	class   string
	tooltip string
}

// Rows are indexed by phase: not started, under way, complete.
var (
	rulesWithoutImages = [3]rule{
		{model.StatusPending, ClassSecondary, "Não iniciado"},
		{model.StatusInProgress, ClassWarning, "Em progresso"},
		{model.StatusResolved, ClassSuccess, "Concluído"},
	}
	rulesWithImages = [3]rule{
		{model.StatusInProgress, ClassInfo, "Documentando problema"},
		{model.StatusInProgress, ClassWarning, "Trabalhando na solução"},
		{model.StatusResolved, ClassSuccess, "Trabalho concluído e documentado"},
	}
)

// Derive returns the status and badge metadata for a progress value and
// image presence. progress must already be within [0,100]; callers validate
// or clamp it first.
func Derive(progress int, hasImages bool) Result {
	table := rulesWithoutImages
	if hasImages {
		table = rulesWithImages
	}

	r := table[phase(progress)]
	return Result{
		Status:       r.status,
		DisplayClass: r.class,
		Tooltip:      r.tooltip,
	}
}

// DeriveModal returns the status previewed by the update modal.
// The modal has no image inputs, so the rules without images apply.
func DeriveModal(progress int) Result {
	return Derive(progress, false)
}

// phase maps a progress value onto a row of the rule table.
func phase(progress int) int {
	switch {
	case progress <= MinProgress:
		return 0
	case progress >= MaxProgress:
		return 2
	default:
		return 1
	}
}

// BorderClass returns the feedback class for the status dropdown.
func (r Result) BorderClass() string {
	switch r.Status {
	case model.StatusPending:
		return "border-secondary"
	case model.StatusInProgress:
		return "border-warning"
	default:
		return "border-success"
	}
}

// BadgeText formats a progress value as shown in the badge.
func BadgeText(progress int) string {
	return fmt.Sprintf("%d%%", progress)
}

// ValidateProgress returns ErrProgressOutOfRange when progress is outside [0,100].
func ValidateProgress(progress int) error {
	if progress < MinProgress || progress > MaxProgress {
		return fmt.Errorf("%w: got %d", ErrProgressOutOfRange, progress)
	}
	return nil
}

// ClampProgress limits progress to [0,100], the way a range slider does.
func ClampProgress(progress int) int {
	return max(MinProgress, min(MaxProgress, progress))
}

// ImageTip returns the hint lines shown while the image-aware rules apply.
func ImageTip() []string {
	return []string{
		"Status Inteligente Ativado: como você tem imagens, o status será ajustado automaticamente",
		"0% + Fotos: Em Andamento (documentando problema)",
		"1-99% + Fotos: Em Andamento (trabalhando na solução)",
		"100% + Fotos: Resolvido (trabalho concluído e documentado)",
	}
}

// Preview builds the complete status preview for a form state.
func Preview(progress int, hasImages bool) *model.StatusPreview {
	res := Derive(progress, hasImages)
	p := &model.StatusPreview{
		Progress:     progress,
		HasImages:    hasImages,
		Status:       res.Status,
		BadgeText:    BadgeText(progress),
		DisplayClass: res.DisplayClass,
		BorderClass:  res.BorderClass(),
		Tooltip:      res.Tooltip,
	}
	if hasImages {
		p.Tips = ImageTip()
	}
	return p
}
