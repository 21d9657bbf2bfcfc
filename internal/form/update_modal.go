package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/relatorio/internal/api"
	"github.com/nao1215/relatorio/internal/model"
	"github.com/nao1215/relatorio/internal/page"
	"github.com/nao1215/relatorio/internal/status"
)

// User-facing messages of the update modal.
const (
	MsgDescriptionRequired = "A descrição da atualização é obrigatória."
	MsgSaved               = "Relatório atualizado com sucesso!"
	MsgSaveFailedDefault   = "Erro ao salvar atualização"
	msgServerErrorPrefix   = "Erro: "
	msgRequestErrorPrefix  = "Erro ao processar solicitação: "
)

var (
	// ErrDescriptionRequired is returned by Save when the description is blank.
	ErrDescriptionRequired = errors.New(MsgDescriptionRequired)

	// ErrNoProgress is returned when a page's update form has no usable
	// progress value to seed the slider with.
	ErrNoProgress = errors.New("update form has no usable progress value")
)

// Submitter posts an update form.
type Submitter interface {
	SubmitUpdate(ctx context.Context, actionURL string, sub *api.Submission) (*model.UpdateResponse, error)
}

// UpdateModal is the state of the "new update" dialog.
// It is not safe for concurrent use.
type UpdateModal struct {
	actionURL   string
	referer     string
	hidden      map[string]string
	progress    int
	description string
	images      []api.File

	open    bool
	saving  bool
	saved   bool
	reload  bool
	message string

	logger *slog.Logger
}

// NewUpdateModal returns a closed modal that posts to actionURL.
func NewUpdateModal(actionURL string, progress int, logger *slog.Logger) *UpdateModal {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateModal{
		actionURL: actionURL,
		hidden:    map[string]string{},
		progress:  status.ClampProgress(progress),
		logger:    logger,
	}
}

// NewUpdateModalFromPage builds a modal from the update form of a fetched
// page: its action URL, hidden fields and initial slider value.
// A missing, unparsable or out-of-range slider value is ErrNoProgress.
func NewUpdateModalFromPage(pageURL string, f *page.Form, logger *slog.Logger) (*UpdateModal, error) {
	progress, err := f.IntValue(page.FieldProgressNew)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoProgress, err)
	}
	if err := status.ValidateProgress(progress); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoProgress, err)
	}
	m := NewUpdateModal(f.Action, progress, logger)
	m.referer = pageURL
	m.hidden = f.HiddenFields()
	return m, nil
}

// Open shows the modal and clears the previous message.
func (m *UpdateModal) Open() {
	m.open = true
	m.message = ""
	m.saved = false
}

// Close hides the modal.
func (m *UpdateModal) Close() {
	m.open = false
}

// SetProgress handles the modal slider.
func (m *UpdateModal) SetProgress(progress int) {
	m.progress = status.ClampProgress(progress)
}

// SetDescription sets the update description.
func (m *UpdateModal) SetDescription(s string) {
	m.description = s
}

// SetActionURL overrides the form action.
func (m *UpdateModal) SetActionURL(u string) {
	m.actionURL = u
}

// AttachImage adds an image to the update.
func (m *UpdateModal) AttachImage(field, path string) {
	m.images = append(m.images, api.File{Field: field, Path: path})
}

// ActionURL returns the URL the update is posted to.
func (m *UpdateModal) ActionURL() string { return m.actionURL }

// Progress returns the slider value.
func (m *UpdateModal) Progress() int { return m.progress }

// IsOpen reports whether the modal is shown.
func (m *UpdateModal) IsOpen() bool { return m.open }

// Saving reports whether the save control is disabled by a request in flight.
func (m *UpdateModal) Saving() bool { return m.saving }

// Saved reports whether the last save was accepted.
func (m *UpdateModal) Saved() bool { return m.saved }

// ReloadRequested reports whether the page should be reloaded.
func (m *UpdateModal) ReloadRequested() bool { return m.reload }

// Message returns the last message shown to the user.
func (m *UpdateModal) Message() string { return m.message }

// Preview renders the status preview of the modal. The modal has no image
// inputs, so the preview ignores images and shows the status label.
func (m *UpdateModal) Preview() *model.StatusPreview {
	res := status.DeriveModal(m.progress)
	return &model.StatusPreview{
		Progress:     m.progress,
		Status:       res.Status,
		BadgeText:    res.Status.Label(),
		DisplayClass: res.DisplayClass,
		BorderClass:  res.BorderClass(),
		Tooltip:      res.Tooltip,
	}
}

// Save validates and posts the update.
//
// A blank description fails with ErrDescriptionRequired before any request.
// The description is posted as entered; trimming only decides blankness.
// While the request is in flight Saving reports true. On acceptance the
// modal closes and a reload is requested; on rejection or request failure it
// stays open. The returned error mirrors Message.
func (m *UpdateModal) Save(ctx context.Context, submitter Submitter) error {
	if strings.TrimSpace(norm.NFC.String(m.description)) == "" {
		m.message = MsgDescriptionRequired
		return ErrDescriptionRequired
	}

	m.saving = true
	defer func() { m.saving = false }()

	fields := maps.Clone(m.hidden)
	if fields == nil {
		fields = map[string]string{}
	}
	fields[page.FieldProgressNew] = strconv.Itoa(m.progress)
	fields[page.FieldUpdateDescription] = m.description

	resp, err := submitter.SubmitUpdate(ctx, m.actionURL, &api.Submission{
		Fields:  fields,
		Files:   m.images,
		Referer: m.referer,
	})
	if err != nil {
		m.message = msgRequestErrorPrefix + err.Error()
		m.logger.Error("update request failed", "action", m.actionURL, "error", err)
		return err
	}

	if !resp.Success {
		reason := resp.Message
		if reason == "" {
			reason = MsgSaveFailedDefault
		}
		m.message = msgServerErrorPrefix + reason
		m.logger.Warn("update rejected", "action", m.actionURL, "message", resp.Message)
		return &api.ServerError{Message: reason}
	}

	m.saved = true
	m.open = false
	m.reload = true
	m.message = MsgSaved
	return nil
}

// Result summarizes the last save attempt.
func (m *UpdateModal) Result() *model.UpdateResult {
	return &model.UpdateResult{
		ActionURL: m.actionURL,
		Progress:  m.progress,
		Status:    status.DeriveModal(m.progress).Status,
		Success:   m.saved,
		Message:   m.message,
	}
}
