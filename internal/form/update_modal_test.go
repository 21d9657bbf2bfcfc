package form

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nao1215/relatorio/internal/api"
	"github.com/nao1215/relatorio/internal/model"
	"github.com/nao1215/relatorio/internal/page"
)

type fakeSubmitter struct {
	resp *model.UpdateResponse
	err  error

	modal       *UpdateModal
	calls       int
	savingSeen  bool
	lastAction  string
	lastSubmits *api.Submission
}

func (f *fakeSubmitter) SubmitUpdate(_ context.Context, actionURL string, sub *api.Submission) (*model.UpdateResponse, error) {
	f.calls++
	f.lastAction = actionURL
	f.lastSubmits = sub
	if f.modal != nil {
		f.savingSeen = f.modal.Saving()
	}
	return f.resp, f.err
}

func TestUpdateModalSave(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		resp        *model.UpdateResponse
		err         error
		wantErr     bool
		wantMessage string
		wantOpen    bool
		wantReload  bool
		wantCalls   int
	}{
		{
			name:        "accepted",
			description: "Troca do reator",
			resp:        &model.UpdateResponse{Success: true},
			wantMessage: "Relatório atualizado com sucesso!",
			wantOpen:    false,
			wantReload:  true,
			wantCalls:   1,
		},
		{
			name:        "rejected with message",
			description: "Troca do reator",
			resp:        &model.UpdateResponse{Success: false, Message: "bad"},
			wantErr:     true,
			wantMessage: "Erro: bad",
			wantOpen:    true,
			wantCalls:   1,
		},
		{
			name:        "rejected without message",
			description: "Troca do reator",
			resp:        &model.UpdateResponse{Success: false},
			wantErr:     true,
			wantMessage: "Erro: Erro ao salvar atualização",
			wantOpen:    true,
			wantCalls:   1,
		},
		{
			name:        "http error",
			description: "Troca do reator",
			err:         &api.HTTPStatusError{StatusCode: 500},
			wantErr:     true,
			wantMessage: "Erro ao processar solicitação: Erro HTTP: 500",
			wantOpen:    true,
			wantCalls:   1,
		},
		{
			name:        "transport error",
			description: "Troca do reator",
			err:         fmt.Errorf("dial tcp: connection refused"),
			wantErr:     true,
			wantMessage: "Erro ao processar solicitação: dial tcp: connection refused",
			wantOpen:    true,
			wantCalls:   1,
		},
		{
			name:        "blank description",
			description: " \n\t ",
			wantErr:     true,
			wantMessage: "A descrição da atualização é obrigatória.",
			wantOpen:    true,
			wantCalls:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewUpdateModal("/reports/12/atualizar/", 60, discardLogger())
			m.Open()
			m.SetDescription(tt.description)

			sub := &fakeSubmitter{resp: tt.resp, err: tt.err, modal: m}
			err := m.Save(context.Background(), sub)

			if (err != nil) != tt.wantErr {
				t.Errorf("Save() error = %v, wantErr %v", err, tt.wantErr)
			}
			if m.Message() != tt.wantMessage {
				t.Errorf("Message() = %q, want %q", m.Message(), tt.wantMessage)
			}
			if m.IsOpen() != tt.wantOpen {
				t.Errorf("IsOpen() = %v, want %v", m.IsOpen(), tt.wantOpen)
			}
			if m.ReloadRequested() != tt.wantReload {
				t.Errorf("ReloadRequested() = %v, want %v", m.ReloadRequested(), tt.wantReload)
			}
			if sub.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", sub.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 && !sub.savingSeen {
				t.Error("save control was not disabled during the request")
			}
			if m.Saving() {
				t.Error("save control still disabled after Save returned")
			}
		})
	}
}

func TestUpdateModalSaveDescriptionRequired(t *testing.T) {
	t.Parallel()

	m := NewUpdateModal("/x/", 0, nil)
	err := m.Save(context.Background(), &fakeSubmitter{})
	if !errors.Is(err, ErrDescriptionRequired) {
		t.Errorf("Save() error = %v, want ErrDescriptionRequired", err)
	}
}

func TestUpdateModalSubmission(t *testing.T) {
	t.Parallel()

	f := &page.Form{
		ID:     "updateForm",
		Action: "http://127.0.0.1:8000/reports/12/atualizar/",
		Method: "POST",
		Fields: []page.Field{
			{Name: "csrfmiddlewaretoken", Type: "hidden", Value: "tok"},
			{Name: "progresso_novo", Type: "range", Value: "40"},
			{Name: "descricao_atualizacao", Type: "textarea"},
		},
	}
	m, err := NewUpdateModalFromPage("http://127.0.0.1:8000/reports/12/", f, discardLogger())
	if err != nil {
		t.Fatalf("NewUpdateModalFromPage() error: %v", err)
	}
	if m.Progress() != 40 {
		t.Errorf("Progress() = %d, want 40", m.Progress())
	}

	m.SetProgress(75)
	// Posted exactly as entered, decomposed accents and padding included.
	const description = "  Manutenc\u0327a\u0303o conclui\u0301da  "
	m.SetDescription(description)
	m.AttachImage("imagem", "depois.jpg")

	sub := &fakeSubmitter{resp: &model.UpdateResponse{Success: true}}
	if err := m.Save(context.Background(), sub); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if sub.lastAction != f.Action {
		t.Errorf("action = %q, want %q", sub.lastAction, f.Action)
	}
	fields := sub.lastSubmits.Fields
	if fields["csrfmiddlewaretoken"] != "tok" {
		t.Errorf("csrf field = %q", fields["csrfmiddlewaretoken"])
	}
	if fields["progresso_novo"] != "75" {
		t.Errorf("progresso_novo = %q, want 75", fields["progresso_novo"])
	}
	if fields["descricao_atualizacao"] != description {
		t.Errorf("descricao_atualizacao = %q, want %q", fields["descricao_atualizacao"], description)
	}
	if sub.lastSubmits.Referer != "http://127.0.0.1:8000/reports/12/" {
		t.Errorf("Referer = %q", sub.lastSubmits.Referer)
	}
	if len(sub.lastSubmits.Files) != 1 || sub.lastSubmits.Files[0].Path != "depois.jpg" {
		t.Errorf("Files = %+v", sub.lastSubmits.Files)
	}

	res := m.Result()
	if !res.Success || res.Status != model.StatusInProgress || res.Progress != 75 {
		t.Errorf("Result() = %+v", res)
	}
}

func TestNewUpdateModalFromPageRequiresProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields []page.Field
	}{
		{
			name:   "slider missing",
			fields: []page.Field{{Name: "csrfmiddlewaretoken", Type: "hidden", Value: "tok"}},
		},
		{
			name:   "slider not a number",
			fields: []page.Field{{Name: "progresso_novo", Type: "range", Value: "quarenta"}},
		},
		{
			name:   "slider empty",
			fields: []page.Field{{Name: "progresso_novo", Type: "range", Value: ""}},
		},
		{
			name:   "slider out of range",
			fields: []page.Field{{Name: "progresso_novo", Type: "range", Value: "140"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &page.Form{ID: "updateForm", Action: "/reports/12/atualizar/", Fields: tt.fields}
			m, err := NewUpdateModalFromPage("http://127.0.0.1:8000/reports/12/", f, discardLogger())
			if !errors.Is(err, ErrNoProgress) {
				t.Fatalf("NewUpdateModalFromPage() error = %v, want ErrNoProgress", err)
			}
			if m != nil {
				t.Errorf("NewUpdateModalFromPage() modal = %+v, want nil", m)
			}
		})
	}
}

func TestUpdateModalPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		progress  int
		wantBadge string
		wantClass string
	}{
		{0, "Pendente", "bg-secondary"},
		{50, "Em Andamento", "bg-warning"},
		{100, "Resolvido", "bg-success"},
	}

	for _, tt := range tests {
		t.Run(tt.wantBadge, func(t *testing.T) {
			t.Parallel()

			m := NewUpdateModal("/x/", tt.progress, nil)
			p := m.Preview()
			if p.BadgeText != tt.wantBadge {
				t.Errorf("BadgeText = %q, want %q", p.BadgeText, tt.wantBadge)
			}
			if p.DisplayClass != tt.wantClass {
				t.Errorf("DisplayClass = %q, want %q", p.DisplayClass, tt.wantClass)
			}
			if p.HasImages {
				t.Error("modal preview must ignore images")
			}
		})
	}
}

func TestUpdateModalOpenClearsMessage(t *testing.T) {
	t.Parallel()

	m := NewUpdateModal("/x/", 0, nil)
	_ = m.Save(context.Background(), &fakeSubmitter{}) //nolint:errcheck // only the message matters
	if m.Message() == "" {
		t.Fatal("expected validation message")
	}
	m.Open()
	if m.Message() != "" {
		t.Errorf("Message() = %q after Open, want empty", m.Message())
	}
}
