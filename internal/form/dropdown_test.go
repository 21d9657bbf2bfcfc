package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nao1215/relatorio/internal/api"
	"github.com/nao1215/relatorio/internal/model"
)

type fakeLookup struct {
	items []model.Equipment
	err   error
	calls []int
}

func (f *fakeLookup) EquipmentByLocation(_ context.Context, localID int) ([]model.Equipment, error) {
	f.calls = append(f.calls, localID)
	return f.items, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewDropdown(t *testing.T) {
	t.Parallel()

	d := NewDropdown()
	opts := d.Options()
	if len(opts) != 1 || opts[0].Value != "" || opts[0].Label != Placeholder {
		t.Errorf("Options() = %+v, want placeholder only", opts)
	}

	// Options returns a copy.
	opts[0].Label = "changed"
	if d.Options()[0].Label != Placeholder {
		t.Error("Options() exposed internal slice")
	}
}

func TestLoadEquipment(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		lookup := &fakeLookup{items: []model.Equipment{
			{ID: 3, Nome: "Projetor", Codigo: "PJ-01", Tipo: "Multimídia"},
			{ID: 9, Nome: "Ar condicionado", Codigo: "AC-2", Tipo: "Climatização"},
		}}
		d := NewDropdown()

		if err := LoadEquipment(context.Background(), lookup, d, "7", discardLogger()); err != nil {
			t.Fatalf("LoadEquipment() error: %v", err)
		}
		opts := d.Options()
		if len(opts) != 3 {
			t.Fatalf("len(Options()) = %d, want 3", len(opts))
		}
		if opts[0].Label != Placeholder {
			t.Errorf("first option = %+v, want placeholder", opts[0])
		}
		if opts[1].Value != "3" || opts[1].Label != "Projetor (PJ-01) - Multimídia" {
			t.Errorf("option 1 = %+v", opts[1])
		}
		if items := d.Items(); len(items) != 2 || items[1].ID != 9 {
			t.Errorf("Items() = %+v", items)
		}
		if len(lookup.calls) != 1 || lookup.calls[0] != 7 {
			t.Errorf("calls = %v, want [7]", lookup.calls)
		}
	})

	t.Run("server failure keeps placeholder", func(t *testing.T) {
		t.Parallel()

		lookup := &fakeLookup{err: &api.ServerError{Message: "x"}}
		d := NewDropdown()
		d.Populate([]model.Equipment{{ID: 1, Nome: "old"}})

		err := LoadEquipment(context.Background(), lookup, d, "7", discardLogger())
		var serverErr *api.ServerError
		if !errors.As(err, &serverErr) {
			t.Errorf("error = %v, want *api.ServerError", err)
		}
		if d.Len() != 1 {
			t.Errorf("Len() = %d, want 1 (placeholder only)", d.Len())
		}
		if len(d.Items()) != 0 {
			t.Errorf("Items() = %+v, want none", d.Items())
		}
	})

	t.Run("http failure keeps placeholder", func(t *testing.T) {
		t.Parallel()

		lookup := &fakeLookup{err: &api.HTTPStatusError{StatusCode: 404}}
		d := NewDropdown()

		_ = LoadEquipment(context.Background(), lookup, d, "7", discardLogger()) //nolint:errcheck // state is what matters
		if d.Len() != 1 {
			t.Errorf("Len() = %d, want 1", d.Len())
		}
	})

	t.Run("empty location clears without request", func(t *testing.T) {
		t.Parallel()

		lookup := &fakeLookup{}
		d := NewDropdown()
		d.Populate([]model.Equipment{{ID: 1, Nome: "old"}})

		if err := LoadEquipment(context.Background(), lookup, d, "  ", discardLogger()); err != nil {
			t.Fatalf("LoadEquipment() error: %v", err)
		}
		if d.Len() != 1 {
			t.Errorf("Len() = %d, want 1", d.Len())
		}
		if len(lookup.calls) != 0 {
			t.Errorf("calls = %v, want none", lookup.calls)
		}
	})

	t.Run("invalid location", func(t *testing.T) {
		t.Parallel()

		lookup := &fakeLookup{}
		d := NewDropdown()

		if err := LoadEquipment(context.Background(), lookup, d, "abc", nil); err == nil {
			t.Error("expected error for non-numeric location")
		}
		if len(lookup.calls) != 0 {
			t.Errorf("calls = %v, want none", lookup.calls)
		}
	})
}
