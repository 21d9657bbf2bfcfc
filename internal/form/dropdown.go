package form

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nao1215/relatorio/internal/model"
)

// Placeholder is the label of the empty equipment option.
const Placeholder = "Selecione um equipamento"

// Option is one entry of a select element.
type Option struct {
	// Value is the submitted value; empty for the placeholder.
	Value string `json:"value"`

	// Label is the displayed text.
	Label string `json:"label"`
}

// Dropdown is the equipment select. It always starts with the placeholder.
type Dropdown struct {
	options []Option
	items   []model.Equipment
}

// NewDropdown returns a dropdown holding only the placeholder.
func NewDropdown() *Dropdown {
	d := &Dropdown{}
	d.Reset()
	return d
}

// Reset removes every option but the placeholder.
func (d *Dropdown) Reset() {
	d.options = []Option{{Value: "", Label: Placeholder}}
	d.items = nil
}

// Populate replaces the options with the given equipment, after the placeholder.
func (d *Dropdown) Populate(items []model.Equipment) {
	d.Reset()
	d.items = append([]model.Equipment{}, items...)
	for _, e := range items {
		d.options = append(d.options, Option{
			Value: strconv.Itoa(e.ID),
			Label: e.Label(),
		})
	}
}

// Options returns a copy of the current options.
func (d *Dropdown) Options() []Option {
	out := make([]Option, len(d.options))
	copy(out, d.options)
	return out
}

// Items returns the equipment behind the options, placeholder excluded.
func (d *Dropdown) Items() []model.Equipment {
	return append([]model.Equipment{}, d.items...)
}

// Len returns the number of options, placeholder included.
func (d *Dropdown) Len() int {
	return len(d.options)
}

// EquipmentLookup fetches the equipment of a location.
type EquipmentLookup interface {
	EquipmentByLocation(ctx context.Context, localID int) ([]model.Equipment, error)
}

// LoadEquipment refreshes the dropdown after the location changed.
//
// The dropdown is reset to the placeholder first. An empty localID stops
// there without a request. A failed lookup is logged at warn level and
// leaves only the placeholder; the error is also returned for callers that
// report it, but the dropdown state is the same either way.
func LoadEquipment(ctx context.Context, lookup EquipmentLookup, d *Dropdown, localID string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	d.Reset()

	localID = strings.TrimSpace(localID)
	if localID == "" {
		return nil
	}

	id, err := strconv.Atoi(localID)
	if err != nil {
		err = fmt.Errorf("invalid location id %q: %w", localID, err)
		logger.Warn("equipment lookup skipped", "local_id", localID, "error", err)
		return err
	}

	items, err := lookup.EquipmentByLocation(ctx, id)
	if err != nil {
		logger.Warn("equipment lookup failed", "local_id", id, "error", err)
		return err
	}

	d.Populate(items)
	logger.Debug("equipment loaded", "local_id", id, "count", len(items))
	return nil
}
