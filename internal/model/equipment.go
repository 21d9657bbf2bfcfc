package model

import "fmt"

// Equipment is a single item returned by the equipment-by-location endpoint.
type Equipment struct {
	// ID is the primary key used as the dropdown option value.
	ID int `json:"id"`

	// Nome is the equipment name.
	Nome string `json:"nome"`

	// Codigo is the inventory code.
	Codigo string `json:"codigo"`

	// Tipo is the equipment type as stored by the server.
	Tipo string `json:"tipo"`
}

// Label returns the text shown for the equipment in the dropdown,
// formatted as "<nome> (<codigo>) - <tipo>".
func (e Equipment) Label() string {
	return fmt.Sprintf("%s (%s) - %s", e.Nome, e.Codigo, e.Tipo)
}

// EquipmentResponse is the JSON body of the equipment-by-location endpoint.
type EquipmentResponse struct {
	// Success reports whether the server could resolve the location.
	Success bool `json:"success"`

	// Equipamentos lists the equipment registered at the location.
	Equipamentos []Equipment `json:"equipamentos"`

	// Error is the server-provided failure reason when Success is false.
	Error string `json:"error,omitempty"`
}

// LocationEquipment groups the equipment found for one location lookup.
// It is what the CLI reports for each requested location.
type LocationEquipment struct {
	// LocalID is the location that was looked up.
	LocalID int `json:"localId"`

	// Equipment is the list returned by the server, empty on failure.
	Equipment []Equipment `json:"equipment"`

	// Error describes why the lookup failed, if it did.
	Error string `json:"error,omitempty"`
}
