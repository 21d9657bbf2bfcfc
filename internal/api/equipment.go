package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nao1215/relatorio/internal/model"
)

// EquipmentPath returns the lookup path for a location.
func EquipmentPath(localID int) string {
	return fmt.Sprintf("/reports/api/equipamentos-por-local/%d/", localID)
}

// EquipmentByLocation returns the equipment registered at a location.
// A {"success": false} answer is returned as *ServerError carrying the
// server's error text.
func (c *Client) EquipmentByLocation(ctx context.Context, localID int) ([]model.Equipment, error) {
	target, err := c.resolve(EquipmentPath(localID))
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp model.EquipmentResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ServerError{Message: resp.Error}
	}
	if resp.Equipamentos == nil {
		resp.Equipamentos = []model.Equipment{}
	}
	return resp.Equipamentos, nil
}
