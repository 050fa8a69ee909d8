package backend

import (
	"context"
	"net/http"
	"strconv"
)

// Stations lista as delegacias do escopo raiz, com nomes de localização resolvidos.
func (c *Client) Stations(ctx context.Context, rootID int64) ([]Station, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/admin/getPoliceStations", map[string]any{"rootId": rootID})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool      `json:"success"`
		Message  string    `json:"message"`
		Stations []Station `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return resp.Stations, nil
}

// AllStations lista todas as delegacias cadastradas (visão de mensageria).
func (c *Client) AllStations(ctx context.Context) ([]Station, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/police/root/get-all-police-station", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool      `json:"success"`
		Message  string    `json:"message"`
		Stations []Station `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return resp.Stations, nil
}

// CreateStation cadastra delegacia; logotipo é opcional.
func (c *Client) CreateStation(ctx context.Context, draft StationDraft, logo *FileField) (*Station, error) {
	fields := map[string]string{
		"nameOfPoliceStation":         draft.Name,
		"policeStationPhoneNumber":    draft.PhoneNumber,
		"secPoliceStationPhoneNumber": draft.SecPhoneNumber,
		"rootId":                      strconv.FormatInt(draft.RootID, 10),
		"townId":                      strconv.FormatInt(draft.TownID, 10),
	}

	req, err := c.newMultipartRequest(ctx, http.MethodPost, "/api/police/root/add-police-station", fields, logo)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Station Station `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Station, nil
}
