package backend

import (
	"context"
	"net/http"
)

// CreateReport abre um relatório de escalonamento para um post.
func (c *Client) CreateReport(ctx context.Context, draft ReportDraft) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/report/addReport", map[string]any{
		"postId":            draft.PostID,
		"townId":            draft.TownID,
		"subCityId":         draft.SubCityID,
		"reportDescription": draft.Description,
		// o backend espera a chave com inicial maiúscula
		"PoliceStationId": draft.StationID,
		"priority":        draft.Priority,
	})
	if err != nil {
		return err
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}
	return checkSuccess(resp.Success, resp.Message)
}

// StationReports lista os relatórios destinados a uma delegacia.
func (c *Client) StationReports(ctx context.Context, stationID string) ([]Report, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/report/getReportsSpecificToPoliceStation", map[string]any{
		"policeStationId": stationID,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Count   int      `json:"count"`
		Reports []Report `json:"reports"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}
