package backend

import (
	"context"
	"net/http"
	"strconv"
)

// Officers lista os policiais de uma delegacia.
func (c *Client) Officers(ctx context.Context, stationID string) ([]Officer, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/police/root/get-police-officers", map[string]any{"policeStationId": stationID})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool      `json:"success"`
		Message  string    `json:"message"`
		Officers []Officer `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return resp.Officers, nil
}

// RegisterOfficer cadastra policial; foto é opcional.
func (c *Client) RegisterOfficer(ctx context.Context, draft OfficerDraft, photo *FileField) (*Officer, error) {
	fields := officerFields(draft)
	fields["password"] = draft.Password

	req, err := c.newMultipartRequest(ctx, http.MethodPost, "/api/police/root/register-police-officer", fields, photo)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Officer Officer `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Officer, nil
}

// UpdateOfficer altera o cadastro de um policial existente.
func (c *Client) UpdateOfficer(ctx context.Context, officerID string, draft OfficerDraft) (*Officer, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/police/root/edit-police-officer/"+officerID, map[string]any{
		"policeOfficerFname":       draft.FirstName,
		"policeOfficerMname":       draft.MiddleName,
		"policeOfficerLname":       draft.LastName,
		"policeOfficerPhoneNumber": draft.PhoneNumber,
		"policeOfficerEmail":       draft.Email,
		"role":                     draft.Role,
		"policeStationId":          draft.StationID,
		"townId":                   draft.TownID,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Officer Officer `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Officer, nil
}

func officerFields(draft OfficerDraft) map[string]string {
	return map[string]string{
		"policeOfficerFname":       draft.FirstName,
		"policeOfficerMname":       draft.MiddleName,
		"policeOfficerLname":       draft.LastName,
		"policeOfficerPhoneNumber": draft.PhoneNumber,
		"policeOfficerEmail":       draft.Email,
		"role":                     strconv.Itoa(draft.Role),
		"policeStationId":          draft.StationID,
		"townId":                   strconv.FormatInt(draft.TownID, 10),
	}
}
