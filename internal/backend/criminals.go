package backend

import (
	"context"
	"net/http"
	"strconv"
)

// Criminals lista todos os procurados cadastrados.
func (c *Client) Criminals(ctx context.Context) ([]Criminal, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/criminals/getAllCriminals", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success   bool       `json:"success"`
		Message   string     `json:"message"`
		Criminals []Criminal `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return resp.Criminals, nil
}

// CreateCriminal cadastra procurado com foto obrigatória.
func (c *Client) CreateCriminal(ctx context.Context, draft CriminalDraft, photo *FileField) (*Criminal, error) {
	fields := map[string]string{
		"firstName":       draft.FirstName,
		"middleName":      draft.MiddleName,
		"lastName":        draft.LastName,
		"faceColor":       draft.FaceColor,
		"hairColor":       draft.HairColor,
		"height":          draft.Height,
		"bodyType":        draft.BodyType,
		"gender":          draft.Gender,
		"fileNumber":      draft.FileNumber,
		"policeStationId": draft.StationID,
	}
	if draft.Age != nil {
		fields["age"] = strconv.Itoa(*draft.Age)
	} else {
		fields["age"] = ""
	}

	req, err := c.newMultipartRequest(ctx, http.MethodPost, "/api/criminals/addCriminal", fields, photo)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool     `json:"success"`
		Message  string   `json:"message"`
		Criminal Criminal `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Criminal, nil
}
