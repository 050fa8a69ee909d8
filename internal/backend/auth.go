package backend

import (
	"context"
	"net/http"
)

// LoginResult carrega identidade e token opaco emitidos pelo backend.
type LoginResult struct {
	Officer Officer
	Token   string
}

// Login envia identificador+credencial e recebe identidade e token.
func (c *Client) Login(ctx context.Context, officerID, password string) (*LoginResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/officer/login", map[string]any{
		"policeOfficerId": officerID,
		"password":        password,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Officer Officer `json:"officer"`
		Token   string  `json:"token"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &LoginResult{Officer: resp.Officer, Token: resp.Token}, nil
}

// DisplayInfo recupera os dados de exibição do policial autenticado.
func (c *Client) DisplayInfo(ctx context.Context, officerID string) (*Officer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/setting/display-info/"+officerID, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Officer Officer `json:"officer"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Officer, nil
}

// UpdatePassword troca a senha do policial; validação fica a cargo do backend.
func (c *Client) UpdatePassword(ctx context.Context, officerID, oldPassword, newPassword string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/setting/updatepassword", map[string]any{
		"policeOfficerId": officerID,
		"oldPassword":     oldPassword,
		"newPassword":     newPassword,
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
