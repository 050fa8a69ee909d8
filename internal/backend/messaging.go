package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Conversation recupera o histórico ordenado entre duas delegacias.
func (c *Client) Conversation(ctx context.Context, ownStationID, otherStationID string) ([]Message, error) {
	path := fmt.Sprintf("/api/message/getMessages/%s/%s", ownStationID, otherStationID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool      `json:"success"`
		Message  string    `json:"message"`
		Messages []Message `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage envia uma mensagem e recebe o registro confirmado.
func (c *Client) SendMessage(ctx context.Context, senderID, receiverID, content string) (*Message, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/message/send", map[string]any{
		"senderId":   senderID,
		"receiverId": receiverID,
		"content":    content,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Sent    Message `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return nil, err
	}
	return &resp.Sent, nil
}

// MarkConversationRead marca como lidas as mensagens recebidas do remetente.
// O backend expõe a operação como GET, sem corpo.
func (c *Client) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	path := fmt.Sprintf("/api/message/readMessage/%s/%s", senderID, receiverID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
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

// UnreadCount devolve o total de mensagens não lidas vindas de uma delegacia.
func (c *Client) UnreadCount(ctx context.Context, ownStationID, otherStationID string) (int, error) {
	path := fmt.Sprintf("/api/message/getUnReadedMessagesNumber/%s/%s", ownStationID, otherStationID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}

	var resp struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		UnreadCount int    `json:"unreadCount"`
	}
	if err := c.do(req, &resp); err != nil {
		return 0, err
	}
	if err := checkSuccess(resp.Success, resp.Message); err != nil {
		return 0, err
	}
	return resp.UnreadCount, nil
}
