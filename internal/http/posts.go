package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/urbanbyte/sentinela/internal/backend"
	httpmiddleware "github.com/urbanbyte/sentinela/internal/http/middleware"
	"github.com/urbanbyte/sentinela/internal/listview"
	"github.com/urbanbyte/sentinela/internal/posts"
)

const maxUploadBytes = 10 << 20

// PostTiers devolve as abas de listagem visíveis para o papel da sessão.
func (h *Handler) PostTiers(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"tiers": posts.VisibleTiers(identity.Role),
	})
}

// TierPosts carrega e devolve a listagem do nível pedido.
func (h *Handler) TierPosts(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	tier := httpmiddleware.GetTier(r.Context())
	if err := state.posts.LoadTier(r.Context(), tier, identity); err != nil {
		if errors.Is(err, posts.ErrScopeUnavailable) {
			WriteError(w, http.StatusConflict, "SCOPE", err.Error(), nil)
			return
		}
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	h.writePostList(w, state)
}

// StationPosts carrega a listagem de posts da própria delegacia.
func (h *Handler) StationPosts(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.posts.LoadStation(r.Context(), identity.StationID)
	h.writePostList(w, state)
}

// QueryPosts aplica filtro textual sobre a lista já carregada.
func (h *Handler) QueryPosts(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	state.posts.Search(payload.Query)
	h.writePostList(w, state)
}

func (h *Handler) writePostList(w http.ResponseWriter, state *sessionState) {
	loading, message := state.posts.State()
	WriteJSON(w, http.StatusOK, map[string]any{
		"rows":    state.posts.Rows(),
		"loading": loading,
		"message": message,
	})
}

// postDraftPayload aplica apenas os campos presentes sobre a cópia staged.
type postDraftPayload struct {
	FirstName    *string `json:"firstName"`
	MiddleName   *string `json:"middleName"`
	LastName     *string `json:"lastName"`
	Age          *int    `json:"age"`
	Gender       *string `json:"gender"`
	Description  *string `json:"postDescription"`
	LastLocation *string `json:"lastLocation"`
	PostStatus   *int    `json:"postStatus"`
	PersonStatus *string `json:"personStatus"`
}

func (p postDraftPayload) apply(draft *backend.PostDraft) {
	if p.FirstName != nil {
		draft.FirstName = *p.FirstName
	}
	if p.MiddleName != nil {
		draft.MiddleName = *p.MiddleName
	}
	if p.LastName != nil {
		draft.LastName = *p.LastName
	}
	if p.Age != nil {
		age := *p.Age
		draft.Age = &age
	}
	if p.Gender != nil {
		draft.Gender = *p.Gender
	}
	if p.Description != nil {
		draft.Description = *p.Description
	}
	if p.LastLocation != nil {
		draft.LastLocation = *p.LastLocation
	}
	if p.PostStatus != nil {
		draft.PostStatus = *p.PostStatus
	}
	if p.PersonStatus != nil {
		draft.PersonStatus = *p.PersonStatus
	}
}

// OpenAddPost prepara o rascunho de inclusão.
func (h *Handler) OpenAddPost(w http.ResponseWriter, r *http.Request) {
	state, identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.posts.OpenAdd(identity)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
}

// UpdateAddPost aplica edições ao rascunho de inclusão.
func (h *Handler) UpdateAddPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload postDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.posts.UpdateAdd(payload.apply); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitAddPost envia o rascunho com a foto opcional anexada.
func (h *Handler) SubmitAddPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	photo, err := formFile(r, "photo")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "arquivo inválido", nil)
		return
	}

	if err := state.posts.SubmitAdd(r.Context(), photo); err != nil {
		writeFormError(w, err)
		return
	}
	h.writePostList(w, state)
}

// CancelAddPost descarta o rascunho de inclusão.
func (h *Handler) CancelAddPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.posts.CancelAdd()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// OpenEditPost prepara o rascunho de edição a partir da linha visível.
func (h *Handler) OpenEditPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id de post inválido", nil)
		return
	}

	for _, row := range state.posts.Rows() {
		if row.ID == postID {
			state.posts.OpenEdit(row)
			WriteJSON(w, http.StatusOK, map[string]string{"status": "open"})
			return
		}
	}

	WriteError(w, http.StatusNotFound, "NOT_FOUND", "post não encontrado na lista corrente", nil)
}

// UpdateEditPost aplica edições ao rascunho de edição.
func (h *Handler) UpdateEditPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload postDraftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := state.posts.UpdateEdit(func(draft *posts.EditDraft) {
		payload.apply(&draft.PostDraft)
	}); err != nil {
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "staged"})
}

// SubmitEditPost envia o rascunho de edição.
func (h *Handler) SubmitEditPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := state.posts.SubmitEdit(r.Context()); err != nil {
		writeFormError(w, err)
		return
	}
	h.writePostList(w, state)
}

// CancelEditPost descarta o rascunho de edição.
func (h *Handler) CancelEditPost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.posts.CancelEdit()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// PromotePost replica o post para o nível pedido.
func (h *Handler) PromotePost(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id de post inválido", nil)
		return
	}

	tier := httpmiddleware.GetTier(r.Context())
	if err := state.posts.Promote(r.Context(), postID, tier); err != nil {
		switch {
		case errors.Is(err, posts.ErrScopeUnavailable):
			WriteError(w, http.StatusConflict, "SCOPE", err.Error(), nil)
		case errors.Is(err, backend.ErrUnavailable):
			writeBackendError(w, err)
		default:
			if _, isAPI := backend.IsAPIError(err); isAPI {
				writeBackendError(w, err)
				return
			}
			WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "promoted"})
}

// formFile extrai o arquivo opcional de um envio multipart.
func formFile(r *http.Request, field string) (*backend.FileField, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &backend.FileField{Field: field, Name: header.Filename, Content: content}, nil
}

// writeFormError traduz falhas de submissão: concorrência vira 409,
// falha do backend espelha o status e validação local vira 422.
func writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listview.ErrSubmitInFlight), errors.Is(err, listview.ErrFormClosed):
		WriteError(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, backend.ErrUnavailable):
		writeBackendError(w, err)
	default:
		if _, isAPI := backend.IsAPIError(err); isAPI {
			writeBackendError(w, err)
			return
		}
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	}
}
