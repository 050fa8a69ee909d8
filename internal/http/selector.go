package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/urbanbyte/sentinela/internal/cascade"
)

func parseRank(raw string) (cascade.Rank, bool) {
	switch raw {
	case "region":
		return cascade.RankRegion, true
	case "zone":
		return cascade.RankZone, true
	case "town":
		return cascade.RankTown, true
	default:
		return 0, false
	}
}

// SelectorSnapshot devolve o retrato dos três níveis do seletor.
func (h *Handler) SelectorSnapshot(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	snapshot := state.selector.Snapshot()
	WriteJSON(w, http.StatusOK, map[string]any{
		"levels":   snapshot,
		"complete": state.selector.Complete(),
	})
}

// SelectorLoadRegions dispara a carga das regiões do nível raiz.
func (h *Handler) SelectorLoadRegions(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	state.selector.LoadRegions(r.Context())
	h.SelectorSnapshot(w, r)
}

// SelectorSelect escolhe um valor em um nível, invalidando descendentes.
func (h *Handler) SelectorSelect(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	rank, valid := parseRank(chi.URLParam(r, "rank"))
	if !valid {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "nível de seleção inválido", nil)
		return
	}

	var payload struct {
		Value int64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	state.selector.Select(r.Context(), rank, payload.Value)
	h.SelectorSnapshot(w, r)
}

// SelectorClear limpa a escolha de um nível e de todos os descendentes.
func (h *Handler) SelectorClear(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	rank, valid := parseRank(chi.URLParam(r, "rank"))
	if !valid {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "nível de seleção inválido", nil)
		return
	}

	state.selector.ClearSelection(rank)
	h.SelectorSnapshot(w, r)
}
