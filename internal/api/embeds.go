package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListEmbeds handles GET /api/documents/{id}/embeds.
func (h *Handler) ListEmbeds(w http.ResponseWriter, r *http.Request) {
	embeds, err := h.svc.Embeds(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "list embeds", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"embeds": embeds})
}

// AddEmbed handles POST /api/documents/{id}/embeds.
// Re-adding an existing pair returns the existing embedding id.
func (h *Handler) AddEmbed(w http.ResponseWriter, r *http.Request) {
	var req AddEmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.DatabaseID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("databaseId is required"))
		return
	}
	id, err := h.svc.AddEmbed(r.Context(), docID(r), req.DatabaseID, req.Position)
	if err != nil {
		writeServiceError(w, "add embed", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// RemoveEmbed handles DELETE /api/documents/{id}/embeds/{databaseID}.
func (h *Handler) RemoveEmbed(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.RemoveEmbed(r.Context(), docID(r), chi.URLParam(r, "databaseID")); err != nil {
		writeServiceError(w, "remove embed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateEmbedPosition handles PATCH /api/embeds/{embedID}/position.
func (h *Handler) UpdateEmbedPosition(w http.ResponseWriter, r *http.Request) {
	var req EmbedPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateEmbedPosition(r.Context(), chi.URLParam(r, "embedID"), req.Position); err != nil {
		writeServiceError(w, "update embed position", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderEmbeds handles POST /api/documents/{id}/embeds/reorder.
func (h *Handler) ReorderEmbeds(w http.ResponseWriter, r *http.Request) {
	var req ReorderEmbedsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.MovedID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("movedId is required"))
		return
	}
	embeds, err := h.svc.ReorderEmbeds(r.Context(), docID(r), req.MovedID, req.TargetID)
	if err != nil {
		writeServiceError(w, "reorder embeds", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"embeds": embeds})
}
