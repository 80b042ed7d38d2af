package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/komumoyu/Motion/internal/models"
)

func databaseID(r *http.Request) string {
	return chi.URLParam(r, "databaseID")
}

func propertyID(r *http.Request) string {
	return chi.URLParam(r, "propertyID")
}

// ListDatabases handles GET /api/databases.
func (h *Handler) ListDatabases(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.UserDatabases(r.Context())
	if err != nil {
		writeServiceError(w, "list databases", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// ListRows handles GET /api/databases/{databaseID}/rows.
func (h *Handler) ListRows(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.DatabaseRows(r.Context(), databaseID(r))
	if err != nil {
		writeServiceError(w, "list rows", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// CreateRow handles POST /api/databases/{databaseID}/rows.
func (h *Handler) CreateRow(w http.ResponseWriter, r *http.Request) {
	var req CreateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	doc, err := h.svc.CreateRow(r.Context(), databaseID(r), req.Title)
	if err != nil {
		writeServiceError(w, "create row", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// ListProperties handles GET /api/databases/{databaseID}/properties.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.svc.DatabaseProperties(r.Context(), databaseID(r))
	if err != nil {
		writeServiceError(w, "list properties", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": props})
}

// CreateProperty handles POST /api/databases/{databaseID}/properties.
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	prop, err := h.svc.CreateProperty(r.Context(), databaseID(r), req.Name, models.PropertyType(req.Type), req.Options)
	if err != nil {
		writeServiceError(w, "create property", err)
		return
	}
	writeJSON(w, http.StatusCreated, prop)
}

// GetProperty handles GET /api/properties/{propertyID}.
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	prop, err := h.svc.PropertyDetails(r.Context(), propertyID(r))
	if err != nil {
		writeServiceError(w, "get property", err)
		return
	}
	writeJSON(w, http.StatusOK, prop)
}

// UpdatePropertyWidth handles PATCH /api/properties/{propertyID}/width.
// Out-of-range widths are clamped, not rejected.
func (h *Handler) UpdatePropertyWidth(w http.ResponseWriter, r *http.Request) {
	var req PropertyWidthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdatePropertyWidth(r.Context(), propertyID(r), req.Width); err != nil {
		writeServiceError(w, "update property width", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdatePropertyOptions handles PUT /api/properties/{propertyID}/options.
func (h *Handler) UpdatePropertyOptions(w http.ResponseWriter, r *http.Request) {
	var req PropertyOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdatePropertyOptions(r.Context(), propertyID(r), req.Options); err != nil {
		writeServiceError(w, "update property options", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProperty handles DELETE /api/properties/{propertyID}.
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProperty(r.Context(), propertyID(r)); err != nil {
		writeServiceError(w, "delete property", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetValue handles PUT /api/documents/{id}/values.
func (h *Handler) SetValue(w http.ResponseWriter, r *http.Request) {
	var req SetValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.PropertyID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("propertyId is required"))
		return
	}
	id, err := h.svc.SetPropertyValue(r.Context(), docID(r), req.PropertyID, req.Value)
	if err != nil {
		writeServiceError(w, "set property value", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ListValues handles GET /api/documents/{id}/values.
func (h *Handler) ListValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.DocumentProperties(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "list values", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": values})
}

// ListViews handles GET /api/databases/{databaseID}/views.
func (h *Handler) ListViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.DatabaseViews(r.Context(), databaseID(r))
	if err != nil {
		writeServiceError(w, "list views", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"views": views})
}
