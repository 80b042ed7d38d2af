package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/komumoyu/Motion/internal/models"
	"github.com/komumoyu/Motion/internal/workspace"
)

// Handler holds API route handlers.
type Handler struct {
	svc *workspace.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

func docID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// CreateDocument handles POST /api/documents.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	doc, err := h.svc.Create(r.Context(), workspace.CreateInput{
		Title:          req.Title,
		ParentDocument: req.ParentDocument,
		Kind:           models.DocumentKind(req.Kind),
		DatabaseID:     req.DatabaseID,
	})
	if err != nil {
		writeServiceError(w, "create document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// GetDocument handles GET /api/documents/{id}.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetByID(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "get document", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateDocument handles PATCH /api/documents/{id}.
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var patch UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	doc, err := h.svc.Update(r.Context(), docID(r), patch)
	if err != nil {
		writeServiceError(w, "update document", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ArchiveDocument handles POST /api/documents/{id}/archive.
func (h *Handler) ArchiveDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Archive(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "archive document", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// RestoreDocument handles POST /api/documents/{id}/restore.
func (h *Handler) RestoreDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Restore(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "restore document", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// RemoveDocument handles DELETE /api/documents/{id}.
func (h *Handler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), docID(r)); err != nil {
		writeServiceError(w, "remove document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveIcon handles DELETE /api/documents/{id}/icon.
func (h *Handler) RemoveIcon(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.RemoveIcon(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "remove icon", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// RemoveCoverImage handles DELETE /api/documents/{id}/cover.
func (h *Handler) RemoveCoverImage(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.RemoveCoverImage(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "remove cover image", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Sidebar handles GET /api/documents?parent=<id>.
func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Sidebar(r.Context(), r.URL.Query().Get("parent"))
	if err != nil {
		writeServiceError(w, "sidebar", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// Trash handles GET /api/documents/trash.
func (h *Handler) Trash(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Trash(r.Context())
	if err != nil {
		writeServiceError(w, "trash", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// SearchIndex handles GET /api/documents/index.
func (h *Handler) SearchIndex(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.SearchIndex(r.Context())
	if err != nil {
		writeServiceError(w, "search index", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeServiceError(w, "search", err)
		return
	}
	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, SearchResult{ID: hit.ID, Title: hit.Title, Snippet: hit.Snippet})
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
