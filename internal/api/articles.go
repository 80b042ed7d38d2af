package api

import (
	"encoding/json"
	"net/http"

	"github.com/komumoyu/Motion/internal/export"
	"github.com/komumoyu/Motion/internal/workspace"
)

// ArticleHandler serves the article surface and the static-site export.
type ArticleHandler struct {
	svc      *workspace.Service
	exporter *export.Exporter
}

// NewArticleHandler creates an ArticleHandler. exporter may be nil when no
// export directory is configured; export routes then return 503.
func NewArticleHandler(svc *workspace.Service, exporter *export.Exporter) *ArticleHandler {
	return &ArticleHandler{svc: svc, exporter: exporter}
}

// ListArticles handles GET /api/articles.
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.Articles(r.Context())
	if err != nil {
		writeServiceError(w, "list articles", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// CreateArticle handles POST /api/articles.
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	doc, err := h.svc.CreateArticle(r.Context(), workspace.ArticleInput{
		Title:       req.Title,
		PublishDate: req.PublishDate,
		Thumbnail:   req.Thumbnail,
		Slug:        req.Slug,
	})
	if err != nil {
		writeServiceError(w, "create article", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// GetArticle handles GET /api/articles/{id}.
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.ArticleByID(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "get article", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateArticle handles PATCH /api/articles/{id}.
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var patch UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	doc, err := h.svc.UpdateArticle(r.Context(), docID(r), patch)
	if err != nil {
		writeServiceError(w, "update article", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ExportArticle handles POST /api/articles/{id}/export.
func (h *ArticleHandler) ExportArticle(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("export directory not configured"))
		return
	}
	res, err := h.exporter.ExportArticle(r.Context(), docID(r))
	if err != nil {
		writeServiceError(w, "export article", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ExportAll handles POST /api/articles/export.
func (h *ArticleHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("export directory not configured"))
		return
	}
	metas, err := h.exporter.ExportAll(r.Context())
	if err != nil {
		writeServiceError(w, "export all", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": metas})
}
