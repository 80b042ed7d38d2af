package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/komumoyu/Motion/internal/export"
	"github.com/komumoyu/Motion/internal/workspace"
)

// AuthConfig controls the identity middleware.
type AuthConfig struct {
	Secret   string
	Insecure bool
}

// NewRouter creates a chi router with all API routes mounted.
// exporter may be nil; sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *workspace.Service, auth AuthConfig, exporter *export.Exporter, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)
	ah := NewArticleHandler(svc, exporter)

	r := chi.NewRouter()
	r.Use(IdentityMiddleware(auth.Secret, auth.Insecure))

	// Document tree.
	r.Get("/documents", h.Sidebar)
	r.Post("/documents", h.CreateDocument)
	r.Get("/documents/trash", h.Trash)
	r.Get("/documents/index", h.SearchIndex)
	r.Get("/documents/{id}", h.GetDocument)
	r.Patch("/documents/{id}", h.UpdateDocument)
	r.Delete("/documents/{id}", h.RemoveDocument)
	r.Post("/documents/{id}/archive", h.ArchiveDocument)
	r.Post("/documents/{id}/restore", h.RestoreDocument)
	r.Delete("/documents/{id}/icon", h.RemoveIcon)
	r.Delete("/documents/{id}/cover", h.RemoveCoverImage)

	// Cell values on row documents.
	r.Get("/documents/{id}/values", h.ListValues)
	r.Put("/documents/{id}/values", h.SetValue)

	// Embedding ledger.
	r.Get("/documents/{id}/embeds", h.ListEmbeds)
	r.Post("/documents/{id}/embeds", h.AddEmbed)
	r.Post("/documents/{id}/embeds/reorder", h.ReorderEmbeds)
	r.Delete("/documents/{id}/embeds/{databaseID}", h.RemoveEmbed)
	r.Patch("/embeds/{embedID}/position", h.UpdateEmbedPosition)

	// Databases, columns, views.
	r.Get("/databases", h.ListDatabases)
	r.Get("/databases/{databaseID}/rows", h.ListRows)
	r.Post("/databases/{databaseID}/rows", h.CreateRow)
	r.Get("/databases/{databaseID}/properties", h.ListProperties)
	r.Post("/databases/{databaseID}/properties", h.CreateProperty)
	r.Get("/databases/{databaseID}/views", h.ListViews)
	r.Get("/properties/{propertyID}", h.GetProperty)
	r.Patch("/properties/{propertyID}/width", h.UpdatePropertyWidth)
	r.Put("/properties/{propertyID}/options", h.UpdatePropertyOptions)
	r.Delete("/properties/{propertyID}", h.DeleteProperty)

	// Search.
	r.Get("/search", h.Search)

	// Articles and static-site export.
	r.Get("/articles", ah.ListArticles)
	r.Post("/articles", ah.CreateArticle)
	r.Post("/articles/export", ah.ExportAll)
	r.Get("/articles/{id}", ah.GetArticle)
	r.Patch("/articles/{id}", ah.UpdateArticle)
	r.Post("/articles/{id}/export", ah.ExportArticle)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
