package api

import (
	"github.com/komumoyu/Motion/internal/models"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Title          string `json:"title"`
	ParentDocument string `json:"parentDocument,omitempty"`
	Kind           string `json:"kind,omitempty" example:"page"`
	DatabaseID     string `json:"databaseId,omitempty"`
}

// UpdateDocumentRequest is the merge-patch body for updating a document.
type UpdateDocumentRequest = models.DocumentPatch

// CreatePropertyRequest is the request body for adding a database column.
type CreatePropertyRequest struct {
	Name    string                  `json:"name" validate:"required"`
	Type    string                  `json:"type" example:"text" validate:"required"`
	Options []models.PropertyOption `json:"options,omitempty"`
}

// PropertyWidthRequest updates a column's rendered width.
type PropertyWidthRequest struct {
	Width int `json:"width" example:"240" validate:"required"`
}

// PropertyOptionsRequest replaces a column's option list.
type PropertyOptionsRequest struct {
	Options []models.PropertyOption `json:"options" validate:"required"`
}

// SetValueRequest writes one cell.
type SetValueRequest struct {
	PropertyID string       `json:"propertyId" validate:"required"`
	Value      models.Value `json:"value"`
}

// CreateRowRequest adds a row document to a database.
type CreateRowRequest struct {
	Title string `json:"title"`
}

// AddEmbedRequest records a database embedding on a document.
type AddEmbedRequest struct {
	DatabaseID string `json:"databaseId" validate:"required"`
	Position   int    `json:"position,omitempty"`
}

// EmbedPositionRequest moves one embedding.
type EmbedPositionRequest struct {
	Position int `json:"position"`
}

// ReorderEmbedsRequest reorders embeddings by drag-and-drop identifiers.
// TargetID empty means the item was dropped past the end of the list.
type ReorderEmbedsRequest struct {
	MovedID  string `json:"movedId" validate:"required"`
	TargetID string `json:"targetId,omitempty"`
}

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	Title       string `json:"title" validate:"required"`
	PublishDate string `json:"publishDate,omitempty" example:"2024-05-01"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// UpdateArticleRequest is the merge-patch body for updating an article.
type UpdateArticleRequest = models.ArticlePatch

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []models.Document `json:"documents" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	ID      string `json:"id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}
