// Package models defines the domain types for the Motion workspace core.
package models

import "time"

// DocumentKind discriminates the three roles the documents table plays.
type DocumentKind string

// Document kinds.
const (
	KindPage     DocumentKind = "page"
	KindDatabase DocumentKind = "database"
	KindArticle  DocumentKind = "article"
)

// Document is the universal workspace node: a rich-text page, a database
// schema root, a database row, or a blog article. Which role a given
// document plays is decided by Kind plus the kind-specific payload fields
// (DatabaseID for rows, Article for articles).
type Document struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	UserID         string        `json:"userId"`
	IsArchived     bool          `json:"isArchived"`
	IsPublished    bool          `json:"isPublished"`
	Content        string        `json:"content,omitempty"`
	CoverImage     string        `json:"coverImage,omitempty"`
	Icon           string        `json:"icon,omitempty"`
	ParentDocument string        `json:"parentDocument,omitempty"`
	Kind           DocumentKind  `json:"kind,omitempty"`
	DatabaseID     string        `json:"databaseId,omitempty"`
	Article        *ArticleData  `json:"articleData,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// IsRow reports whether the document is a row belonging to a database.
// Rows never appear as pages in navigation.
func (d *Document) IsRow() bool {
	return d.DatabaseID != ""
}

// IsDatabase reports whether the document is a database schema root.
func (d *Document) IsDatabase() bool {
	return d.Kind == KindDatabase
}

// ArticleData is the article-specific payload of a Document with
// Kind == KindArticle.
type ArticleData struct {
	PublishDate   string `json:"publishDate"` // YYYY-MM-DD
	Thumbnail     string `json:"thumbnail,omitempty"`
	Slug          string `json:"slug,omitempty"`
	SiteURL       string `json:"siteUrl,omitempty"`
	SitePublished bool   `json:"sitePublished,omitempty"`
}

// DocumentPatch carries the merge-patchable fields of a document update.
// Nil pointers mean "leave unchanged".
type DocumentPatch struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

// ArticlePatch carries the merge-patchable fields of an article update.
type ArticlePatch struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	PublishDate   *string `json:"publishDate,omitempty"`
	Thumbnail     *string `json:"thumbnail,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	SiteURL       *string `json:"siteUrl,omitempty"`
	SitePublished *bool   `json:"sitePublished,omitempty"`
}
