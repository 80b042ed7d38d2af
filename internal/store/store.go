package store

import "github.com/komumoyu/Motion/internal/models"

// WorkspaceStore defines the persistence operations the service layer
// depends on. Consumers should depend on this interface rather than the
// concrete *DB type to facilitate testing with mocks.
type WorkspaceStore interface {
	// Document tree.
	InsertDocument(d *models.Document) error
	InsertDatabase(d *models.Document, titleProp *models.Property, defaultView *models.View) error
	GetDocument(id string) (*models.Document, error)
	UpdateDocument(id string, patch models.DocumentPatch) error
	SetArticleData(id string, a *models.ArticleData) error
	ArchiveTree(id, userID string) error
	RestoreTree(id, userID string) error
	DeleteDocument(id string) error
	ListChildren(userID, parentID string) ([]models.Document, error)
	ListTrash(userID string) ([]models.Document, error)
	ListActive(userID string) ([]models.Document, error)
	ListDatabases(userID string) ([]models.Document, error)
	ListRows(databaseID string) ([]models.Document, error)
	ListArticles(userID string, publishedOnly bool) ([]models.Document, error)
	Search(userID, query string, limit int) ([]SearchHit, error)

	// Property registry.
	InsertProperty(p *models.Property) error
	ListProperties(databaseID string) ([]models.Property, error)
	GetProperty(id string) (*models.Property, error)
	UpdatePropertyWidth(id string, width int) error
	UpdatePropertyOptions(id string, options []models.PropertyOption) error
	DeleteProperty(id string) error

	// Cell value store.
	UpsertCellValue(documentID, propertyID string, value models.Value) (string, error)
	ListCellValues(documentID string) ([]models.CellValue, error)

	// View registry.
	InsertView(v *models.View) error
	ListViews(databaseID string) ([]models.View, error)

	// Embedding ledger.
	GetEmbed(id string) (*models.EmbeddedDatabase, error)
	FindEmbed(documentID, databaseID string) (*models.EmbeddedDatabase, error)
	InsertEmbed(e *models.EmbeddedDatabase) error
	ListEmbeds(documentID string) ([]models.EmbedWithDatabase, error)
	UpdateEmbedPosition(id string, position int) error
	DeleteEmbedPair(documentID, databaseID string) error

	Close() error
}

// Verify *DB satisfies WorkspaceStore at compile time.
var _ WorkspaceStore = (*DB)(nil)

// SearchHit is one full-text search result.
type SearchHit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}
