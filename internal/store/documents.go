package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

const docColumns = `id, title, user_id, is_archived, is_published, content,
	cover_image, icon, parent_document, kind, database_id, article_data,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (*models.Document, error) {
	var (
		d           models.Document
		parent      sql.NullString
		databaseID  sql.NullString
		articleData sql.NullString
	)
	err := s.Scan(&d.ID, &d.Title, &d.UserID, &d.IsArchived, &d.IsPublished,
		&d.Content, &d.CoverImage, &d.Icon, &parent, &d.Kind, &databaseID,
		&articleData, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.ParentDocument = parent.String
	d.DatabaseID = databaseID.String
	if articleData.Valid && articleData.String != "" {
		var a models.ArticleData
		if err := json.Unmarshal([]byte(articleData.String), &a); err != nil {
			return nil, fmt.Errorf("store: decode article data: %w", err)
		}
		d.Article = &a
	}
	return &d, nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// InsertDocument inserts a single document. An empty ID is assigned a
// fresh UUID; timestamps are set to now.
func (db *DB) InsertDocument(d *models.Document) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := insertDocumentTx(tx, d); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertDatabase inserts a database document together with its synthesized
// default Title property and default table view in one transaction, so the
// bundle is atomic from the caller's point of view.
func (db *DB) InsertDatabase(d *models.Document, titleProp *models.Property, defaultView *models.View) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertDocumentTx(tx, d); err != nil {
		return err
	}
	titleProp.DatabaseID = d.ID
	if err := insertPropertyTx(tx, titleProp); err != nil {
		return err
	}
	defaultView.DatabaseID = d.ID
	if err := insertViewTx(tx, defaultView); err != nil {
		return err
	}
	return tx.Commit()
}

func insertDocumentTx(tx *sql.Tx, d *models.Document) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Kind == "" {
		d.Kind = models.KindPage
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	var articleData any
	if d.Article != nil {
		raw, err := json.Marshal(d.Article)
		if err != nil {
			return fmt.Errorf("store: encode article data: %w", err)
		}
		articleData = string(raw)
	}

	_, err := tx.Exec(`
		INSERT INTO documents (id, title, user_id, is_archived, is_published,
			content, cover_image, icon, parent_document, kind, database_id,
			article_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Title, d.UserID, d.IsArchived, d.IsPublished, d.Content,
		d.CoverImage, d.Icon, nullable(d.ParentDocument), string(d.Kind),
		nullable(d.DatabaseID), articleData, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: insert document: %w", err)
	}
	return nil
}

// GetDocument returns a document by id, or apperr.ErrNotFound.
func (db *DB) GetDocument(id string) (*models.Document, error) {
	row := db.conn.QueryRow(`SELECT `+docColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get document: %w", err)
	}
	return d, nil
}

// UpdateDocument merge-patches the allowed fields of a document.
// Nil patch fields are left unchanged.
func (db *DB) UpdateDocument(id string, patch models.DocumentPatch) error {
	set := "updated_at = ?"
	args := []any{time.Now().UTC()}
	if patch.Title != nil {
		set += ", title = ?"
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		set += ", content = ?"
		args = append(args, *patch.Content)
	}
	if patch.CoverImage != nil {
		set += ", cover_image = ?"
		args = append(args, *patch.CoverImage)
	}
	if patch.Icon != nil {
		set += ", icon = ?"
		args = append(args, *patch.Icon)
	}
	if patch.IsPublished != nil {
		set += ", is_published = ?"
		args = append(args, *patch.IsPublished)
	}
	args = append(args, id)

	res, err := db.conn.Exec(`UPDATE documents SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("store: update document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// SetArticleData replaces the article payload of an article document.
func (db *DB) SetArticleData(id string, a *models.ArticleData) error {
	var articleData any
	if a != nil {
		raw, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("store: encode article data: %w", err)
		}
		articleData = string(raw)
	}
	res, err := db.conn.Exec(`UPDATE documents SET article_data = ?, updated_at = ? WHERE id = ?`,
		articleData, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: set article data: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// treeCTE selects the ids of a document and all documents transitively
// reachable via parent_document edges, scoped to the same owner for the
// descendant part. UNION (not UNION ALL) guards against cycles.
const treeCTE = `
	WITH RECURSIVE tree(id) AS (
		SELECT ?
		UNION
		SELECT d.id FROM documents d JOIN tree t ON d.parent_document = t.id
		WHERE d.user_id = ?
	)`

// ArchiveTree soft-deletes a document and every descendant owned by the
// same user in one transaction. Idempotent.
func (db *DB) ArchiveTree(id, userID string) error {
	_, err := db.conn.Exec(treeCTE+`
		UPDATE documents SET is_archived = 1, updated_at = ?
		WHERE id IN (SELECT id FROM tree)
	`, id, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: archive tree: %w", err)
	}
	return nil
}

// RestoreTree clears the archived flag on a document and all descendants;
// descendants are restored unconditionally. If the document's parent is
// itself still archived, the document is detached and becomes a root.
func (db *DB) RestoreTree(id, userID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var parent sql.NullString
	if err := tx.QueryRow(`SELECT parent_document FROM documents WHERE id = ?`, id).Scan(&parent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("store: restore lookup: %w", err)
	}
	if parent.Valid {
		var parentArchived bool
		err := tx.QueryRow(`SELECT is_archived FROM documents WHERE id = ?`, parent.String).Scan(&parentArchived)
		if err == nil && parentArchived {
			if _, err := tx.Exec(`UPDATE documents SET parent_document = NULL WHERE id = ?`, id); err != nil {
				return fmt.Errorf("store: detach parent: %w", err)
			}
		}
	}

	_, err = tx.Exec(treeCTE+`
		UPDATE documents SET is_archived = 0, updated_at = ?
		WHERE id IN (SELECT id FROM tree)
	`, id, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: restore tree: %w", err)
	}
	return tx.Commit()
}

// DeleteDocument hard-deletes a single document. Dependent records
// (properties, views, cell values, embeds, database rows) go with it via
// foreign keys; ordinary children are detached, not deleted.
func (db *DB) DeleteDocument(id string) error {
	_, err := db.conn.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete document: %w", err)
	}
	return nil
}

func (db *DB) queryDocuments(query string, args ...any) ([]models.Document, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// ListChildren returns the active documents of a user directly under
// parentID (empty = roots), newest first.
func (db *DB) ListChildren(userID, parentID string) ([]models.Document, error) {
	if parentID == "" {
		return db.queryDocuments(`
			SELECT `+docColumns+` FROM documents
			WHERE user_id = ? AND is_archived = 0 AND parent_document IS NULL
			ORDER BY created_at DESC, rowid DESC
		`, userID)
	}
	return db.queryDocuments(`
		SELECT `+docColumns+` FROM documents
		WHERE user_id = ? AND is_archived = 0 AND parent_document = ?
		ORDER BY created_at DESC, rowid DESC
	`, userID, parentID)
}

// ListTrash returns every archived document of a user, newest first.
func (db *DB) ListTrash(userID string) ([]models.Document, error) {
	return db.queryDocuments(`
		SELECT `+docColumns+` FROM documents
		WHERE user_id = ? AND is_archived = 1
		ORDER BY created_at DESC, rowid DESC
	`, userID)
}

// ListActive returns every non-archived document of a user, newest first.
func (db *DB) ListActive(userID string) ([]models.Document, error) {
	return db.queryDocuments(`
		SELECT `+docColumns+` FROM documents
		WHERE user_id = ? AND is_archived = 0
		ORDER BY created_at DESC, rowid DESC
	`, userID)
}

// ListDatabases returns the active database documents of a user.
func (db *DB) ListDatabases(userID string) ([]models.Document, error) {
	return db.queryDocuments(`
		SELECT `+docColumns+` FROM documents
		WHERE user_id = ? AND kind = 'database' AND is_archived = 0
		ORDER BY created_at DESC, rowid DESC
	`, userID)
}

// ListRows returns the active row documents of a database in creation order.
func (db *DB) ListRows(databaseID string) ([]models.Document, error) {
	return db.queryDocuments(`
		SELECT `+docColumns+` FROM documents
		WHERE database_id = ? AND is_archived = 0
		ORDER BY created_at ASC, rowid ASC
	`, databaseID)
}

// ListArticles returns the active article documents of a user, newest
// first, optionally restricted to published ones.
func (db *DB) ListArticles(userID string, publishedOnly bool) ([]models.Document, error) {
	q := `
		SELECT ` + docColumns + ` FROM documents
		WHERE user_id = ? AND kind = 'article' AND is_archived = 0`
	if publishedOnly {
		q += ` AND is_published = 1`
	}
	q += ` ORDER BY created_at DESC, rowid DESC`
	return db.queryDocuments(q, userID)
}
