package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

// GetEmbed returns an embedding by id, or apperr.ErrNotFound.
func (db *DB) GetEmbed(id string) (*models.EmbeddedDatabase, error) {
	var e models.EmbeddedDatabase
	err := db.conn.QueryRow(`
		SELECT id, document_id, database_id, position, created_at
		FROM embedded_databases WHERE id = ?
	`, id).Scan(&e.ID, &e.DocumentID, &e.DatabaseID, &e.Position, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get embed: %w", err)
	}
	return &e, nil
}

// FindEmbed returns the embedding of a (host document, database) pair, or
// apperr.ErrNotFound. At most one exists per pair.
func (db *DB) FindEmbed(documentID, databaseID string) (*models.EmbeddedDatabase, error) {
	var e models.EmbeddedDatabase
	err := db.conn.QueryRow(`
		SELECT id, document_id, database_id, position, created_at
		FROM embedded_databases WHERE document_id = ? AND database_id = ?
	`, documentID, databaseID).Scan(&e.ID, &e.DocumentID, &e.DatabaseID, &e.Position, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find embed: %w", err)
	}
	return &e, nil
}

// InsertEmbed records a new embedding. Pair uniqueness is the caller's
// lookup-before-insert responsibility.
func (db *DB) InsertEmbed(e *models.EmbeddedDatabase) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now().UTC()
	_, err := db.conn.Exec(`
		INSERT INTO embedded_databases (id, document_id, database_id, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.DocumentID, e.DatabaseID, e.Position, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert embed: %w", err)
	}
	return nil
}

// ListEmbeds returns all embeddings of a host document joined with a
// snapshot of each target database, sorted ascending by position with
// insertion order as the stable tiebreak. Positions may collide or gap.
func (db *DB) ListEmbeds(documentID string) ([]models.EmbedWithDatabase, error) {
	rows, err := db.conn.Query(`
		SELECT e.id, e.document_id, e.database_id, e.position, e.created_at,
		       `+prefixedDocColumns("d")+`
		FROM embedded_databases e
		LEFT JOIN documents d ON d.id = e.database_id
		WHERE e.document_id = ?
		ORDER BY e.position ASC, e.rowid ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("store: list embeds: %w", err)
	}
	defer rows.Close()

	var out []models.EmbedWithDatabase
	for rows.Next() {
		var (
			e           models.EmbeddedDatabase
			d           models.Document
			docID       sql.NullString
			title       sql.NullString
			userID      sql.NullString
			isArchived  sql.NullBool
			isPublished sql.NullBool
			content     sql.NullString
			coverImage  sql.NullString
			icon        sql.NullString
			parent      sql.NullString
			kind        sql.NullString
			databaseID  sql.NullString
			articleData sql.NullString
			createdAt   sql.NullTime
			updatedAt   sql.NullTime
		)
		err := rows.Scan(&e.ID, &e.DocumentID, &e.DatabaseID, &e.Position, &e.CreatedAt,
			&docID, &title, &userID, &isArchived, &isPublished, &content,
			&coverImage, &icon, &parent, &kind, &databaseID, &articleData,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		item := models.EmbedWithDatabase{EmbeddedDatabase: e}
		if docID.Valid {
			d.ID = docID.String
			d.Title = title.String
			d.UserID = userID.String
			d.IsArchived = isArchived.Bool
			d.IsPublished = isPublished.Bool
			d.Content = content.String
			d.CoverImage = coverImage.String
			d.Icon = icon.String
			d.ParentDocument = parent.String
			d.Kind = models.DocumentKind(kind.String)
			d.DatabaseID = databaseID.String
			d.CreatedAt = createdAt.Time
			d.UpdatedAt = updatedAt.Time
			item.Database = &d
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateEmbedPosition overwrites the position of an embedding.
func (db *DB) UpdateEmbedPosition(id string, position int) error {
	res, err := db.conn.Exec(`UPDATE embedded_databases SET position = ? WHERE id = ?`, position, id)
	if err != nil {
		return fmt.Errorf("store: update embed position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteEmbedPair removes the embedding of a pair if present. The target
// database document is untouched.
func (db *DB) DeleteEmbedPair(documentID, databaseID string) error {
	_, err := db.conn.Exec(`
		DELETE FROM embedded_databases WHERE document_id = ? AND database_id = ?
	`, documentID, databaseID)
	if err != nil {
		return fmt.Errorf("store: delete embed: %w", err)
	}
	return nil
}

// prefixedDocColumns qualifies the document column list with a table alias
// for join queries.
func prefixedDocColumns(alias string) string {
	return alias + `.id, ` + alias + `.title, ` + alias + `.user_id, ` +
		alias + `.is_archived, ` + alias + `.is_published, ` + alias + `.content, ` +
		alias + `.cover_image, ` + alias + `.icon, ` + alias + `.parent_document, ` +
		alias + `.kind, ` + alias + `.database_id, ` + alias + `.article_data, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
