//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
)

// The FTS index is maintained entirely by triggers so that rows removed by
// foreign-key cascades are cleaned up too.
func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			id UNINDEXED,
			title,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);

		CREATE TRIGGER IF NOT EXISTS documents_fts_ai AFTER INSERT ON documents BEGIN
			INSERT INTO documents_fts (id, title, content) VALUES (new.id, new.title, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS documents_fts_au AFTER UPDATE OF title, content ON documents BEGIN
			DELETE FROM documents_fts WHERE id = old.id;
			INSERT INTO documents_fts (id, title, content) VALUES (new.id, new.title, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS documents_fts_ad AFTER DELETE ON documents BEGIN
			DELETE FROM documents_fts WHERE id = old.id;
		END;
	`)
	return err
}

// Search performs an FTS5 full-text search over a user's active documents.
func (db *DB) Search(userID, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT d.id,
		       d.title,
		       snippet(documents_fts, 2, '<b>', '</b>', '...', 64)
		FROM documents_fts f
		JOIN documents d ON d.id = f.id
		WHERE documents_fts MATCH ? AND d.user_id = ? AND d.is_archived = 0
		ORDER BY rank
		LIMIT ?
	`, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.ID, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
