// Package store provides SQLite-backed persistence for the workspace:
// the document tree, property registry, cell values, views, and the
// embedding ledger.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Hard-delete policy: dependents (properties, views, cell values, embeds,
// database rows) cascade with their owning document in one transaction;
// ordinary children are detached and become roots instead.
const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL DEFAULT '',
	user_id         TEXT NOT NULL,
	is_archived     INTEGER NOT NULL DEFAULT 0,
	is_published    INTEGER NOT NULL DEFAULT 0,
	content         TEXT NOT NULL DEFAULT '',
	cover_image     TEXT NOT NULL DEFAULT '',
	icon            TEXT NOT NULL DEFAULT '',
	parent_document TEXT REFERENCES documents(id) ON DELETE SET NULL,
	kind            TEXT NOT NULL DEFAULT 'page',
	database_id     TEXT REFERENCES documents(id) ON DELETE CASCADE,
	article_data    TEXT,
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_user     ON documents(user_id);
CREATE INDEX IF NOT EXISTS idx_documents_parent   ON documents(user_id, parent_document);
CREATE INDEX IF NOT EXISTS idx_documents_database ON documents(database_id);
CREATE INDEX IF NOT EXISTS idx_documents_kind     ON documents(kind);

CREATE TABLE IF NOT EXISTS properties (
	id          TEXT PRIMARY KEY,
	database_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	options     TEXT,
	ord         INTEGER NOT NULL,
	width       INTEGER
);

CREATE INDEX IF NOT EXISTS idx_properties_database ON properties(database_id, ord);

CREATE TABLE IF NOT EXISTS property_values (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	value       TEXT NOT NULL DEFAULT 'null'
);

CREATE INDEX IF NOT EXISTS idx_values_document ON property_values(document_id);
CREATE INDEX IF NOT EXISTS idx_values_property ON property_values(property_id);
CREATE INDEX IF NOT EXISTS idx_values_pair     ON property_values(document_id, property_id);

CREATE TABLE IF NOT EXISTS views (
	id          TEXT PRIMARY KEY,
	database_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	is_default  INTEGER NOT NULL DEFAULT 0,
	sort_by     TEXT,
	filter_by   TEXT,
	group_by    TEXT
);

CREATE INDEX IF NOT EXISTS idx_views_database ON views(database_id);

CREATE TABLE IF NOT EXISTS embedded_databases (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	database_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_embeds_document ON embedded_databases(document_id);
CREATE INDEX IF NOT EXISTS idx_embeds_database ON embedded_databases(database_id);
CREATE INDEX IF NOT EXISTS idx_embeds_pair     ON embedded_databases(document_id, database_id);
`

// DB wraps a sql.DB with workspace-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
