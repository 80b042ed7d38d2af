package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/komumoyu/Motion/internal/models"
)

// InsertView stores a view configuration.
func (db *DB) InsertView(v *models.View) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertViewTx(tx, v); err != nil {
		return err
	}
	return tx.Commit()
}

func insertViewTx(tx *sql.Tx, v *models.View) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}

	var sortBy, filterBy any
	if v.SortBy != nil {
		raw, err := json.Marshal(v.SortBy)
		if err != nil {
			return fmt.Errorf("store: encode sort spec: %w", err)
		}
		sortBy = string(raw)
	}
	if v.FilterBy != nil {
		raw, err := json.Marshal(v.FilterBy)
		if err != nil {
			return fmt.Errorf("store: encode filter spec: %w", err)
		}
		filterBy = string(raw)
	}

	_, err := tx.Exec(`
		INSERT INTO views (id, database_id, name, type, is_default, sort_by, filter_by, group_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.DatabaseID, v.Name, string(v.Type), v.IsDefault, sortBy, filterBy, nullable(v.GroupBy))
	if err != nil {
		return fmt.Errorf("store: insert view: %w", err)
	}
	return nil
}

// ListViews returns all views of a database in storage order. The registry
// does not enforce a single default; callers pick the default view or fall
// back to the first one.
func (db *DB) ListViews(databaseID string) ([]models.View, error) {
	rows, err := db.conn.Query(`
		SELECT id, database_id, name, type, is_default, sort_by, filter_by, group_by
		FROM views WHERE database_id = ?
		ORDER BY rowid ASC
	`, databaseID)
	if err != nil {
		return nil, fmt.Errorf("store: list views: %w", err)
	}
	defer rows.Close()

	var out []models.View
	for rows.Next() {
		var (
			v                models.View
			sortBy, filterBy sql.NullString
			groupBy          sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.DatabaseID, &v.Name, &v.Type, &v.IsDefault, &sortBy, &filterBy, &groupBy); err != nil {
			return nil, err
		}
		if sortBy.Valid && sortBy.String != "" {
			if err := json.Unmarshal([]byte(sortBy.String), &v.SortBy); err != nil {
				return nil, fmt.Errorf("store: decode sort spec: %w", err)
			}
		}
		if filterBy.Valid && filterBy.String != "" {
			if err := json.Unmarshal([]byte(filterBy.String), &v.FilterBy); err != nil {
				return nil, fmt.Errorf("store: decode filter spec: %w", err)
			}
		}
		v.GroupBy = groupBy.String
		out = append(out, v)
	}
	return out, rows.Err()
}
