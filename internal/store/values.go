package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/komumoyu/Motion/internal/models"
)

// UpsertCellValue stores a value for one (row document, property) pair:
// an existing record is overwritten in place, otherwise a new one is
// inserted. Uniqueness of the pair is maintained by this
// look-up-then-patch-or-insert, not by a constraint. Returns the record id.
func (db *DB) UpsertCellValue(documentID, propertyID string, value models.Value) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("store: encode cell value: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var id string
	err = tx.QueryRow(`
		SELECT id FROM property_values
		WHERE document_id = ? AND property_id = ?
	`, documentID, propertyID).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO property_values (id, document_id, property_id, value)
			VALUES (?, ?, ?, ?)
		`, id, documentID, propertyID, string(raw))
		if err != nil {
			return "", fmt.Errorf("store: insert cell value: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("store: lookup cell value: %w", err)
	default:
		if _, err := tx.Exec(`UPDATE property_values SET value = ? WHERE id = ?`, string(raw), id); err != nil {
			return "", fmt.Errorf("store: update cell value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// ListCellValues returns all stored cell values of a row document,
// unordered. Absent pairs mean empty cells.
func (db *DB) ListCellValues(documentID string) ([]models.CellValue, error) {
	rows, err := db.conn.Query(`
		SELECT id, document_id, property_id, value
		FROM property_values WHERE document_id = ?
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("store: list cell values: %w", err)
	}
	defer rows.Close()

	var out []models.CellValue
	for rows.Next() {
		var (
			cv  models.CellValue
			raw string
		)
		if err := rows.Scan(&cv.ID, &cv.DocumentID, &cv.PropertyID, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &cv.Value); err != nil {
			return nil, fmt.Errorf("store: decode cell value %s: %w", cv.ID, err)
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}
