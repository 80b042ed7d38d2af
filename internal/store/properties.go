package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

func scanProperty(s rowScanner) (*models.Property, error) {
	var (
		p       models.Property
		options sql.NullString
		width   sql.NullInt64
	)
	if err := s.Scan(&p.ID, &p.DatabaseID, &p.Name, &p.Type, &options, &p.Order, &width); err != nil {
		return nil, err
	}
	if options.Valid && options.String != "" {
		if err := json.Unmarshal([]byte(options.String), &p.Options); err != nil {
			return nil, fmt.Errorf("store: decode property options: %w", err)
		}
	}
	p.Width = int(width.Int64)
	return &p, nil
}

func encodeOptions(options []models.PropertyOption) (any, error) {
	if options == nil {
		return nil, nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("store: encode property options: %w", err)
	}
	return string(raw), nil
}

// InsertProperty appends a property to its database: the order is assigned
// as the current property count, keeping orders dense at creation time.
func (db *DB) InsertProperty(p *models.Property) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertPropertyTx(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPropertyTx(tx *sql.Tx, p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	var count int
	if err := tx.QueryRow(`SELECT count(*) FROM properties WHERE database_id = ?`, p.DatabaseID).Scan(&count); err != nil {
		return fmt.Errorf("store: count properties: %w", err)
	}
	p.Order = count

	options, err := encodeOptions(p.Options)
	if err != nil {
		return err
	}

	var width any
	if p.Width != 0 {
		width = p.Width
	}

	_, err = tx.Exec(`
		INSERT INTO properties (id, database_id, name, type, options, ord, width)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.DatabaseID, p.Name, string(p.Type), options, p.Order, width)
	if err != nil {
		return fmt.Errorf("store: insert property: %w", err)
	}
	return nil
}

// ListProperties returns all properties of a database sorted ascending by
// order, with storage order as the tiebreak.
func (db *DB) ListProperties(databaseID string) ([]models.Property, error) {
	rows, err := db.conn.Query(`
		SELECT id, database_id, name, type, options, ord, width
		FROM properties WHERE database_id = ?
		ORDER BY ord ASC, rowid ASC
	`, databaseID)
	if err != nil {
		return nil, fmt.Errorf("store: list properties: %w", err)
	}
	defer rows.Close()

	var out []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetProperty returns a property by id, or apperr.ErrNotFound.
func (db *DB) GetProperty(id string) (*models.Property, error) {
	row := db.conn.QueryRow(`
		SELECT id, database_id, name, type, options, ord, width
		FROM properties WHERE id = ?
	`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get property: %w", err)
	}
	return p, nil
}

// UpdatePropertyWidth persists a column width. The caller clamps.
func (db *DB) UpdatePropertyWidth(id string, width int) error {
	res, err := db.conn.Exec(`UPDATE properties SET width = ? WHERE id = ?`, width, id)
	if err != nil {
		return fmt.Errorf("store: update property width: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// UpdatePropertyOptions replaces the options list wholesale. Stored cell
// values referencing removed option ids are not revalidated.
func (db *DB) UpdatePropertyOptions(id string, options []models.PropertyOption) error {
	encoded, err := encodeOptions(options)
	if err != nil {
		return err
	}
	res, err := db.conn.Exec(`UPDATE properties SET options = ? WHERE id = ?`, encoded, id)
	if err != nil {
		return fmt.Errorf("store: update property options: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteProperty removes a property and every cell value referencing it in
// one transaction. Re-running the delete is a no-op.
func (db *DB) DeleteProperty(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM property_values WHERE property_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete property values: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM properties WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete property: %w", err)
	}
	return tx.Commit()
}
