package workspace

import (
	"context"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

// UserDatabases lists the caller's active database documents.
func (s *Service) UserDatabases(ctx context.Context) ([]models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListDatabases(p.Subject)
}

// DatabaseRows lists the active row documents of a database.
func (s *Service) DatabaseRows(ctx context.Context, databaseID string) ([]models.Document, error) {
	if _, _, err := s.ownedDatabase(ctx, databaseID); err != nil {
		return nil, err
	}
	return s.store.ListRows(databaseID)
}

// CreateRow adds a row to a database. The row is itself a document, so it
// can be opened as a full page; it is parented under the database and
// carries the back-reference marking it as a row.
func (s *Service) CreateRow(ctx context.Context, databaseID, title string) (*models.Document, error) {
	if _, _, err := s.ownedDatabase(ctx, databaseID); err != nil {
		return nil, err
	}
	return s.Create(ctx, CreateInput{
		Title:          title,
		ParentDocument: databaseID,
		Kind:           models.KindPage,
		DatabaseID:     databaseID,
	})
}

// CreateProperty appends a typed column to a database. The new property's
// order is the current property count.
func (s *Service) CreateProperty(ctx context.Context, databaseID, name string, typ models.PropertyType, options []models.PropertyOption) (*models.Property, error) {
	if err := typ.Validate(); err != nil {
		return nil, apperr.ErrInvalidValue
	}
	if _, _, err := s.ownedDatabase(ctx, databaseID); err != nil {
		return nil, err
	}
	prop := &models.Property{
		DatabaseID: databaseID,
		Name:       name,
		Type:       typ,
		Options:    options,
	}
	if err := s.store.InsertProperty(prop); err != nil {
		return nil, err
	}
	return prop, nil
}

// DatabaseProperties returns the columns of a database sorted by order.
func (s *Service) DatabaseProperties(ctx context.Context, databaseID string) ([]models.Property, error) {
	if _, _, err := s.ownedDatabase(ctx, databaseID); err != nil {
		return nil, err
	}
	return s.store.ListProperties(databaseID)
}

// PropertyDetails returns a single property.
func (s *Service) PropertyDetails(ctx context.Context, propertyID string) (*models.Property, error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}
	return s.store.GetProperty(propertyID)
}

// ownedProperty loads a property and verifies the caller owns the
// database it belongs to.
func (s *Service) ownedProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	prop, err := s.store.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}
	database, err := s.store.GetDocument(prop.DatabaseID)
	if err != nil {
		return nil, err
	}
	if database.UserID != p.Subject {
		return nil, apperr.ErrUnauthorized
	}
	return prop, nil
}

// UpdatePropertyWidth persists a column width, silently clamped into
// [80, 800] rather than rejected.
func (s *Service) UpdatePropertyWidth(ctx context.Context, propertyID string, width int) error {
	if _, err := s.ownedProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.store.UpdatePropertyWidth(propertyID, models.ClampWidth(width))
}

// UpdatePropertyOptions replaces the select/multiSelect choice list
// wholesale. Cell values referencing removed option ids are left alone.
func (s *Service) UpdatePropertyOptions(ctx context.Context, propertyID string, options []models.PropertyOption) error {
	for _, o := range options {
		if err := o.Validate(); err != nil {
			return apperr.ErrInvalidValue
		}
	}
	if _, err := s.ownedProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.store.UpdatePropertyOptions(propertyID, options)
}

// DeleteProperty removes a column and every cell value stored under it.
// The two deletes are one transaction, so collaborators never observe an
// orphaned value.
func (s *Service) DeleteProperty(ctx context.Context, propertyID string) error {
	if _, err := s.ownedProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.store.DeleteProperty(propertyID)
}

// SetPropertyValue creates or overwrites the cell value of one
// (row document, property) pair and returns the record id. The value must
// be a member of the cell union; it is NOT checked against the property's
// declared type — the UI is responsible for sending an appropriate value.
func (s *Service) SetPropertyValue(ctx context.Context, documentID, propertyID string, value models.Value) (string, error) {
	if _, _, err := s.ownedDocument(ctx, documentID); err != nil {
		return "", err
	}
	if _, err := s.store.GetProperty(propertyID); err != nil {
		return "", err
	}
	id, err := s.store.UpsertCellValue(documentID, propertyID, value)
	if err != nil {
		return "", err
	}
	s.publish(EventCellUpdated, map[string]string{"documentId": documentID, "propertyId": propertyID})
	return id, nil
}

// DocumentProperties returns the stored cell values of a row document,
// unordered; the renderer joins them on propertyId. Absent pairs are
// empty cells.
func (s *Service) DocumentProperties(ctx context.Context, documentID string) ([]models.CellValue, error) {
	if _, _, err := s.ownedDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.store.ListCellValues(documentID)
}

// DatabaseViews returns the views of a database. The caller renders the
// default view, falling back to the first one; single-default is not
// enforced here.
func (s *Service) DatabaseViews(ctx context.Context, databaseID string) ([]models.View, error) {
	if _, _, err := s.ownedDatabase(ctx, databaseID); err != nil {
		return nil, err
	}
	return s.store.ListViews(databaseID)
}
