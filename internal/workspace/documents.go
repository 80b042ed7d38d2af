package workspace

import (
	"context"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
	"github.com/komumoyu/Motion/internal/store"
)

// CreateInput are the parameters for creating a document.
type CreateInput struct {
	Title          string
	ParentDocument string
	Kind           models.DocumentKind
	DatabaseID     string // set when creating a database row
}

// Create inserts a new document owned by the caller. Creating a database
// also synthesizes its default "Title" text property (order 0) and default
// table view atomically with the document itself.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	kind := in.Kind
	if kind == "" {
		kind = models.KindPage
	}
	doc := &models.Document{
		Title:          in.Title,
		UserID:         p.Subject,
		ParentDocument: in.ParentDocument,
		Kind:           kind,
		DatabaseID:     in.DatabaseID,
	}

	if kind == models.KindDatabase {
		titleProp := &models.Property{Name: "Title", Type: models.TypeText}
		defaultView := &models.View{Name: "All", Type: models.ViewTable, IsDefault: true}
		if err := s.store.InsertDatabase(doc, titleProp, defaultView); err != nil {
			return nil, err
		}
	} else {
		if err := s.store.InsertDocument(doc); err != nil {
			return nil, err
		}
	}

	s.publish(EventDocumentCreated, doc)
	return doc, nil
}

// GetByID returns a document. Published, non-archived documents are public
// and readable without any identity; everything else requires the caller
// to be the owner.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Document, error) {
	d, err := s.store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	if d.IsPublished && !d.IsArchived {
		return d, nil
	}
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if d.UserID != p.Subject {
		return nil, apperr.ErrUnauthorized
	}
	return d, nil
}

// Update merge-patches the allowed fields of a document.
func (s *Service) Update(ctx context.Context, id string, patch models.DocumentPatch) (*models.Document, error) {
	if _, _, err := s.ownedDocument(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.UpdateDocument(id, patch); err != nil {
		return nil, err
	}
	d, err := s.store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	s.publish(EventDocumentUpdated, d)
	return d, nil
}

// RemoveIcon clears the icon of a document.
func (s *Service) RemoveIcon(ctx context.Context, id string) (*models.Document, error) {
	empty := ""
	return s.Update(ctx, id, models.DocumentPatch{Icon: &empty})
}

// RemoveCoverImage clears the cover image of a document.
func (s *Service) RemoveCoverImage(ctx context.Context, id string) (*models.Document, error) {
	empty := ""
	return s.Update(ctx, id, models.DocumentPatch{CoverImage: &empty})
}

// Archive soft-deletes a document and, recursively, every descendant
// owned by the same user. Idempotent.
func (s *Service) Archive(ctx context.Context, id string) (*models.Document, error) {
	_, p, err := s.ownedDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.ArchiveTree(id, p.Subject); err != nil {
		return nil, err
	}
	d, err := s.store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	s.publish(EventDocumentArchived, d)
	return d, nil
}

// Restore reverses an archive. Descendants are restored unconditionally;
// the document itself is detached from its parent when that parent is
// still archived, so it never reappears under a hidden node.
func (s *Service) Restore(ctx context.Context, id string) (*models.Document, error) {
	_, p, err := s.ownedDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.RestoreTree(id, p.Subject); err != nil {
		return nil, err
	}
	d, err := s.store.GetDocument(id)
	if err != nil {
		return nil, err
	}
	s.publish(EventDocumentRestored, d)
	return d, nil
}

// Remove hard-deletes a document. Dependent records cascade; ordinary
// children become roots.
func (s *Service) Remove(ctx context.Context, id string) error {
	d, _, err := s.ownedDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDocument(id); err != nil {
		return err
	}
	s.publish(EventDocumentRemoved, d)
	return nil
}

// Sidebar lists the caller's active documents directly under parentID
// (empty for roots), newest first.
func (s *Service) Sidebar(ctx context.Context, parentID string) ([]models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListChildren(p.Subject, parentID)
}

// Trash lists every archived document of the caller.
func (s *Service) Trash(ctx context.Context) ([]models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListTrash(p.Subject)
}

// SearchIndex lists every active document of the caller, newest first.
// The quick-switcher filters this set client-side.
func (s *Service) SearchIndex(ctx context.Context) ([]models.Document, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListActive(p.Subject)
}

// Search performs a full-text search over the caller's active documents.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]store.SearchHit, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.Search(p.Subject, query, limit)
}
