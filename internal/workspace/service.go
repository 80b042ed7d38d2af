// Package workspace implements the document/database domain service: the
// document tree with archive cascade, the property registry, the cell
// value store, the view registry, and the embedding ledger.
//
// Every operation resolves the caller identity from the request context
// before touching data. Reads of private documents and all mutations
// require the caller to own the resource.
package workspace

import (
	"context"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/identity"
	"github.com/komumoyu/Motion/internal/models"
	"github.com/komumoyu/Motion/internal/store"
)

// Event kinds published to the event sink.
const (
	EventDocumentCreated  = "document.created"
	EventDocumentUpdated  = "document.updated"
	EventDocumentArchived = "document.archived"
	EventDocumentRestored = "document.restored"
	EventDocumentRemoved  = "document.removed"
	EventCellUpdated      = "cell.updated"
	EventEmbedAdded       = "embed.added"
	EventEmbedRemoved     = "embed.removed"
	EventEmbedMoved       = "embed.moved"
)

// Events receives workspace change notifications. Implementations must not
// block; the SSE broker satisfies this interface.
type Events interface {
	Publish(event string, data any)
}

// Service coordinates store operations and ownership checks.
type Service struct {
	store  store.WorkspaceStore
	events Events
}

// NewService creates a workspace service. events may be nil.
func NewService(st store.WorkspaceStore, events Events) *Service {
	return &Service{store: st, events: events}
}

func (s *Service) publish(event string, data any) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}

// principal extracts the caller identity or fails with ErrUnauthenticated.
func principal(ctx context.Context) (identity.Principal, error) {
	p, ok := identity.FromContext(ctx)
	if !ok {
		return identity.Principal{}, apperr.ErrUnauthenticated
	}
	return p, nil
}

// ownedDocument loads a document and verifies the caller owns it.
func (s *Service) ownedDocument(ctx context.Context, id string) (*models.Document, identity.Principal, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, identity.Principal{}, err
	}
	d, err := s.store.GetDocument(id)
	if err != nil {
		return nil, p, err
	}
	if d.UserID != p.Subject {
		return nil, p, apperr.ErrUnauthorized
	}
	return d, p, nil
}

// ownedDatabase loads a database document and verifies kind and ownership.
// A document of another kind is reported as not found, matching the read
// path collaborators expect.
func (s *Service) ownedDatabase(ctx context.Context, databaseID string) (*models.Document, identity.Principal, error) {
	d, p, err := s.ownedDocument(ctx, databaseID)
	if err != nil {
		return nil, p, err
	}
	if !d.IsDatabase() {
		return nil, p, apperr.ErrNotFound
	}
	return d, p, nil
}
