package workspace

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/komumoyu/Motion/internal/apperr"
	"github.com/komumoyu/Motion/internal/models"
)

// AddEmbed records that a database is embedded inside a host document.
// The caller must own both sides. Embedding the same pair twice is an
// idempotent no-op returning the existing embedding id. Position defaults
// to 0 when the caller does not care.
func (s *Service) AddEmbed(ctx context.Context, documentID, databaseID string, position int) (string, error) {
	if _, _, err := s.ownedDocument(ctx, documentID); err != nil {
		return "", err
	}
	if _, _, err := s.ownedDatabase(ctx, databaseID); err != nil {
		return "", err
	}

	existing, err := s.store.FindEmbed(documentID, databaseID)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	embed := &models.EmbeddedDatabase{
		DocumentID: documentID,
		DatabaseID: databaseID,
		Position:   position,
	}
	if err := s.store.InsertEmbed(embed); err != nil {
		return "", err
	}
	s.publish(EventEmbedAdded, embed)
	return embed.ID, nil
}

// Embeds returns the embeddings of a host document joined with their
// target database snapshots, sorted ascending by position (ties broken by
// insertion order).
func (s *Service) Embeds(ctx context.Context, documentID string) ([]models.EmbedWithDatabase, error) {
	if _, _, err := s.ownedDocument(ctx, documentID); err != nil {
		return nil, err
	}
	return s.store.ListEmbeds(documentID)
}

// RemoveEmbed deletes the embedding of a (host document, database) pair if
// present and returns its id. The underlying database and its rows are
// untouched. Removing an absent pair is a no-op.
func (s *Service) RemoveEmbed(ctx context.Context, documentID, databaseID string) (string, error) {
	if _, _, err := s.ownedDocument(ctx, documentID); err != nil {
		return "", err
	}
	embed, err := s.store.FindEmbed(documentID, databaseID)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := s.store.DeleteEmbedPair(documentID, databaseID); err != nil {
		return "", err
	}
	s.publish(EventEmbedRemoved, embed)
	return embed.ID, nil
}

// UpdateEmbedPosition overwrites the position of one embedding. The caller
// must own the host document the embedding lives in.
func (s *Service) UpdateEmbedPosition(ctx context.Context, embedID string, position int) error {
	p, err := principal(ctx)
	if err != nil {
		return err
	}
	embed, err := s.store.GetEmbed(embedID)
	if err != nil {
		return err
	}
	host, err := s.store.GetDocument(embed.DocumentID)
	if err != nil {
		return err
	}
	if host.UserID != p.Subject {
		return apperr.ErrUnauthorized
	}
	if err := s.store.UpdateEmbedPosition(embedID, position); err != nil {
		return err
	}
	s.publish(EventEmbedMoved, map[string]any{"id": embedID, "position": position})
	return nil
}

// ReorderEmbeds applies a drag-and-drop of embedding movedID within a host
// document. Dropping onto targetID reinserts the moved embedding at the
// target's index and reassigns every embedding a fresh position equal to
// its resulting index (0..n-1). Dropping past the end (empty targetID)
// assigns max(existing positions)+1 to the moved embedding only.
//
// Each position write is its own independent mutation, issued
// concurrently; a failed write leaves the ledger partially reordered, and
// the UI reverts its optimistic order to the state this method returns on
// error paths by re-reading.
func (s *Service) ReorderEmbeds(ctx context.Context, documentID, movedID, targetID string) ([]models.EmbedWithDatabase, error) {
	embeds, err := s.Embeds(ctx, documentID)
	if err != nil {
		return nil, err
	}

	movedIdx := -1
	for i, e := range embeds {
		if e.ID == movedID {
			movedIdx = i
			break
		}
	}
	if movedIdx < 0 {
		return nil, apperr.ErrNotFound
	}

	if targetID == "" {
		maxPos := 0
		for _, e := range embeds {
			if e.Position > maxPos {
				maxPos = e.Position
			}
		}
		if err := s.UpdateEmbedPosition(ctx, movedID, maxPos+1); err != nil {
			return nil, err
		}
		return s.Embeds(ctx, documentID)
	}

	targetIdx := -1
	for i, e := range embeds {
		if e.ID == targetID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, apperr.ErrNotFound
	}

	// Remove the moved embedding, reinsert at the drop target's original
	// index, then renumber the whole list.
	moved := embeds[movedIdx]
	rest := make([]models.EmbedWithDatabase, 0, len(embeds)-1)
	rest = append(rest, embeds[:movedIdx]...)
	rest = append(rest, embeds[movedIdx+1:]...)
	if targetIdx > len(rest) {
		targetIdx = len(rest)
	}
	order := make([]models.EmbedWithDatabase, 0, len(embeds))
	order = append(order, rest[:targetIdx]...)
	order = append(order, moved)
	order = append(order, rest[targetIdx:]...)

	g, gCtx := errgroup.WithContext(ctx)
	for i, e := range order {
		g.Go(func() error {
			return s.UpdateEmbedPosition(gCtx, e.ID, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.Embeds(ctx, documentID)
}
