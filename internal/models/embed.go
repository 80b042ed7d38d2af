package models

import "time"

// EmbeddedDatabase records that a database is rendered inline inside a
// host document at an ordered position. The same database can be embedded
// in any number of documents, but at most once per host document.
//
// Position is a weak ordering: values may collide or gap after concurrent
// reorders; readers sort ascending by position with insertion order as the
// tiebreak.
type EmbeddedDatabase struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	DatabaseID string    `json:"databaseId"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EmbedWithDatabase is an embedding joined with a snapshot of its target
// database document, as returned by the read path.
type EmbedWithDatabase struct {
	EmbeddedDatabase
	Database *Document `json:"database"`
}
