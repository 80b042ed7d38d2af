package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ViewType is the presentation style of a database view.
type ViewType string

// View types.
const (
	ViewTable  ViewType = "table"
	ViewKanban ViewType = "kanban"
	ViewList   ViewType = "list"
)

// Validate checks that the type is one of the known view types.
func (t ViewType) Validate() error {
	return validation.Validate(string(t),
		validation.Required,
		validation.In(string(ViewTable), string(ViewKanban), string(ViewList)),
	)
}

// SortSpec orders rows by a property.
type SortSpec struct {
	PropertyID string `json:"propertyId"`
	Direction  string `json:"direction"` // "asc" or "desc"
}

// FilterSpec restricts rows by a property condition. Filter execution is
// not part of this core; the condition is stored and handed to the renderer.
type FilterSpec struct {
	PropertyID string `json:"propertyId"`
	Condition  string `json:"condition"`
	Value      any    `json:"value"`
}

// View is a named presentation configuration over a database. Exactly one
// view per database is created as the default; the registry itself does
// not enforce single-default, so readers pick the default or fall back to
// the first view.
type View struct {
	ID         string       `json:"id"`
	DatabaseID string       `json:"databaseId"`
	Name       string       `json:"name"`
	Type       ViewType     `json:"type"`
	IsDefault  bool         `json:"isDefault"`
	SortBy     []SortSpec   `json:"sortBy,omitempty"`
	FilterBy   []FilterSpec `json:"filterBy,omitempty"`
	GroupBy    string       `json:"groupBy,omitempty"` // kanban only
}
