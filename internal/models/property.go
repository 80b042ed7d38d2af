package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PropertyType is the declared column type of a database property.
type PropertyType string

// Property types.
const (
	TypeText        PropertyType = "text"
	TypeNumber      PropertyType = "number"
	TypeSelect      PropertyType = "select"
	TypeMultiSelect PropertyType = "multiSelect"
	TypeDate        PropertyType = "date"
	TypeCheckbox    PropertyType = "checkbox"
	TypeURL         PropertyType = "url"
	TypeEmail       PropertyType = "email"
	TypePhone       PropertyType = "phone"
)

// Validate checks that the type is one of the known property types.
func (t PropertyType) Validate() error {
	return validation.Validate(string(t),
		validation.Required,
		validation.In(
			string(TypeText), string(TypeNumber), string(TypeSelect),
			string(TypeMultiSelect), string(TypeDate), string(TypeCheckbox),
			string(TypeURL), string(TypeEmail), string(TypePhone),
		),
	)
}

// Column width bounds in pixels.
const (
	MinPropertyWidth = 80
	MaxPropertyWidth = 800
)

// ClampWidth constrains a requested column width into the allowed range.
// Out-of-range widths are corrected silently, not rejected.
func ClampWidth(w int) int {
	if w < MinPropertyWidth {
		return MinPropertyWidth
	}
	if w > MaxPropertyWidth {
		return MaxPropertyWidth
	}
	return w
}

// PropertyOption is one choice of a select or multiSelect property.
type PropertyOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate checks that the option carries an id and a label.
func (o PropertyOption) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Name, validation.Required),
	)
}

// Property is a typed column belonging to exactly one database document.
// Order is a sort key, dense at creation time (new properties append at the
// current count); gaps after deletions are permitted.
type Property struct {
	ID         string           `json:"id"`
	DatabaseID string           `json:"databaseId"`
	Name       string           `json:"name"`
	Type       PropertyType     `json:"type"`
	Options    []PropertyOption `json:"options,omitempty"`
	Order      int              `json:"order"`
	Width      int              `json:"width,omitempty"` // 0 means unset
}
