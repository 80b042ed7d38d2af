package models

import (
	"encoding/json"
	"fmt"
)

// ValueKind enumerates the cell value union members.
type ValueKind int

// Cell value kinds. ValueNull is an explicit null: it is stored, unlike an
// absent cell which has no record at all. Both render as empty in the UI.
const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
)

// Value is the tagged union stored in a cell: one of string, number,
// boolean, ordered list of strings, or explicit null. The zero Value is
// null. Values are not cross-checked against the declared type of their
// Property; the column type only guides the UI.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []string
}

// NullValue returns the explicit null value.
func NullValue() Value { return Value{} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: ValueNumber, num: n} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// ListValue wraps an ordered list of strings (multiSelect values).
func ListValue(items []string) Value { return Value{kind: ValueList, list: items} }

// Kind returns the union member tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is the explicit null.
func (v Value) IsNull() bool { return v.kind == ValueNull }

// AsString returns the string member.
func (v Value) AsString() (string, bool) { return v.str, v.kind == ValueString }

// AsNumber returns the number member.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == ValueNumber }

// AsBool returns the boolean member.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == ValueBool }

// AsList returns the list member.
func (v Value) AsList() ([]string, bool) { return v.list, v.kind == ValueList }

// MarshalJSON encodes the underlying member directly (no wrapper object),
// matching the persisted layout.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueBool:
		return json.Marshal(v.b)
	case ValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any member of the union and rejects everything
// else (objects, mixed arrays).
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueFromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueFromAny converts a decoded JSON value into a Value, enforcing the
// union: string, float64, bool, []string (as []any of strings), or nil.
func ValueFromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return StringValue(t), nil
	case float64:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	case []any:
		items := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return Value{}, fmt.Errorf("cell value: list element %d is %T, want string", i, e)
			}
			items[i] = s
		}
		return ListValue(items), nil
	case []string:
		return ListValue(t), nil
	default:
		return Value{}, fmt.Errorf("cell value: unsupported type %T", raw)
	}
}

// CellValue is the stored value for one (row document, property) pair.
// At most one CellValue exists per pair; absence means an empty cell.
type CellValue struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	PropertyID string `json:"propertyId"`
	Value      Value  `json:"value"`
}
