package models

import (
	"encoding/json"
	"testing"
)

func TestValueJSONRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"string", StringValue("hello"), `"hello"`},
		{"number", NumberValue(42.5), `42.5`},
		{"bool", BoolValue(true), `true`},
		{"list", ListValue([]string{"a", "b"}), `["a","b"]`},
		{"empty list", ListValue(nil), `[]`},
		{"null", NullValue(), `null`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(raw) != tc.want {
				t.Fatalf("encoded = %s, want %s", raw, tc.want)
			}

			var back Value
			if err := json.Unmarshal(raw, &back); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if back.Kind() != tc.in.Kind() {
				t.Errorf("kind after round trip = %v, want %v", back.Kind(), tc.in.Kind())
			}
		})
	}
}

func TestValueUnmarshalRejectsOutsideUnion(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1,2]`, `["a",1]`, `[["nested"]]`} {
		var v Value
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			t.Errorf("accepted %s, want error", raw)
		}
	}
}

func TestNullIsExplicit(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`null`), &v); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if !v.IsNull() {
		t.Error("expected explicit null")
	}
	// The zero value is also null; both encode as JSON null.
	raw, _ := json.Marshal(Value{})
	if string(raw) != "null" {
		t.Errorf("zero value encodes as %s", raw)
	}
}

func TestClampWidth(t *testing.T) {
	cases := []struct{ in, want int }{
		{-50, 80},
		{0, 80},
		{80, 80},
		{300, 300},
		{800, 800},
		{5000, 800},
	}
	for _, tc := range cases {
		if got := ClampWidth(tc.in); got != tc.want {
			t.Errorf("ClampWidth(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPropertyTypeValidate(t *testing.T) {
	for _, typ := range []PropertyType{TypeText, TypeNumber, TypeSelect, TypeMultiSelect, TypeDate, TypeCheckbox, TypeURL, TypeEmail, TypePhone} {
		if err := typ.Validate(); err != nil {
			t.Errorf("%s rejected: %v", typ, err)
		}
	}
	if err := PropertyType("geo").Validate(); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestViewTypeValidate(t *testing.T) {
	for _, typ := range []ViewType{ViewTable, ViewKanban, ViewList} {
		if err := typ.Validate(); err != nil {
			t.Errorf("%s rejected: %v", typ, err)
		}
	}
	if err := ViewType("calendar").Validate(); err == nil {
		t.Error("unknown view type accepted")
	}
}
