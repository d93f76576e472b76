package stmtgen

import (
	"fmt"
	"strings"

	"github.com/roach88/dqlkit/internal/literal"
)

// IDField is the reserved document identifier field.
const IDField = "_id"

// TypeHint selects the placeholder emitted for a field.
// The zero value is HintString.
type TypeHint int

const (
	HintString TypeHint = iota
	HintIdentifier
	HintNumber
	HintBoolean
	HintNull
	HintNested
)

var hintNames = map[TypeHint]string{
	HintString:     "string",
	HintIdentifier: "identifier",
	HintNumber:     "number",
	HintBoolean:    "boolean",
	HintNull:       "null",
	HintNested:     "nested",
}

func (h TypeHint) String() string {
	if name, ok := hintNames[h]; ok {
		return name
	}
	return fmt.Sprintf("TypeHint(%d)", int(h))
}

// ParseTypeHint parses a hint name. Matching is case-insensitive and
// "bool" is accepted as an alias of "boolean".
func ParseTypeHint(s string) (TypeHint, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "bool" {
		return HintBoolean, nil
	}
	for h, n := range hintNames {
		if n == name {
			return h, nil
		}
	}
	return HintString, fmt.Errorf("unknown type hint %q: must be one of identifier, string, number, boolean, null, nested", s)
}

// Field is a field name plus the hint for its placeholder.
type Field struct {
	Name string
	Hint TypeHint
}

// ParseField parses "name" or "name:hint". A missing hint means string,
// except for _id which is always an identifier.
func ParseField(s string) (Field, error) {
	name, hintText, hasHint := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Field{}, fmt.Errorf("field %q: empty name", s)
	}

	f := Field{Name: name}
	if name == IDField {
		f.Hint = HintIdentifier
	}
	if hasHint {
		h, err := ParseTypeHint(hintText)
		if err != nil {
			return Field{}, fmt.Errorf("field %q: %w", name, err)
		}
		f.Hint = h
	}
	return f, nil
}

// Split returns the field names and a hint map suitable for Insert and
// Update.
func Split(fields []Field) ([]string, map[string]TypeHint) {
	names := make([]string, len(fields))
	hints := make(map[string]TypeHint, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		hints[f.Name] = f.Hint
	}
	return names, hints
}

// HintsFromDocument infers fields and hints from a sample document, in
// document order. Strings and dates become string, arrays and objects
// become nested, and _id becomes identifier.
func HintsFromDocument(doc literal.Object) []Field {
	fields := make([]Field, 0, len(doc))
	for _, f := range doc {
		fields = append(fields, Field{Name: f.Key, Hint: hintFor(f.Key, f.Value)})
	}
	return fields
}

func hintFor(name string, v literal.Value) TypeHint {
	if name == IDField {
		return HintIdentifier
	}
	switch literal.Classify(v) {
	case literal.KindNumber:
		return HintNumber
	case literal.KindBoolean:
		return HintBoolean
	case literal.KindNull:
		return HintNull
	case literal.KindArray, literal.KindObject:
		return HintNested
	default:
		return HintString
	}
}
