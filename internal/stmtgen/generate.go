package stmtgen

import (
	"fmt"
	"strings"
)

// Placeholder text inserted into generated statements.
const (
	DocumentIDPlaceholder = "<document-id>"
	ValuePlaceholder      = "<value>"
)

// whereByID is shared by UPDATE, DELETE and EVICT.
const whereByID = " WHERE " + IDField + " = '" + DocumentIDPlaceholder + "'"

// SelectAll returns SELECT * FROM <collection>.
func SelectAll(collection string) string {
	return "SELECT * FROM " + collection
}

// Select returns SELECT <f1>, <f2>, ... FROM <collection>. An empty field
// list gives an empty projection rather than an error.
func Select(collection string, fields []string) string {
	return "SELECT " + strings.Join(fields, ", ") + " FROM " + collection
}

// Insert returns an INSERT ... DOCUMENTS statement with one JSON-like
// "field": placeholder pair per field. hints may be nil; fields missing
// from it default to string placeholders.
func Insert(collection string, fields []string, hints map[string]TypeHint) string {
	pairs := make([]string, len(fields))
	for i, field := range fields {
		pairs[i] = `"` + field + `": ` + placeholder(field, hints)
	}
	return "INSERT INTO " + collection + " DOCUMENTS ({ " + strings.Join(pairs, ", ") + " })"
}

// Update returns an UPDATE ... SET statement addressed by _id. The _id
// field never appears in the SET list; if nothing else remains the SET
// list is empty but the statement is still produced.
func Update(collection string, fields []string, hints map[string]TypeHint) string {
	assignments := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == IDField {
			continue
		}
		assignments = append(assignments, field+" = "+placeholder(field, hints))
	}
	return "UPDATE " + collection + " SET " + strings.Join(assignments, ", ") + whereByID
}

// Delete returns DELETE FROM <collection> WHERE _id = '<document-id>'.
func Delete(collection string) string {
	return "DELETE FROM " + collection + whereByID
}

// Evict returns EVICT FROM <collection> WHERE _id = '<document-id>'.
// It has the same shape as Delete; the difference between removing the
// local replica and tombstoning is the Store's concern.
func Evict(collection string) string {
	return "EVICT FROM " + collection + whereByID
}

// placeholder returns the template value for a field.
func placeholder(field string, hints map[string]TypeHint) string {
	if field == IDField {
		return `"` + DocumentIDPlaceholder + `"`
	}

	switch hints[field] {
	case HintIdentifier:
		return `"` + DocumentIDPlaceholder + `"`
	case HintNumber:
		return "0"
	case HintBoolean:
		return "true"
	case HintNull:
		return "null"
	case HintNested:
		return "{}"
	default:
		return `"` + ValuePlaceholder + `"`
	}
}

// Kind names a statement shape.
type Kind string

const (
	KindSelectAll Kind = "select-all"
	KindSelect    Kind = "select"
	KindInsert    Kind = "insert"
	KindUpdate    Kind = "update"
	KindDelete    Kind = "delete"
	KindEvict     Kind = "evict"
)

// Kinds lists every statement kind in display order.
var Kinds = []Kind{KindSelectAll, KindSelect, KindInsert, KindUpdate, KindDelete, KindEvict}

// ParseKind parses a statement kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Kinds {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown statement kind %q: must be one of %v", s, Kinds)
}

// Statement generates a statement of the given kind. Fields are ignored by
// kinds that do not use them. An unknown kind yields an empty string.
func Statement(kind Kind, collection string, fields []Field) string {
	names, hints := Split(fields)
	switch kind {
	case KindSelectAll:
		return SelectAll(collection)
	case KindSelect:
		return Select(collection, names)
	case KindInsert:
		return Insert(collection, names, hints)
	case KindUpdate:
		return Update(collection, names, hints)
	case KindDelete:
		return Delete(collection)
	case KindEvict:
		return Evict(collection)
	default:
		return ""
	}
}
