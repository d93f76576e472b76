// Package literal renders document values as DQL literal text.
//
// Values enter the package once, at a boundary (DecodeJSON, DecodeYAML or
// FromAny), and are resolved into the sealed Value variant:
//
//	String  'text', with ' doubled
//	Number  minimal decimal text
//	Bool    true | false
//	Null    NULL
//	Array   [a, b]
//	Object  {key: value}
//
// Two extended shapes are recognised structurally rather than carried as
// separate variants. An Object whose only key is "$date" (with a String
// value) formats as a plain string literal of the inner date. An Object
// containing "$oid" is an ordinary object and keeps its wrapper:
//
//	{"$date": "2009-04-01T00:00:00.000-0700"}  → '2009-04-01T00:00:00.000-0700'
//	{"$oid": "50b59cd75bed76f46522c34e"}       → {$oid: '50b59cd75bed76f46522c34e'}
//
// Formatting is a one-way projection. Nothing in this package parses DQL
// literal text back into a Value.
package literal
