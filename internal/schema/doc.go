// Package schema loads collection field lists from CUE files.
//
// A schema gives statement generation the field names and type hints of a
// collection:
//
//	collection: cars: fields: {
//		"_id": "identifier"
//		make:  "string"
//		year:  "number"
//		sold:  "boolean"
//		specs: "nested"
//	}
//
// The "_id" label must be quoted: an unquoted _id is a hidden field in CUE
// and is not visible to the loader. Fields keep their declaration order.
// Collections are returned sorted by name. Errors are *LoadError values
// carrying an E-code and a source position where CUE provides one.
package schema
