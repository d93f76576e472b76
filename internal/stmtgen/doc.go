// Package stmtgen generates scaffold DQL statements for a collection.
//
// The output is template text for a user to edit before execution. It is
// never parsed, validated or run here. Two quoting conventions coexist on
// purpose: INSERT documents use JSON-like double-quoted keys, while UPDATE
// SET lists use bare keys. The WHERE clause always addresses the document by
// a single-quoted '<document-id>' placeholder.
//
//	INSERT INTO cars DOCUMENTS ({ "_id": "<document-id>", "make": "<value>" })
//	UPDATE cars SET make = "<value>", year = 0 WHERE _id = '<document-id>'
//
// Generators never fail. Empty field lists give syntactically complete,
// if degenerate, statements.
package stmtgen
