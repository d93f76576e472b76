// Package querytext answers cheap questions about raw DQL query text.
//
// None of these functions parse DQL. They are case-insensitive substring
// and pattern scans used to drive UI decisions, such as whether to offer
// pagination controls or which collection name to display. As a result a
// keyword inside an unrelated string literal still counts:
//
//	IsAggregateOrPaginatedQuery("SELECT * FROM rules WHERE text LIKE '%LIMIT%'") // true
//
// Every function is total. Empty and whitespace-only input yields false,
// or no collection.
package querytext
