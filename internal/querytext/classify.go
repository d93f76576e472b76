package querytext

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// collectionPattern matches FROM, an optional COLLECTION keyword and the
// identifier that follows.
var collectionPattern = regexp.MustCompile(`(?i)FROM\s+(?:COLLECTION\s+)?([\p{L}\p{N}_]+)`)

var (
	// aggregateCalls must be followed immediately by "(" to match, so
	// "counter" or "maxSpeed" are not aggregates.
	aggregateCalls = []string{"COUNT(", "AVG(", "SUM(", "MIN(", "MAX("}

	// plainMarkers match anywhere, with no word-boundary check.
	plainMarkers = []string{"GROUP BY", "DISTINCT"}

	paginationMarkers = []string{"LIMIT", "OFFSET"}
)

// upper folds text to upper case using Unicode rules.
// A fresh Caser is used per call because cases.Caser is not safe for
// concurrent use.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// ExtractCollectionName returns the identifier after the first FROM, skipping
// an optional COLLECTION keyword. Keywords match case-insensitively; the
// identifier comes back exactly as typed.
//
//	SELECT * FROM COLLECTION cars      → "cars", true
//	select * from MyCollection         → "MyCollection", true
//	SHOW TABLES                        → "", false
func ExtractCollectionName(query string) (string, bool) {
	m := collectionPattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// HasPagination reports whether LIMIT or OFFSET appears anywhere in query.
func HasPagination(query string) bool {
	return containsAny(upper(query), paginationMarkers)
}

// IsAggregateOrPaginatedQuery reports whether query is expected to return a
// small, bounded result set: an aggregate call (COUNT(, AVG(, SUM(, MIN(,
// MAX(), GROUP BY, DISTINCT, or an explicit LIMIT/OFFSET window.
func IsAggregateOrPaginatedQuery(query string) bool {
	u := upper(query)
	return containsAny(u, paginationMarkers) ||
		containsAny(u, aggregateCalls) ||
		containsAny(u, plainMarkers)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Shape bundles the derived facts about a query.
type Shape struct {
	Collection           string `json:"collection,omitempty"`
	HasCollection        bool   `json:"has_collection"`
	AggregateOrPaginated bool   `json:"aggregate_or_paginated"`
	Paginated            bool   `json:"paginated"`
}

// Inspect computes the Shape of query.
func Inspect(query string) Shape {
	name, ok := ExtractCollectionName(query)
	return Shape{
		Collection:           name,
		HasCollection:        ok,
		AggregateOrPaginated: IsAggregateOrPaginatedQuery(query),
		Paginated:            HasPagination(query),
	}
}

// Paginate appends a LIMIT (and, for offset > 0, an OFFSET) window to a
// query that would otherwise return an unbounded result set. Queries that
// are already aggregate or paginated, blank queries, and non-positive limits
// come back unchanged with false.
func Paginate(query string, limit, offset int) (string, bool) {
	if limit <= 0 || strings.TrimSpace(query) == "" || IsAggregateOrPaginatedQuery(query) {
		return query, false
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(query, " \t\r\n;"))
	b.WriteString(" LIMIT ")
	b.WriteString(strconv.Itoa(limit))
	if offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(offset))
	}
	return b.String(), true
}
