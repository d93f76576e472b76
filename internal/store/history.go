package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/dqlkit/internal/querytext"
)

// DefaultHistoryLimit caps History when no limit is given.
const DefaultHistoryLimit = 1000

// Entry is one recorded query execution.
type Entry struct {
	ID         string    `json:"id"`
	DatabaseID string    `json:"database_id"`
	Query      string    `json:"query"`
	Collection string    `json:"collection,omitempty"`
	Aggregate  bool      `json:"aggregate"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordQuery appends a history entry for query. Every execution is
// recorded, duplicates included. Blank queries are skipped and reported
// with ok=false.
//
// The entry's Collection and Aggregate fields are derived with querytext.
func (s *Store) RecordQuery(ctx context.Context, databaseID, query string) (Entry, bool, error) {
	if strings.TrimSpace(query) == "" {
		return Entry{}, false, nil
	}

	shape := querytext.Inspect(query)
	createdAt, createdText := s.timestamp()
	entry := Entry{
		ID:         s.newID(),
		DatabaseID: databaseID,
		Query:      query,
		Collection: shape.Collection,
		Aggregate:  shape.AggregateOrPaginated,
		CreatedAt:  createdAt,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, database_id, query, collection, aggregate, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.DatabaseID,
		entry.Query,
		entry.Collection,
		entry.Aggregate,
		createdText,
	)
	if err != nil {
		return Entry{}, false, fmt.Errorf("record query: %w", err)
	}

	return entry, true, nil
}

// History returns the entries for a database, newest first. Entries with
// the same timestamp come back in reverse insertion order. A limit <= 0
// means DefaultHistoryLimit.
//
// Returns an empty slice (not nil) when there is no history.
func (s *Store) History(ctx context.Context, databaseID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, database_id, query, collection, aggregate, created_at
		FROM history
		WHERE database_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, databaseID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}

// DeleteHistory removes one entry by id.
func (s *Store) DeleteHistory(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "history", id)
}

// ClearHistory removes every entry for a database and reports how many
// were removed.
func (s *Store) ClearHistory(ctx context.Context, databaseID string) (int64, error) {
	return s.clearDatabase(ctx, "history", databaseID)
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var createdText string
	if err := rows.Scan(
		&entry.ID,
		&entry.DatabaseID,
		&entry.Query,
		&entry.Collection,
		&entry.Aggregate,
		&createdText,
	); err != nil {
		return Entry{}, fmt.Errorf("scan history: %w", err)
	}

	createdAt, err := parseTimestamp(createdText)
	if err != nil {
		return Entry{}, fmt.Errorf("scan history: %w", err)
	}
	entry.CreatedAt = createdAt
	return entry, nil
}

// deleteByID and clearDatabase take table names from package constants
// only, never from callers.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *Store) clearDatabase(ctx context.Context, table, databaseID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE database_id = ?", databaseID)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	return n, nil
}
