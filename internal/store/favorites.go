package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Favorite is a saved query with optional JSON arguments.
type Favorite struct {
	ID         string    `json:"id"`
	DatabaseID string    `json:"database_id"`
	Query      string    `json:"query"`
	Args       string    `json:"args,omitempty"` // JSON text, empty when the query takes no arguments
	CreatedAt  time.Time `json:"created_at"`
}

// AddFavorite saves query for a database. Saving the same query twice
// returns the existing favorite. args, when non-empty, must be valid JSON.
func (s *Store) AddFavorite(ctx context.Context, databaseID, query, args string) (Favorite, error) {
	if strings.TrimSpace(query) == "" {
		return Favorite{}, fmt.Errorf("add favorite: query is empty")
	}
	if args != "" && !json.Valid([]byte(args)) {
		return Favorite{}, fmt.Errorf("add favorite: args is not valid JSON")
	}

	createdAt, createdText := s.timestamp()
	fav := Favorite{
		ID:         s.newID(),
		DatabaseID: databaseID,
		Query:      query,
		Args:       args,
		CreatedAt:  createdAt,
	}

	var argsCol sql.NullString
	if args != "" {
		argsCol = sql.NullString{String: args, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, database_id, query, args, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(database_id, query) DO NOTHING
	`,
		fav.ID,
		fav.DatabaseID,
		fav.Query,
		argsCol,
		createdText,
	)
	if err != nil {
		return Favorite{}, fmt.Errorf("add favorite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Favorite{}, fmt.Errorf("add favorite: %w", err)
	}
	if n == 0 {
		return s.favoriteByQuery(ctx, databaseID, query)
	}
	return fav, nil
}

// Favorites returns the favorites for a database, newest first.
func (s *Store) Favorites(ctx context.Context, databaseID string) ([]Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, database_id, query, args, created_at
		FROM favorites
		WHERE database_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, databaseID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favorites, nil
}

// DeleteFavorite removes one favorite by id.
func (s *Store) DeleteFavorite(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "favorites", id)
}

// ClearFavorites removes every favorite for a database.
func (s *Store) ClearFavorites(ctx context.Context, databaseID string) (int64, error) {
	return s.clearDatabase(ctx, "favorites", databaseID)
}

func (s *Store) favoriteByQuery(ctx context.Context, databaseID, query string) (Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, database_id, query, args, created_at
		FROM favorites
		WHERE database_id = ? AND query = ?
	`, databaseID, query)
	if err != nil {
		return Favorite{}, fmt.Errorf("query favorite: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Favorite{}, fmt.Errorf("query favorite: %w", err)
		}
		return Favorite{}, fmt.Errorf("query favorite: %w", ErrNotFound)
	}
	return scanFavorite(rows)
}

// scanner is satisfied by *sql.Rows and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row scanner) (Favorite, error) {
	var fav Favorite
	var args sql.NullString
	var createdText string
	if err := row.Scan(&fav.ID, &fav.DatabaseID, &fav.Query, &args, &createdText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Favorite{}, ErrNotFound
		}
		return Favorite{}, fmt.Errorf("scan favorite: %w", err)
	}
	fav.Args = args.String

	createdAt, err := parseTimestamp(createdText)
	if err != nil {
		return Favorite{}, fmt.Errorf("scan favorite: %w", err)
	}
	fav.CreatedAt = createdAt
	return fav, nil
}
