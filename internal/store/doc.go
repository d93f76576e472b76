// Package store provides SQLite-backed local state for dqlkit: the query
// history and the saved favorites, each scoped by database id.
//
// # Ordering
//
// Rows are stamped with a fixed-width UTC timestamp and returned newest
// first. Rows sharing a timestamp come back in reverse insertion order.
//
// # Uniqueness
//
// History keeps every execution, duplicates included. Favorites are unique
// per (database_id, query); saving an existing favorite returns the stored
// row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Schema changes are applied through PRAGMA user_version migrations.
package store
