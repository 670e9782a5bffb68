// Package catalog stores rendered traversal programs in SQLite.
//
// Programs are keyed by their content hash (traversal.HashProgram), so
// storing the same text twice keeps the first entry. Each entry also gets a
// UUIDv7 id and a sequence number; listings are ordered by seq ASC, hash ASC
// so that repeated runs print the same thing.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - One open connection: SQLite has a single writer
package catalog
