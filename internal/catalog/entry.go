package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when no program has the requested hash.
var ErrNotFound = errors.New("program not found")

// Entry is one stored program.
type Entry struct {
	// Seq is the insertion sequence, assigned by Put.
	Seq int64 `json:"seq"`

	// ID is a UUIDv7 assigned by Put.
	ID string `json:"id"`

	// Hash is the content hash of Program and the catalog key.
	Hash string `json:"hash"`

	Name    string `json:"name"`
	Program string `json:"program"`
	Steps   int    `json:"steps"`
	Kind    string `json:"kind"`

	// Source is the document the program was compiled from, if any.
	Source string `json:"source,omitempty"`
}

// Put stores e unless a program with the same hash is already present.
// It returns the stored entry, which is the earlier one on a conflict, and
// whether a new row was inserted. e.Seq and e.ID are ignored.
func (c *Catalog) Put(ctx context.Context, e Entry) (Entry, bool, error) {
	if e.Hash == "" {
		return Entry{}, false, fmt.Errorf("put program %q: hash is required", e.Name)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, false, fmt.Errorf("put program: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO programs
		(id, hash, name, program, step_count, kind, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		c.ids.Generate(),
		e.Hash,
		e.Name,
		e.Program,
		e.Steps,
		e.Kind,
		e.Source,
	)
	if err != nil {
		return Entry{}, false, fmt.Errorf("put program: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Entry{}, false, fmt.Errorf("put program: rows affected: %w", err)
	}
	inserted := rowsAffected > 0

	stored, err := scanEntry(tx.QueryRowContext(ctx, selectEntry+` WHERE hash = ?`, e.Hash))
	if err != nil {
		return Entry{}, false, fmt.Errorf("put program: select stored: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, false, fmt.Errorf("put program: commit: %w", err)
	}

	slog.Debug("program stored",
		"name", stored.Name,
		"hash", stored.Hash,
		"seq", stored.Seq,
		"inserted", inserted,
	)
	return stored, inserted, nil
}

// Get returns the program with the given hash, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, hash string) (Entry, error) {
	e, err := scanEntry(c.db.QueryRowContext(ctx, selectEntry+` WHERE hash = ?`, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get program %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get program %s: %w", hash, err)
	}
	return e, nil
}

// List returns every program ordered by seq ASC, hash ASC. It returns an
// empty slice, not nil, for an empty catalog.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, selectEntry+`
		ORDER BY seq ASC, hash COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate programs: %w", err)
	}
	return entries, nil
}

const selectEntry = `
	SELECT seq, id, hash, name, program, step_count, kind, source
	FROM programs`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.Seq, &e.ID, &e.Hash, &e.Name, &e.Program, &e.Steps, &e.Kind, &e.Source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan program: %w", err)
	}
	return e, nil
}
