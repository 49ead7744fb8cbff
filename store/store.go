// Package store persists named icon designs in SQLite. It owns the mapping
// from design id to {name, document, timestamp}; the core never imports it
// and only hands it committed Document revisions.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/icondraft/icondraft"
)

// ErrNotFound is returned when a design id does not exist.
var ErrNotFound = errors.New("design not found")

const schema = `
CREATE TABLE IF NOT EXISTS designs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	document   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SavedDesign is one persisted design revision.
type SavedDesign struct {
	ID        string
	Name      string
	Document  icondraft.Document
	UpdatedAt time.Time
}

// Store is a SQLite-backed design collection. Open it with Open; safe for
// use from a single process.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the design database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open design store: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 10000;",
		"PRAGMA synchronous = NORMAL;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Create saves a new named design and returns its generated id.
func (s *Store) Create(ctx context.Context, name string, doc icondraft.Document) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO designs (id, name, document, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, string(raw), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("insert design: %w", err)
	}
	return id, nil
}

// Save records a committed Document revision for an existing design.
func (s *Store) Save(ctx context.Context, id string, doc icondraft.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE designs SET document = ?, updated_at = ? WHERE id = ?`,
		string(raw), time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("update design: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Rename changes a design's display name.
func (s *Store) Rename(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE designs SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("rename design: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads one design by id.
func (s *Store) Get(ctx context.Context, id string) (*SavedDesign, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, document, updated_at FROM designs WHERE id = ?`, id)
	return scanDesign(row.Scan)
}

// List returns all designs, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*SavedDesign, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, document, updated_at FROM designs ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	var out []*SavedDesign
	for rows.Next() {
		d, err := scanDesign(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a design. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

func scanDesign(scan func(...any) error) (*SavedDesign, error) {
	var (
		d       SavedDesign
		raw     string
		updated int64
	)
	if err := scan(&d.ID, &d.Name, &raw, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan design: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &d.Document); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	d.UpdatedAt = time.Unix(updated, 0)
	return &d, nil
}
