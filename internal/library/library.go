// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps a SQLite ledger of the papers imported into a vault.
// The ledger is informational: the vault files remain the source of truth
// and an import never depends on a ledger lookup.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-importer/pkg/types"
)

// DBFile is the ledger file name inside the state directory.
const DBFile = "library.db"

// Record describes one completed import.
type Record struct {
	PaperID    string           `json:"paper_id"`
	Title      string           `json:"title"`
	NotePath   string           `json:"note_path"`
	PDFPath    string           `json:"pdf_path,omitempty"`
	Mode       types.ImportMode `json:"mode"`
	SessionID  string           `json:"session_id"`
	ImportedAt time.Time        `json:"imported_at"`
}

// Store is an open ledger.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at dir/library.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	dbPath := filepath.Join(dir, DBFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS imports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_id TEXT NOT NULL,
			title TEXT NOT NULL,
			note_path TEXT NOT NULL,
			pdf_path TEXT,
			mode TEXT NOT NULL,
			session_id TEXT NOT NULL,
			imported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_paper_id ON imports(paper_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends r to the ledger.
func (s *Store) Record(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (paper_id, title, note_path, pdf_path, mode, session_id, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.PaperID, r.Title, r.NotePath, r.PDFPath, string(r.Mode), r.SessionID,
		r.ImportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording import of %s: %w", r.PaperID, err)
	}
	return nil
}

// List returns the most recent imports first. A limit of zero or less
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT paper_id, title, note_path, pdf_path, mode, session_id, imported_at
		FROM imports ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r        Record
			pdfPath  sql.NullString
			mode     string
			imported string
		)
		if err := rows.Scan(&r.PaperID, &r.Title, &r.NotePath, &pdfPath, &mode, &r.SessionID, &imported); err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		r.PDFPath = pdfPath.String
		r.Mode = types.ImportMode(mode)
		if t, err := time.Parse(time.RFC3339, imported); err == nil {
			r.ImportedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
