// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite full-text index of the clock catalog for
// keyword search and export. The index is rebuilt whenever the metadata
// file it was built from changes on disk.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/clockmeta/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "clocks.db"
)

// Store manages the clock index database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the index database at DataDir/index/clocks.db
// and creates the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = types.DefaultDataDir
	}
	dir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
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

// Dir returns the directory holding the database and export files.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clocks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			doi TEXT,
			citation TEXT,
			fields TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clocks_doi ON clocks(doi)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS clocks_fts USING fts4(name, body)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT,
			clock_count INTEGER
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SyncSummary reports the outcome of Sync.
type SyncSummary struct {
	Indexed int
	Skipped bool
}

// Sync rebuilds the index from cat unless the index was already built from
// sourcePath at its current modification time.
func (s *Store) Sync(ctx context.Context, cat types.Catalog, sourcePath string) (SyncSummary, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("stat %s: %w", sourcePath, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var (
		stored string
		count  int
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time, clock_count FROM indexing_status WHERE source = ?`, sourcePath,
	).Scan(&stored, &count)
	switch {
	case err == nil && stored == modTime && count == len(cat):
		return SyncSummary{Indexed: count, Skipped: true}, nil
	case err != nil && err != sql.ErrNoRows:
		return SyncSummary{}, fmt.Errorf("reading indexing status: %w", err)
	}

	n, err := s.rebuild(ctx, cat)
	if err != nil {
		return SyncSummary{}, err
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO indexing_status (source, file_mod_time, clock_count) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time = excluded.file_mod_time, clock_count = excluded.clock_count`,
		sourcePath, modTime, n,
	); err != nil {
		return SyncSummary{}, fmt.Errorf("updating indexing status: %w", err)
	}
	return SyncSummary{Indexed: n}, nil
}

// rebuild replaces every indexed clock with the contents of cat.
func (s *Store) rebuild(ctx context.Context, cat types.Catalog) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM clocks_fts`, `DELETE FROM clocks`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("clearing index: %w", err)
		}
	}

	for _, name := range cat.Names() {
		meta := cat[name]
		doi, _ := meta.DOI()
		cit, _ := meta.Citation()

		fields, err := encodeFields(meta)
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", name, err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO clocks (name, doi, citation, fields) VALUES (?, ?, ?, ?)`,
			name, doi, cit, fields)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", name, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading row id for %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clocks_fts (docid, name, body) VALUES (?, ?, ?)`,
			rowID, name, searchBody(meta),
		); err != nil {
			return 0, fmt.Errorf("indexing %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}
	return len(cat), nil
}

// encodeFields stores metadata as JSON. Values JSON cannot represent are
// stored in their printed form.
func encodeFields(meta types.ClockMetadata) (string, error) {
	data, err := json.Marshal(meta)
	if err == nil {
		return string(data), nil
	}
	printable := make(map[string]string, len(meta))
	for k, v := range meta {
		printable[k] = types.FormatValue(v)
	}
	data, err = json.Marshal(printable)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// searchBody flattens metadata into the text indexed for full-text search.
func searchBody(meta types.ClockMetadata) string {
	var b strings.Builder
	for _, k := range meta.Keys() {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(types.FormatValue(meta[k]))
		b.WriteString("\n")
	}
	return b.String()
}
