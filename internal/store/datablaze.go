// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     store
// Description: Datablaze storage on SQLite: creation, metadata, parse history
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	"github.com/VDFOREVER/blaze/pkg/core/version"
)

// FileName is the database file inside a datablaze directory
const FileName = "blaze.db"

// Record is one recorded parse
type Record struct {
	ID          string    `json:"id" yaml:"id"`
	SourceLabel string    `json:"source_label" yaml:"source_label"`
	Source      string    `json:"source" yaml:"source"`
	Success     bool      `json:"success" yaml:"success"`
	Statements  int       `json:"statements" yaml:"statements"`
	Diagnostic  string    `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	RequestID   string    `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Stats summarizes the parse history
type Stats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Datablaze is an open datablaze directory
type Datablaze struct {
	db  *sql.DB
	mu  sync.RWMutex
	dir string

	id            string
	formatVersion int
	createdAt     time.Time
}

const schema = `
	CREATE TABLE IF NOT EXISTS meta (
		id TEXT PRIMARY KEY,
		format_version INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS parses (
		id TEXT PRIMARY KEY,
		source_label TEXT NOT NULL,
		source TEXT NOT NULL,
		success INTEGER NOT NULL,
		statements INTEGER NOT NULL,
		diagnostic TEXT,
		request_id TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_parses_created_at ON parses(created_at DESC);
`

// Exists reports whether dir already holds a datablaze
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}

// Create makes dir (if needed) and initializes a new datablaze in it.
// It fails when dir already holds one.
func Create(dir string) (*Datablaze, error) {
	if Exists(dir) {
		return nil, bzerror.Newf("datablaze already exists at %s", dir).
			WithCode(bzerror.CodeAlreadyExists).
			WithOperation("store.Create")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, dbError(err, "failed to create directory", "store.Create").WithDetail("path", dir)
	}

	db, err := openDB(dir)
	if err != nil {
		return nil, err
	}

	d := &Datablaze{
		db:            db,
		dir:           dir,
		id:            uuid.New().String(),
		formatVersion: version.DatablazeFormat,
		createdAt:     time.Now().UTC(),
	}

	if err := d.initSchema(); err != nil {
		db.Close()
		os.Remove(filepath.Join(dir, FileName))
		return nil, dbError(err, "failed to initialize schema", "store.Create")
	}

	return d, nil
}

// Open opens an existing datablaze
func Open(dir string) (*Datablaze, error) {
	if !Exists(dir) {
		return nil, bzerror.Newf("no datablaze at %s", dir).
			WithCode(bzerror.CodeNotFound).
			WithOperation("store.Open")
	}

	db, err := openDB(dir)
	if err != nil {
		return nil, err
	}

	d := &Datablaze{db: db, dir: dir}

	row := db.QueryRow(`SELECT id, format_version, created_at FROM meta LIMIT 1`)
	if err := row.Scan(&d.id, &d.formatVersion, &d.createdAt); err != nil {
		db.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bzerror.Newf("datablaze at %s has no metadata", dir).
				WithCode(bzerror.CodeDatabaseError).
				WithOperation("store.Open")
		}
		return nil, dbError(err, "failed to read metadata", "store.Open")
	}

	if d.formatVersion > version.DatablazeFormat {
		db.Close()
		return nil, bzerror.Newf("datablaze format %d is newer than supported format %d", d.formatVersion, version.DatablazeFormat).
			WithCode(bzerror.CodeDatabaseError).
			WithOperation("store.Open")
	}

	return d, nil
}

func openDB(dir string) (*sql.DB, error) {
	path := filepath.Join(dir, FileName)

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database", "store.Open").WithDetail("path", path)
	}
	return db, nil
}

func (d *Datablaze) initSchema() error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO meta (id, format_version, created_at) VALUES (?, ?, ?)`,
		d.id, d.formatVersion, d.createdAt); err != nil {
		return err
	}
	return tx.Commit()
}

// ID returns the datablaze identifier
func (d *Datablaze) ID() string {
	return d.id
}

// Dir returns the datablaze directory
func (d *Datablaze) Dir() string {
	return d.dir
}

// FormatVersion returns the schema version the datablaze was created with
func (d *Datablaze) FormatVersion() int {
	return d.formatVersion
}

// CreatedAt returns the creation time
func (d *Datablaze) CreatedAt() time.Time {
	return d.createdAt
}

// RecordParse stores a parse record, assigning ID and CreatedAt when unset
func (d *Datablaze) RecordParse(ctx context.Context, rec *Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO parses (id, source_label, source, success, statements, diagnostic, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceLabel, rec.Source, rec.Success, rec.Statements,
		nullString(rec.Diagnostic), nullString(rec.RequestID), rec.CreatedAt)
	if err != nil {
		return dbError(err, "failed to insert parse record", "store.RecordParse")
	}
	return nil
}

// History returns the most recent records, newest first. A limit of zero
// or less returns everything.
func (d *Datablaze) History(ctx context.Context, limit int) ([]*Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `SELECT id, source_label, source, success, statements, diagnostic, request_id, created_at
		FROM parses ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query history", "store.History")
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		var diagnostic, requestID sql.NullString

		if err := rows.Scan(&rec.ID, &rec.SourceLabel, &rec.Source, &rec.Success, &rec.Statements,
			&diagnostic, &requestID, &rec.CreatedAt); err != nil {
			return nil, dbError(err, "failed to scan parse record", "store.History")
		}
		rec.Diagnostic = diagnostic.String
		rec.RequestID = requestID.String
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read history", "store.History")
	}
	return records, nil
}

// Stats counts recorded parses
func (d *Datablaze) Stats(ctx context.Context) (Stats, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var s Stats
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(success), 0) FROM parses`).Scan(&s.Total, &s.Succeeded)
	if err != nil {
		return Stats{}, dbError(err, "failed to count parses", "store.Stats")
	}
	s.Failed = s.Total - s.Succeeded
	return s, nil
}

// Prune deletes records older than the given age
func (d *Datablaze) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := d.db.ExecContext(ctx, `DELETE FROM parses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune history", "store.Prune")
	}
	return result.RowsAffected()
}

// Ping verifies the database connection
func (d *Datablaze) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return dbError(err, "datablaze unreachable", "store.Ping")
	}
	return nil
}

// Close closes the database
func (d *Datablaze) Close() error {
	return d.db.Close()
}

// String describes the datablaze
func (d *Datablaze) String() string {
	return fmt.Sprintf("datablaze %s (format %d) at %s", d.id, d.formatVersion, d.dir)
}

func dbError(err error, msg, op string) *bzerror.Error {
	return bzerror.Wrap(err, msg).
		WithCode(bzerror.CodeDatabaseError).
		WithOperation(op)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
