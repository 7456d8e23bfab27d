// Package journal records pipeline run history in SQLite.
package journal

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/ansuz/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	processed   INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	changed     INTEGER NOT NULL DEFAULT 0,
	titles      TEXT NOT NULL DEFAULT ''
);
`

// DB wraps a sql.DB with journal operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the journal database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Run is one recorded pipeline run.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Skipped    int
	Changed    int
	// Titles of the notes newly flagged for publishing during the run.
	Titles []string
}

// Record stores the outcome of one run.
func (db *DB) Record(started, finished time.Time, stats *models.RunStats) error {
	_, err := db.conn.Exec(`
		INSERT INTO runs (started_at, finished_at, processed, skipped, changed, titles)
		VALUES (?, ?, ?, ?, ?, ?)
	`, started, finished, stats.Processed, stats.Skipped, stats.Changed,
		strings.Join(stats.PendingTitles, "\n"))
	if err != nil {
		return fmt.Errorf("journal: record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (db *DB) Recent(limit int) ([]Run, error) {
	rows, err := db.conn.Query(`
		SELECT id, started_at, finished_at, processed, skipped, changed, titles
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var titles string
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Processed, &r.Skipped, &r.Changed, &titles); err != nil {
			return nil, fmt.Errorf("journal: scan run: %w", err)
		}
		if titles != "" {
			r.Titles = strings.Split(titles, "\n")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
