// Package archive provides an SQLite-backed invocation log. Unlike the
// JSON state file, which keeps only the most recent 100 history entries,
// the archive records every invocation without bound.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ShayCichocki/swarmie/internal/swarm"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// DefaultPath is the project-local archive location.
const DefaultPath = ".swarmie/archive.db"

// Archive wraps an SQLite database holding the invocation log.
type Archive struct {
	conn *sql.DB
	path string
}

var _ swarm.Recorder = (*Archive)(nil)

// Open opens (or creates) the archive at the given path. Parent
// directories are created as needed. WAL mode is enabled for
// concurrent reads.
func Open(path string) (*Archive, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Archive{conn: conn, path: path}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id TEXT PRIMARY KEY,
	timestamp DATETIME NOT NULL,
	agent TEXT NOT NULL DEFAULT '',
	task TEXT NOT NULL,
	success INTEGER NOT NULL,
	result TEXT,
	error TEXT NOT NULL DEFAULT '',
	exit_code INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_invocations_timestamp ON invocations(timestamp);
CREATE INDEX IF NOT EXISTS idx_invocations_agent ON invocations(agent);
`

// Close closes the archive.
func (a *Archive) Close() error {
	return a.conn.Close()
}

// Path returns the archive file path.
func (a *Archive) Path() string {
	return a.path
}

// Record inserts one invocation. The result payload is stored as JSON.
func (a *Archive) Record(entry models.HistoryEntry) error {
	resultJSON, err := json.Marshal(entry.Result.Result)
	if err != nil {
		resultJSON = []byte("null")
	}

	_, err = a.conn.Exec(`
		INSERT INTO invocations (id, timestamp, agent, task, success, result, error, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		formatTime(entry.Timestamp),
		entry.Agent,
		entry.Task,
		boolToInt(entry.Result.Success),
		string(resultJSON),
		entry.Result.Error,
		entry.Result.ExitCode,
	)
	if err != nil {
		return fmt.Errorf("insert invocation: %w", err)
	}
	return nil
}

// Recent returns up to limit invocations, newest first. An agent filter
// of "" matches all agents.
func (a *Archive) Recent(agent string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, timestamp, agent, task, success, result, error, exit_code
		FROM invocations
	`
	args := []any{}
	if agent != "" {
		query += " WHERE agent = ?"
		args = append(args, agent)
	}
	query += " ORDER BY timestamp DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := a.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var (
			entry      models.HistoryEntry
			ts         string
			success    int
			resultJSON sql.NullString
		)
		if err := rows.Scan(
			&entry.ID, &ts, &entry.Agent, &entry.Task,
			&success, &resultJSON, &entry.Result.Error, &entry.Result.ExitCode,
		); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}

		entry.Timestamp, err = parseTime(ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		entry.Result.Success = success == 1
		if resultJSON.Valid && resultJSON.String != "" {
			var payload any
			if err := json.Unmarshal([]byte(resultJSON.String), &payload); err == nil {
				entry.Result.Result = payload
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded invocations.
func (a *Archive) Count() (int64, error) {
	var n int64
	if err := a.conn.QueryRow("SELECT COUNT(*) FROM invocations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count invocations: %w", err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
