// Package journal is a best-effort SQLite event log of engine activity:
// which memory files were selected for which tasks, which learnings were
// recorded, and which usage counters moved.
//
// The markdown files remain the source of truth; the journal is a
// derived diagnostics channel. Callers treat every write as optional and
// the engine swallows journal errors.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Event kinds recorded in the journal.
const (
	KindSelection = "selection"
	KindLearning  = "learning"
	KindUsage     = "usage"
)

// Journal is an append-only event store backed by SQLite.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Stats holds aggregate journal counts.
type Stats struct {
	Selections    int    `json:"selections"`
	Learnings     int    `json:"learnings"`
	UsageUpdates  int    `json:"usage_updates"`
	LastSelection string `json:"last_selection,omitempty"`
}

// selectionDetail is the JSON payload of a selection event.
type selectionDetail struct {
	ContextFiles []string `json:"context_files"`
	MemoryFiles  []string `json:"memory_files"`
}

// learningDetail is the JSON payload of a learning event.
type learningDetail struct {
	Category string `json:"category"`
	Type     string `json:"type"`
}

// usageDetail is the JSON payload of a usage event.
type usageDetail struct {
	File string `json:"file"`
	Stat string `json:"stat"`
}

// Open creates or opens the journal database at path, enables WAL mode,
// and runs migrations.
func Open(path string) (*Journal, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return j, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			task_title TEXT NOT NULL DEFAULT '',
			detail     TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
		CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

func (j *Journal) record(kind, taskTitle string, detail any) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("journal: marshal detail: %w", err)
	}
	_, err = j.db.Exec(
		`INSERT INTO events (id, kind, task_title, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), kind, taskTitle, string(payload),
		j.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("journal: insert event: %w", err)
	}
	return nil
}

// RecordSelection logs one selector run.
func (j *Journal) RecordSelection(taskTitle string, contextFiles, memoryFiles []string) error {
	return j.record(KindSelection, taskTitle, selectionDetail{
		ContextFiles: contextFiles,
		MemoryFiles:  memoryFiles,
	})
}

// RecordLearning logs one appended learning.
func (j *Journal) RecordLearning(category, learningType string) error {
	return j.record(KindLearning, "", learningDetail{Category: category, Type: learningType})
}

// RecordUsage logs one usage counter increment. The file path is kept
// relative for readability; callers pass whatever they used on disk.
func (j *Journal) RecordUsage(file, stat string) error {
	return j.record(KindUsage, "", usageDetail{File: filepath.ToSlash(file), Stat: stat})
}

// GetStats returns aggregate event counts and the time of the most
// recent selection.
func (j *Journal) GetStats() (*Stats, error) {
	stats := &Stats{}

	rows, err := j.db.Query(`SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("journal: stats query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("journal: scan stats: %w", err)
		}
		switch kind {
		case KindSelection:
			stats.Selections = count
		case KindLearning:
			stats.Learnings = count
		case KindUsage:
			stats.UsageUpdates = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: stats rows: %w", err)
	}

	var last sql.NullString
	err = j.db.QueryRow(
		`SELECT MAX(created_at) FROM events WHERE kind = ?`, KindSelection,
	).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("journal: last selection: %w", err)
	}
	if last.Valid {
		stats.LastSelection = last.String
	}

	return stats, nil
}
