package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to open test journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordSelection_CountsInStats(t *testing.T) {
	j := newTestJournal(t)

	if err := j.RecordSelection("Add JWT refresh", []string{"rules.md"}, []string{"auth-decisions.md"}); err != nil {
		t.Fatalf("RecordSelection: %v", err)
	}
	if err := j.RecordSelection("Fix login", nil, nil); err != nil {
		t.Fatalf("RecordSelection: %v", err)
	}

	stats, err := j.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Selections != 2 {
		t.Errorf("Selections = %d, want 2", stats.Selections)
	}
	if stats.LastSelection == "" {
		t.Error("LastSelection should be set")
	}
}

func TestRecordLearningAndUsage(t *testing.T) {
	j := newTestJournal(t)

	if err := j.RecordLearning("auth", "decision"); err != nil {
		t.Fatalf("RecordLearning: %v", err)
	}
	if err := j.RecordUsage("/p/.automaker/memory/auth.md", "loaded"); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	stats, err := j.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Learnings != 1 {
		t.Errorf("Learnings = %d, want 1", stats.Learnings)
	}
	if stats.UsageUpdates != 1 {
		t.Errorf("UsageUpdates = %d, want 1", stats.UsageUpdates)
	}
	if stats.LastSelection != "" {
		t.Errorf("LastSelection = %q, want empty with no selections", stats.LastSelection)
	}
}

func TestGetStats_EmptyJournal(t *testing.T) {
	j := newTestJournal(t)

	stats, err := j.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Selections != 0 || stats.Learnings != 0 || stats.UsageUpdates != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	j.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	if err := j.RecordLearning("api", "pattern"); err != nil {
		t.Fatalf("RecordLearning: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()

	stats, err := j2.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Learnings != 1 {
		t.Errorf("Learnings after reopen = %d, want 1", stats.Learnings)
	}
}
