package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rkuprin/automaker/internal/config"
)

func TestManager_RecordSelectionOpensJournalLazily(t *testing.T) {
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	root := t.TempDir()
	if err := os.MkdirAll(config.MemoryPath(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := m.RecordSelection(root, "task", nil, []string{"a.md"}); err != nil {
		t.Fatalf("RecordSelection: %v", err)
	}

	stats, err := m.GetStats(root)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Selections != 1 {
		t.Errorf("Selections = %d, want 1", stats.Selections)
	}
	if _, err := os.Stat(config.JournalPath(root)); err != nil {
		t.Errorf("journal database not created: %v", err)
	}
}

func TestManager_DisabledByProjectSettings(t *testing.T) {
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	root := t.TempDir()
	if err := os.MkdirAll(config.MemoryPath(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(config.SettingsPath(root), []byte("journal: false\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	if err := m.RecordLearning(root, "auth", "decision"); err != nil {
		t.Fatalf("RecordLearning: %v", err)
	}

	if _, err := os.Stat(config.JournalPath(root)); !os.IsNotExist(err) {
		t.Error("journal database should not exist when disabled")
	}
	stats, err := m.GetStats(root)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Selections != 0 || stats.Learnings != 0 {
		t.Errorf("stats = %+v, want zero for disabled project", stats)
	}
}

func TestManager_RecordUsageDerivesProjectRoot(t *testing.T) {
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	root := t.TempDir()
	if err := os.MkdirAll(config.MemoryPath(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path := filepath.Join(config.MemoryPath(root), "auth.md")
	if err := m.RecordUsage(path, "loaded"); err != nil {
		t.Fatalf("RecordUsage: %v", err)
	}

	stats, err := m.GetStats(root)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.UsageUpdates != 1 {
		t.Errorf("UsageUpdates = %d, want 1", stats.UsageUpdates)
	}
}

func TestManager_RecordUsageIgnoresForeignPaths(t *testing.T) {
	m := NewManager()
	t.Cleanup(func() { _ = m.Close() })

	if err := m.RecordUsage("/tmp/unrelated/file.md", "loaded"); err != nil {
		t.Errorf("RecordUsage on foreign path = %v, want nil no-op", err)
	}
}

func TestProjectRootOf(t *testing.T) {
	root, ok := projectRootOf("/home/u/proj/.automaker/memory/auth.md")
	if !ok || root != "/home/u/proj" {
		t.Errorf("projectRootOf = %q, %v; want /home/u/proj, true", root, ok)
	}
	if _, ok := projectRootOf("/home/u/elsewhere/auth.md"); ok {
		t.Error("path without .automaker should not resolve")
	}
}
