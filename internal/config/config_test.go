package config

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Path helpers ---

func TestContextPath(t *testing.T) {
	got := ContextPath("/home/user/project")
	want := filepath.Join("/home/user/project", AutomakerDir, ContextDirName)
	if got != want {
		t.Errorf("ContextPath = %s, want %s", got, want)
	}
}

func TestMemoryPath(t *testing.T) {
	got := MemoryPath("/home/user/project")
	want := filepath.Join("/home/user/project", AutomakerDir, MemoryDirName)
	if got != want {
		t.Errorf("MemoryPath = %s, want %s", got, want)
	}
}

func TestJournalPath(t *testing.T) {
	got := JournalPath("/p")
	want := filepath.Join("/p", AutomakerDir, MemoryDirName, JournalFile)
	if got != want {
		t.Errorf("JournalPath = %s, want %s", got, want)
	}
}

// --- Settings ---

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults %+v", settings, DefaultSettings())
	}
}

func TestLoadSettings_ReadsOverrides(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "max_memory_files: 2\ninclude_memory: false\n")

	settings, err := LoadSettings(root)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.MaxMemoryFiles != 2 {
		t.Errorf("MaxMemoryFiles = %d, want 2", settings.MaxMemoryFiles)
	}
	if settings.IncludeMemory {
		t.Error("IncludeMemory = true, want false")
	}
	if !settings.Journal {
		t.Error("Journal = false, want default true when omitted")
	}
}

func TestLoadSettings_NegativeCapClampedToZero(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "max_memory_files: -3\n")

	settings, err := LoadSettings(root)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.MaxMemoryFiles != 0 {
		t.Errorf("MaxMemoryFiles = %d, want 0", settings.MaxMemoryFiles)
	}
}

func TestLoadSettings_MalformedYAMLReturnsDefaultsAndError(t *testing.T) {
	root := t.TempDir()
	writeSettings(t, root, "max_memory_files: [not a number\n")

	settings, err := LoadSettings(root)
	if err == nil {
		t.Error("expected error for malformed settings")
	}
	if settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults on malformed file", settings)
	}
}

func writeSettings(t *testing.T, projectRoot, content string) {
	t.Helper()
	if err := os.MkdirAll(MemoryPath(projectRoot), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(SettingsPath(projectRoot), []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
}
