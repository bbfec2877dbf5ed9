// Package config holds the filesystem layout of an Automaker project and
// the optional per-project engine settings.
//
// Everything the engine persists lives under .automaker/ relative to the
// project root: context files, memory files, and the selection journal.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AutomakerDir is the dot directory under the project root.
	AutomakerDir = ".automaker"
	// ContextDirName is the subdirectory holding context files.
	ContextDirName = "context"
	// MemoryDirName is the subdirectory holding memory files.
	MemoryDirName = "memory"
	// ContextMetadataFile maps context filenames to descriptions.
	ContextMetadataFile = "context-metadata.json"
	// IndexFile is the reserved memory index, excluded from scanning.
	IndexFile = "_index.md"
	// GotchasFile is the distinguished always-included memory file.
	GotchasFile = "gotchas.md"
	// SettingsFile holds optional engine settings.
	SettingsFile = "config.yaml"
	// JournalFile is the sqlite selection journal.
	JournalFile = "journal.db"
)

// ContextPath returns the absolute path to the context directory.
func ContextPath(projectRoot string) string {
	return filepath.Join(projectRoot, AutomakerDir, ContextDirName)
}

// MemoryPath returns the absolute path to the memory directory.
func MemoryPath(projectRoot string) string {
	return filepath.Join(projectRoot, AutomakerDir, MemoryDirName)
}

// ContextMetadataPath returns the absolute path to context-metadata.json.
func ContextMetadataPath(projectRoot string) string {
	return filepath.Join(ContextPath(projectRoot), ContextMetadataFile)
}

// SettingsPath returns the absolute path to the engine settings file.
func SettingsPath(projectRoot string) string {
	return filepath.Join(MemoryPath(projectRoot), SettingsFile)
}

// JournalPath returns the absolute path to the selection journal.
func JournalPath(projectRoot string) string {
	return filepath.Join(MemoryPath(projectRoot), JournalFile)
}

// Settings are the per-project engine defaults. A missing or malformed
// settings file yields DefaultSettings — settings are a convenience, not
// a prerequisite.
type Settings struct {
	MaxMemoryFiles int  `yaml:"max_memory_files"`
	IncludeMemory  bool `yaml:"include_memory"`
	Journal        bool `yaml:"journal"`
}

// DefaultSettings returns the engine defaults used when no settings file
// is present.
func DefaultSettings() Settings {
	return Settings{
		MaxMemoryFiles: 5,
		IncludeMemory:  true,
		Journal:        true,
	}
}

// LoadSettings reads the project's engine settings, falling back to
// defaults on absence. A present-but-unreadable file is an error so
// misconfiguration does not silently vanish.
func LoadSettings(projectRoot string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsPath(projectRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, err
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), err
	}
	if settings.MaxMemoryFiles < 0 {
		settings.MaxMemoryFiles = 0
	}
	return settings, nil
}
