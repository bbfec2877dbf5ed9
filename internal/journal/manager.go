package journal

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rkuprin/automaker/internal/config"
)

// Manager routes journal events to one database per project, opening
// each lazily and caching the handle for the life of the process. It
// satisfies the engine's Journal interface.
//
// Projects that disable journaling in their settings get a nil handle
// cached, so the check happens once per project.
type Manager struct {
	mu   sync.Mutex
	open map[string]*Journal
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{open: make(map[string]*Journal)}
}

// Close closes every open journal.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for root, j := range m.open {
		if j == nil {
			continue
		}
		if err := j.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("journal: close %s: %w", root, err)
		}
	}
	m.open = make(map[string]*Journal)
	return firstErr
}

// journalFor returns the project's journal, opening it on first use.
// nil, nil means journaling is disabled for this project.
func (m *Manager) journalFor(projectRoot string) (*Journal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if j, ok := m.open[projectRoot]; ok {
		return j, nil
	}

	settings, err := config.LoadSettings(projectRoot)
	if err != nil {
		return nil, err
	}
	if !settings.Journal {
		m.open[projectRoot] = nil
		return nil, nil
	}

	j, err := Open(config.JournalPath(projectRoot))
	if err != nil {
		return nil, err
	}
	m.open[projectRoot] = j
	return j, nil
}

// RecordSelection logs a selector run against the project's journal.
func (m *Manager) RecordSelection(projectRoot, taskTitle string, contextFiles, memoryFiles []string) error {
	j, err := m.journalFor(projectRoot)
	if err != nil || j == nil {
		return err
	}
	return j.RecordSelection(taskTitle, contextFiles, memoryFiles)
}

// RecordLearning logs an appended learning.
func (m *Manager) RecordLearning(projectRoot, category, learningType string) error {
	j, err := m.journalFor(projectRoot)
	if err != nil || j == nil {
		return err
	}
	return j.RecordLearning(category, learningType)
}

// RecordUsage logs a usage counter increment. The owning project is
// derived from the memory file path; paths outside a project's
// .automaker directory are silently ignored.
func (m *Manager) RecordUsage(memoryFilePath, stat string) error {
	root, ok := projectRootOf(memoryFilePath)
	if !ok {
		return nil
	}
	j, err := m.journalFor(root)
	if err != nil || j == nil {
		return err
	}
	return j.RecordUsage(memoryFilePath, stat)
}

// GetStats returns the aggregate stats for one project, or zero stats
// when journaling is disabled.
func (m *Manager) GetStats(projectRoot string) (*Stats, error) {
	j, err := m.journalFor(projectRoot)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return &Stats{}, nil
	}
	return j.GetStats()
}

// projectRootOf walks a memory file path up to the directory containing
// .automaker.
func projectRootOf(path string) (string, bool) {
	clean := filepath.ToSlash(filepath.Clean(path))
	idx := strings.LastIndex(clean, "/"+config.AutomakerDir+"/")
	if idx < 0 {
		return "", false
	}
	return filepath.FromSlash(clean[:idx]), true
}
