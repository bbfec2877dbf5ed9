// Package memory implements Automaker's memory and context selection
// engine: the logic that decides, for each agent invocation, which
// project context files and which accumulated learnings get injected
// into the agent's prompt.
//
// Memory lives as markdown files with a frontmatter header under
// .automaker/memory/. Selection combines term-based relevance scoring
// with a usage-feedback loop: files that get loaded, referenced by agent
// output, and correlate with successful outcomes score higher next time.
package memory

import (
	"time"

	"github.com/rkuprin/automaker/internal/fslock"
	"github.com/rkuprin/automaker/internal/fsys"
	"github.com/sirupsen/logrus"
)

// Journal receives best-effort notifications about engine activity.
// Implementations must be safe for concurrent use; errors are logged
// and swallowed by the engine, never surfaced to callers. Usage events
// carry only the memory file path — implementations derive the owning
// project from it.
type Journal interface {
	RecordSelection(projectRoot, taskTitle string, contextFiles, memoryFiles []string) error
	RecordLearning(projectRoot, category, learningType string) error
	RecordUsage(memoryFilePath, stat string) error
}

// TaskContext is the ephemeral description of the task about to run.
// Only Title is required. Never persisted.
type TaskContext struct {
	Title       string
	Description string
}

// Engine orchestrates context loading, memory selection, usage tracking
// and learning recording for one or more projects.
type Engine struct {
	fs      fsys.FS
	locks   fslock.Locker
	journal Journal
	log     *logrus.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS replaces the filesystem collaborator (default: the OS).
func WithFS(fs fsys.FS) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLocker replaces the file lock manager.
func WithLocker(l fslock.Locker) Option {
	return func(e *Engine) { e.locks = l }
}

// WithJournal attaches a selection journal. Without one, journaling is
// disabled.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithLogger replaces the diagnostics logger.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine with the given options. Defaults: OS
// filesystem, in-process path locker, stderr logger, no journal.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fs:    fsys.OS{},
		locks: fslock.NewPathLocker(),
		log:   logrus.New(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// journalSelection notifies the journal about a completed selection.
// Best-effort: failures are logged, never propagated.
func (e *Engine) journalSelection(projectRoot, taskTitle string, contextFiles, memoryFiles []string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordSelection(projectRoot, taskTitle, contextFiles, memoryFiles); err != nil {
		e.log.WithError(err).Debug("journal: record selection failed")
	}
}

func (e *Engine) journalLearning(projectRoot, category, learningType string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordLearning(projectRoot, category, learningType); err != nil {
		e.log.WithError(err).Debug("journal: record learning failed")
	}
}

func (e *Engine) journalUsage(file, stat string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordUsage(file, stat); err != nil {
		e.log.WithError(err).Debug("journal: record usage failed")
	}
}
