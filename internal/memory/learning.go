package memory

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rkuprin/automaker/internal/config"
	"github.com/rkuprin/automaker/internal/frontmatter"
)

// LearningType classifies a recorded learning.
type LearningType string

const (
	LearningDecision LearningType = "decision"
	LearningLearning LearningType = "learning"
	LearningPattern  LearningType = "pattern"
	LearningGotcha   LearningType = "gotcha"
)

// Learning is the structured record appended after a task completes.
// Only Category, Type and Content are required; the remaining fields
// fill ADR-style bullets and are omitted when empty.
type Learning struct {
	Category  string       `json:"category"`
	Type      LearningType `json:"type"`
	Content   string       `json:"content"`
	Context   string       `json:"context,omitempty"`
	Why       string       `json:"why,omitempty"`
	Rejected  string       `json:"rejected,omitempty"`
	Tradeoffs string       `json:"tradeoffs,omitempty"`
	Breaking  string       `json:"breaking,omitempty"`
}

var categoryStrip = regexp.MustCompile(`[^a-z0-9-]`)

// sanitizeCategory derives a filename-safe category: lowercase,
// whitespace runs collapsed to a single hyphen, everything outside
// [a-z0-9-] stripped. An empty result falls back to "general".
func sanitizeCategory(category string) string {
	s := strings.ToLower(strings.TrimSpace(category))
	s = strings.Join(strings.Fields(s), "-")
	s = categoryStrip.ReplaceAllString(s, "")
	if s == "" {
		return "general"
	}
	return s
}

// AppendLearning records a learning in its category file under the
// project's memory directory, creating the file with seeded metadata on
// first use. Existing content is never modified or reordered — entries
// only accumulate at the end.
func (e *Engine) AppendLearning(projectRoot string, learning Learning) error {
	dir := config.MemoryPath(projectRoot)
	if err := e.fs.Mkdir(dir); err != nil {
		return fmt.Errorf("memory: create dir: %w", err)
	}

	sanitized := sanitizeCategory(learning.Category)
	path := filepath.Join(dir, sanitized+".md")

	err := e.locks.WithLock(path, func() error {
		entry := e.formatLearning(learning)

		if e.fs.Access(path) == nil {
			return e.fs.AppendFile(path, "\n"+entry+"\n")
		}

		meta := frontmatter.Metadata{
			Tags:       []string{sanitized},
			Summary:    fmt.Sprintf("%s implementation decisions and patterns", learning.Category),
			RelevantTo: []string{sanitized},
			Importance: 0.7,
		}
		content := frontmatter.Serialize(meta) + "\n" +
			fmt.Sprintf("# %s\n\n%s\n", learning.Category, entry)
		return e.fs.WriteFile(path, content)
	})
	if err != nil {
		return fmt.Errorf("memory: append learning: %w", err)
	}

	e.journalLearning(projectRoot, sanitized, string(learning.Type))
	return nil
}

// formatLearning renders one learning entry per its type's schema. Every
// entry carries the ISO calendar date, not the time.
func (e *Engine) formatLearning(l Learning) string {
	date := e.now().Format("2006-01-02")

	var b strings.Builder
	switch l.Type {
	case LearningDecision:
		fmt.Fprintf(&b, "### %s (%s)\n", l.Content, date)
		bullet(&b, "Context", l.Context)
		bullet(&b, "Why", l.Why)
		bullet(&b, "Rejected", l.Rejected)
		bullet(&b, "Trade-offs", l.Tradeoffs)
		bullet(&b, "Breaking if changed", l.Breaking)
	case LearningGotcha:
		fmt.Fprintf(&b, "#### [Gotcha] %s (%s)\n", l.Content, date)
		bullet(&b, "Situation", l.Context)
		bullet(&b, "Root cause", l.Why)
		bullet(&b, "How to avoid", l.Tradeoffs)
	case LearningPattern:
		fmt.Fprintf(&b, "#### [Pattern] %s (%s)\n", l.Content, date)
		bullet(&b, "Problem solved", l.Context)
		bullet(&b, "Why this works", l.Why)
		bullet(&b, "Trade-offs", l.Tradeoffs)
	default:
		fmt.Fprintf(&b, "#### [Learned] %s (%s)\n", l.Content, date)
		bullet(&b, "Problem solved", l.Context)
		bullet(&b, "Why this works", l.Why)
		bullet(&b, "Trade-offs", l.Tradeoffs)
	}
	return strings.TrimRight(b.String(), "\n")
}

// bullet writes one labeled bullet line, omitted entirely when the value
// is empty — no placeholder text.
func bullet(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s**: %s\n", label, value)
}
