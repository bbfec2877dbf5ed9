package memory

import (
	"strings"

	"github.com/rkuprin/automaker/internal/frontmatter"
	"github.com/rkuprin/automaker/internal/terms"
)

// Component weights. The file's own declared topic (its category name)
// is the strongest relevance signal, tags next, then explicit keywords,
// then summary prose.
const (
	categoryWeight   = 4
	tagWeight        = 3
	relevantToWeight = 2
	summaryWeight    = 1
)

// Score computes the relevance of a memory file for a set of task
// terms. With no task terms the score degrades to importance alone, so
// ranking without task context becomes "most important first".
func Score(meta frontmatter.Metadata, category string, taskTerms map[string]struct{}) float64 {
	if len(taskTerms) == 0 {
		return meta.Importance
	}

	matches := countListMatches(taskTerms, meta.Tags)*tagWeight +
		countListMatches(taskTerms, meta.RelevantTo)*relevantToWeight +
		countSetMatches(taskTerms, terms.Extract(meta.Summary))*summaryWeight +
		countListMatches(taskTerms, terms.SplitName(category))*categoryWeight

	return float64(matches) * meta.Importance * UsageScore(meta.UsageStats)
}

// countListMatches counts list items that appear among the task terms,
// case-insensitively.
func countListMatches(taskTerms map[string]struct{}, items []string) int {
	n := 0
	for _, item := range items {
		if _, ok := taskTerms[strings.ToLower(item)]; ok {
			n++
		}
	}
	return n
}

// countSetMatches counts the intersection of two term sets.
func countSetMatches(taskTerms, candidate map[string]struct{}) int {
	n := 0
	for term := range candidate {
		if _, ok := taskTerms[term]; ok {
			n++
		}
	}
	return n
}
