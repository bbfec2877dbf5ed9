package memory

import (
	"github.com/rkuprin/automaker/internal/frontmatter"
	"github.com/rkuprin/automaker/internal/terms"
)

// Stat names a usage counter in a memory file's frontmatter.
type Stat string

const (
	StatLoaded             Stat = "loaded"
	StatReferenced         Stat = "referenced"
	StatSuccessfulFeatures Stat = "successfulFeatures"
)

// referencedThreshold is the minimum number of a file's own terms that
// must appear in the agent's output for the file to count as referenced.
// A rough containment heuristic, not semantic matching — kept as-is so
// selection quality stays comparable across runs.
const referencedThreshold = 3

// UsageScore converts usage counters into a score multiplier. A file
// that was never loaded is neutral (exactly 1); otherwise the result is
// bounded to roughly [0.5, 1.0], rewarding files that get referenced
// once loaded and that correlate with successful outcomes.
func UsageScore(stats frontmatter.UsageStats) float64 {
	if stats.Loaded == 0 {
		return 1
	}
	referenceRate := float64(stats.Referenced) / float64(stats.Loaded)
	successRate := 0.0
	if stats.Referenced > 0 {
		successRate = float64(stats.SuccessfulFeatures) / float64(stats.Referenced)
	}
	return 0.5 + referenceRate*0.3 + successRate*0.2
}

// IncrementUsageStat bumps one usage counter in the file at path by
// exactly 1, as a single locked read-modify-write. Usage tracking is a
// best-effort side channel: a missing or unreadable file is a no-op and
// no error ever reaches the caller.
func (e *Engine) IncrementUsageStat(path string, stat Stat) {
	err := e.locks.WithLock(path, func() error {
		text, err := e.fs.ReadFile(path)
		if err != nil {
			return err
		}

		meta, body := frontmatter.Parse(text)
		switch stat {
		case StatLoaded:
			meta.UsageStats.Loaded++
		case StatReferenced:
			meta.UsageStats.Referenced++
		case StatSuccessfulFeatures:
			meta.UsageStats.SuccessfulFeatures++
		}

		return e.fs.WriteFile(path, frontmatter.Serialize(meta)+"\n"+body)
	})
	if err != nil {
		e.log.WithError(err).WithField("path", path).Debug("usage stat update skipped")
		return
	}
	e.journalUsage(path, string(stat))
}

// RecordMemoryUsage runs the post-task feedback loop: for every file
// that was loaded into the prompt, decide whether the agent's output
// actually referenced it, and bump the counters that feed future
// scoring. All updates are best-effort.
func (e *Engine) RecordMemoryUsage(loadedPaths []string, agentOutput string, success bool) {
	outputTerms := terms.Extract(agentOutput)

	for _, path := range loadedPaths {
		text, err := e.fs.ReadFile(path)
		if err != nil {
			e.log.WithError(err).WithField("path", path).Debug("usage check skipped")
			continue
		}
		_, body := frontmatter.Parse(text)

		overlap := 0
		for term := range terms.Extract(body) {
			if _, ok := outputTerms[term]; ok {
				overlap++
			}
		}
		if overlap < referencedThreshold {
			continue
		}

		e.IncrementUsageStat(path, StatReferenced)
		if success {
			e.IncrementUsageStat(path, StatSuccessfulFeatures)
		}
	}
}
