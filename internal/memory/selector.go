package memory

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rkuprin/automaker/internal/config"
	"github.com/rkuprin/automaker/internal/frontmatter"
	"github.com/rkuprin/automaker/internal/terms"
)

// highImportance gates the "always include" selection step: files at or
// above this importance are injected even with zero term overlap.
const highImportance = 0.9

// ContextFile is a project rule document. Context files carry no
// frontmatter and no usage tracking — they are always included in full.
type ContextFile struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Content     string `json:"content,omitempty"`
	Description string `json:"description,omitempty"`
}

// MemoryFile is a scored memory candidate selected for injection.
type MemoryFile struct {
	Name     string               `json:"name"`
	Path     string               `json:"path"`
	Category string               `json:"category"`
	Meta     frontmatter.Metadata `json:"metadata"`
	Body     string               `json:"-"`
	Score    float64              `json:"score"`
}

// LoadOptions controls a single selection call.
type LoadOptions struct {
	ProjectRoot      string
	Task             *TaskContext
	MaxMemoryFiles   int
	IncludeMemory    bool
	InitializeMemory bool
}

// DefaultLoadOptions returns the standard selection parameters for a
// project: up to 5 memory files, memory enabled, auto-initialization on.
func DefaultLoadOptions(projectRoot string) LoadOptions {
	return LoadOptions{
		ProjectRoot:      projectRoot,
		MaxMemoryFiles:   5,
		IncludeMemory:    true,
		InitializeMemory: true,
	}
}

// LoadResult is the selector's output: the full context file set, the
// selected memory files, and the assembled prompt block handed to the
// agent executor.
type LoadResult struct {
	Files           []ContextFile `json:"files"`
	MemoryFiles     []MemoryFile  `json:"memoryFiles"`
	FormattedPrompt string        `json:"formattedPrompt"`
}

// contextMetadata mirrors .automaker/context/context-metadata.json.
type contextMetadata struct {
	Files map[string]struct {
		Description string `json:"description"`
	} `json:"files"`
}

// LoadContextFiles lists the project's context files, scores and selects
// memory files against the task, increments loaded counters for the
// selection, and assembles the formatted prompt.
//
// It is designed to always produce a usable result: absent directories
// mean empty lists, and every side channel (usage counters, journal) is
// best-effort. The returned error is reserved for genuinely unexpected
// conditions and is currently always nil.
func (e *Engine) LoadContextFiles(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	result.Files = e.listContextFiles(opts.ProjectRoot, true)

	if opts.IncludeMemory {
		result.MemoryFiles = e.selectMemoryFiles(opts)

		var selectedPaths []string
		for _, m := range result.MemoryFiles {
			e.IncrementUsageStat(m.Path, StatLoaded)
			selectedPaths = append(selectedPaths, m.Path)
		}

		taskTitle := ""
		if opts.Task != nil {
			taskTitle = opts.Task.Title
		}
		var contextNames []string
		for _, f := range result.Files {
			contextNames = append(contextNames, f.Name)
		}
		e.journalSelection(opts.ProjectRoot, taskTitle, contextNames, selectedPaths)
	}

	result.FormattedPrompt = buildPrompt(result.Files, result.MemoryFiles)
	return result, nil
}

// GetContextFilesSummary returns name, path and description for every
// context file without reading bodies — the lightweight listing used by
// callers that only need an inventory.
func (e *Engine) GetContextFilesSummary(projectRoot string) []ContextFile {
	return e.listContextFiles(projectRoot, false)
}

// listContextFiles enumerates .md/.txt files directly under the context
// directory, excluding the reserved metadata file. A missing directory
// means no context files, not an error.
func (e *Engine) listContextFiles(projectRoot string, withContent bool) []ContextFile {
	dir := config.ContextPath(projectRoot)
	if err := e.fs.Access(dir); err != nil {
		return nil
	}

	names, err := e.fs.ReadDir(dir)
	if err != nil {
		e.log.WithError(err).Debug("context dir unreadable")
		return nil
	}

	descriptions := e.loadContextDescriptions(projectRoot)

	var files []ContextFile
	for _, name := range names {
		if name == config.ContextMetadataFile || !isContextFile(name) {
			continue
		}

		file := ContextFile{
			Name:        name,
			Path:        filepath.Join(dir, name),
			Description: descriptions[name],
		}
		if withContent {
			content, err := e.fs.ReadFile(file.Path)
			if err != nil {
				e.log.WithError(err).WithField("file", name).Warn("context file unreadable, skipped")
				continue
			}
			file.Content = content
		}
		files = append(files, file)
	}
	return files
}

func isContextFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".txt":
		return true
	}
	return false
}

// loadContextDescriptions reads the optional context metadata document.
// Descriptions are looked up by exact filename; absence or malformed
// JSON simply means no descriptions.
func (e *Engine) loadContextDescriptions(projectRoot string) map[string]string {
	text, err := e.fs.ReadFile(config.ContextMetadataPath(projectRoot))
	if err != nil {
		return nil
	}
	var meta contextMetadata
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		e.log.WithError(err).Debug("context metadata malformed, ignored")
		return nil
	}
	descriptions := make(map[string]string, len(meta.Files))
	for name, entry := range meta.Files {
		descriptions[name] = entry.Description
	}
	return descriptions
}

// selectMemoryFiles enumerates, scores and picks memory candidates per
// the selection policy.
func (e *Engine) selectMemoryFiles(opts LoadOptions) []MemoryFile {
	dir := config.MemoryPath(opts.ProjectRoot)
	if err := e.fs.Access(dir); err != nil {
		if !opts.InitializeMemory {
			return nil
		}
		if err := e.InitializeMemory(opts.ProjectRoot); err != nil {
			e.log.WithError(err).Warn("memory initialization failed")
			return nil
		}
	}

	if opts.MaxMemoryFiles <= 0 {
		return nil
	}

	taskTerms := map[string]struct{}{}
	if opts.Task != nil {
		taskTerms = terms.Extract(opts.Task.Title + " " + opts.Task.Description)
	}

	candidates := e.scanCandidates(dir, taskTerms)

	// Highest score first; stable so equal scores keep directory order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	var selected []MemoryFile
	picked := make(map[string]bool)
	pick := func(m MemoryFile) {
		if !picked[m.Name] && len(selected) < opts.MaxMemoryFiles {
			picked[m.Name] = true
			selected = append(selected, m)
		}
	}

	// 1. The gotchas file is always injected, regardless of score.
	for _, m := range candidates {
		if m.Name == config.GotchasFile {
			pick(m)
		}
	}
	// 2. High-importance files must never be excluded for lacking
	//    term overlap.
	for _, m := range candidates {
		if m.Meta.Importance >= highImportance {
			pick(m)
		}
	}
	// 3. Fill the remaining budget by score — only meaningful when the
	//    task actually produced terms.
	if len(taskTerms) > 0 {
		for _, m := range candidates {
			if m.Score > 0 {
				pick(m)
			}
		}
	}

	return selected
}

// scanCandidates reads every .md file in the memory directory except the
// reserved index, skipping empty-bodied files — an empty learning file
// contributes nothing and must not occupy a selection slot.
func (e *Engine) scanCandidates(dir string, taskTerms map[string]struct{}) []MemoryFile {
	names, err := e.fs.ReadDir(dir)
	if err != nil {
		e.log.WithError(err).Debug("memory dir unreadable")
		return nil
	}

	var candidates []MemoryFile
	for _, name := range names {
		if name == config.IndexFile || strings.ToLower(filepath.Ext(name)) != ".md" {
			continue
		}

		path := filepath.Join(dir, name)
		text, err := e.fs.ReadFile(path)
		if err != nil {
			e.log.WithError(err).WithField("file", name).Debug("memory file unreadable, skipped")
			continue
		}

		meta, body := frontmatter.Parse(text)
		if strings.TrimSpace(body) == "" {
			continue
		}

		category := strings.TrimSuffix(name, filepath.Ext(name))
		candidates = append(candidates, MemoryFile{
			Name:     name,
			Path:     path,
			Category: category,
			Meta:     meta,
			Body:     body,
			Score:    Score(meta, category, taskTerms),
		})
	}
	return candidates
}

// ListMemoryFiles returns every selectable memory candidate with its
// metadata and importance-only score, for inspection surfaces. No usage
// counters are touched.
func (e *Engine) ListMemoryFiles(projectRoot string) []MemoryFile {
	dir := config.MemoryPath(projectRoot)
	if err := e.fs.Access(dir); err != nil {
		return nil
	}
	candidates := e.scanCandidates(dir, nil)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// ScoreMemoryFiles is ListMemoryFiles scored against a task, without
// applying selection or touching counters — a dry run of the selector's
// ranking.
func (e *Engine) ScoreMemoryFiles(projectRoot string, task TaskContext) []MemoryFile {
	dir := config.MemoryPath(projectRoot)
	if err := e.fs.Access(dir); err != nil {
		return nil
	}
	candidates := e.scanCandidates(dir, terms.Extract(task.Title+" "+task.Description))
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// InitializeMemory creates the memory directory with its two starter
// files. Idempotent: an existing directory is left untouched.
func (e *Engine) InitializeMemory(projectRoot string) error {
	dir := config.MemoryPath(projectRoot)
	if err := e.fs.Access(dir); err == nil {
		return nil
	}
	if err := e.fs.Mkdir(dir); err != nil {
		return fmt.Errorf("memory: create dir: %w", err)
	}

	indexMeta := frontmatter.Default()
	indexMeta.Summary = "Index of project memory files"
	index := frontmatter.Serialize(indexMeta) + "\n" + indexBody
	if err := e.fs.WriteFile(filepath.Join(dir, config.IndexFile), index); err != nil {
		return fmt.Errorf("memory: write index: %w", err)
	}

	gotchasMeta := frontmatter.Metadata{
		Tags:       []string{"gotchas"},
		Summary:    "Critical mistakes and pitfalls to avoid in this project",
		RelevantTo: []string{"gotchas"},
		Importance: 0.9,
	}
	gotchas := frontmatter.Serialize(gotchasMeta) + "\n" + gotchasBody
	if err := e.fs.WriteFile(filepath.Join(dir, config.GotchasFile), gotchas); err != nil {
		return fmt.Errorf("memory: write gotchas: %w", err)
	}
	return nil
}

const indexBody = `# Project Memory

This directory accumulates learnings from completed tasks. Each file
covers one category; the gotchas file is always injected into agent
prompts.
`

const gotchasBody = `# Gotchas

Known pitfalls in this project. Review before making changes.
`

// ─── Prompt assembly ─────────────────────────────────────────────────────────

// buildPrompt renders the selection as a single text block. A missing
// section is omitted entirely; sections are joined by a blank line.
func buildPrompt(files []ContextFile, memoryFiles []MemoryFile) string {
	var sections []string

	if len(files) > 0 {
		var b strings.Builder
		b.WriteString("## Project Context Files\n\n")
		b.WriteString("These files define project-specific rules and conventions. Follow all conventions exactly as written.\n")
		for _, f := range files {
			fmt.Fprintf(&b, "\n### %s (%s)\n", f.Name, f.Path)
			if f.Description != "" {
				fmt.Fprintf(&b, "Purpose: %s\n", f.Description)
			}
			b.WriteString("\n" + strings.TrimRight(f.Content, "\n") + "\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}

	if len(memoryFiles) > 0 {
		var b strings.Builder
		b.WriteString("## Project Memory\n\n")
		b.WriteString("Accumulated learnings from previous tasks in this project. Review these before making changes that might conflict.\n")
		for _, m := range memoryFiles {
			fmt.Fprintf(&b, "\n### %s\n\n", categoryHeading(m.Category))
			b.WriteString(strings.TrimRight(m.Body, "\n") + "\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// categoryHeading turns a sanitized category name into a readable
// heading: "auth-decisions" becomes "Auth Decisions".
func categoryHeading(category string) string {
	words := strings.FieldsFunc(category, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	if len(words) == 0 {
		return category
	}
	return strings.Join(words, " ")
}
