package memtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rkuprin/automaker/internal/config"
	"github.com/rkuprin/automaker/internal/memory"
)

// LoadContextTool handles the memory_load_context MCP tool.
type LoadContextTool struct {
	engine *memory.Engine
}

// NewLoadContextTool creates a LoadContextTool with the given engine.
func NewLoadContextTool(engine *memory.Engine) *LoadContextTool {
	return &LoadContextTool{engine: engine}
}

// Definition returns the MCP tool definition for memory_load_context.
func (t *LoadContextTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_load_context",
		mcp.WithDescription(
			"Assemble the context and memory prompt block for a task. "+
				"Returns every project context file in full plus the most relevant "+
				"memory files, scored against the task title and description. "+
				"Inject the result as system-level instructions before the task prompt.",
		),
		mcp.WithString("project_path",
			mcp.Description("Project root. Defaults to the nearest ancestor containing .automaker/"),
		),
		mcp.WithString("task_title",
			mcp.Description("Title of the task about to run; drives relevance scoring"),
		),
		mcp.WithString("task_description",
			mcp.Description("Optional longer task description, also term-matched"),
		),
		mcp.WithNumber("max_memory_files",
			mcp.Description("Memory file budget (default: from project settings, normally 5)"),
		),
		mcp.WithBoolean("include_memory",
			mcp.Description("Set false to load context files only"),
		),
	)
}

// Handle processes the memory_load_context tool call.
func (t *LoadContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := resolveProjectRoot(req)
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid project settings: %v", err)), nil
	}

	opts := memory.LoadOptions{
		ProjectRoot:      root,
		MaxMemoryFiles:   intArg(req, "max_memory_files", settings.MaxMemoryFiles),
		IncludeMemory:    boolArg(req, "include_memory", settings.IncludeMemory),
		InitializeMemory: true,
	}
	if title := req.GetString("task_title", ""); title != "" {
		opts.Task = &memory.TaskContext{
			Title:       title,
			Description: req.GetString("task_description", ""),
		}
	}

	result, err := t.engine.LoadContextFiles(opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load context: %v", err)), nil
	}

	if result.FormattedPrompt == "" {
		return mcp.NewToolResultText("No context or memory files available for this project."), nil
	}

	var b strings.Builder
	b.WriteString(result.FormattedPrompt)
	fmt.Fprintf(&b, "\n\n---\nLoaded %d context file(s), %d memory file(s).",
		len(result.Files), len(result.MemoryFiles))
	for _, m := range result.MemoryFiles {
		fmt.Fprintf(&b, "\n- %s (score %.2f)", m.Path, m.Score)
	}

	return mcp.NewToolResultText(b.String()), nil
}

// ─── ContextSummaryTool ─────────────────────────────────────────────────────

// ContextSummaryTool handles the memory_context_summary MCP tool.
type ContextSummaryTool struct {
	engine *memory.Engine
}

// NewContextSummaryTool creates a ContextSummaryTool.
func NewContextSummaryTool(engine *memory.Engine) *ContextSummaryTool {
	return &ContextSummaryTool{engine: engine}
}

// Definition returns the MCP tool definition for memory_context_summary.
func (t *ContextSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_context_summary",
		mcp.WithDescription(
			"List the project's context files (name, path, purpose) without "+
				"reading their contents. Use when you only need an inventory.",
		),
		mcp.WithString("project_path",
			mcp.Description("Project root. Defaults to the nearest ancestor containing .automaker/"),
		),
	)
}

// Handle processes the memory_context_summary tool call.
func (t *ContextSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := resolveProjectRoot(req)
	if err != nil {
		return nil, err
	}

	files := t.engine.GetContextFilesSummary(root)
	if len(files) == 0 {
		return mcp.NewToolResultText("No context files found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d context file(s):\n\n", len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%s)", f.Name, f.Path)
		if f.Description != "" {
			fmt.Fprintf(&b, " — %s", f.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
