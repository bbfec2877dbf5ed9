package memtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rkuprin/automaker/internal/journal"
	"github.com/rkuprin/automaker/internal/memory"
)

// InitTool handles the memory_init MCP tool.
type InitTool struct {
	engine *memory.Engine
}

// NewInitTool creates an InitTool.
func NewInitTool(engine *memory.Engine) *InitTool {
	return &InitTool{engine: engine}
}

// Definition returns the MCP tool definition for memory_init.
func (t *InitTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_init",
		mcp.WithDescription(
			"Initialize the project's memory directory with its starter files "+
				"(index and gotchas). Idempotent: an existing memory directory "+
				"is left untouched.",
		),
		mcp.WithString("project_path",
			mcp.Description("Project root. Defaults to the nearest ancestor containing .automaker/"),
		),
	)
}

// Handle processes the memory_init tool call.
func (t *InitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := resolveProjectRoot(req)
	if err != nil {
		return nil, err
	}

	if err := t.engine.InitializeMemory(root); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to initialize memory: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Memory initialized at %s", root)), nil
}

// ─── StatsTool ──────────────────────────────────────────────────────────────

// StatsTool handles the memory_stats MCP tool.
type StatsTool struct {
	engine  *memory.Engine
	journal *journal.Manager
}

// NewStatsTool creates a StatsTool. The journal manager may be nil,
// in which case only per-file counters are reported.
func NewStatsTool(engine *memory.Engine, journal *journal.Manager) *StatsTool {
	return &StatsTool{engine: engine, journal: journal}
}

// Definition returns the MCP tool definition for memory_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_stats",
		mcp.WithDescription(
			"Show memory health for a project: per-file usage counters "+
				"(loaded/referenced/successful) and journal aggregates.",
		),
		mcp.WithString("project_path",
			mcp.Description("Project root. Defaults to the nearest ancestor containing .automaker/"),
		),
	)
}

// Handle processes the memory_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := resolveProjectRoot(req)
	if err != nil {
		return nil, err
	}

	files := t.engine.ListMemoryFiles(root)

	var b strings.Builder
	if len(files) == 0 {
		b.WriteString("No memory files yet.\n")
	} else {
		fmt.Fprintf(&b, "%d memory file(s):\n\n", len(files))
		for _, m := range files {
			s := m.Meta.UsageStats
			fmt.Fprintf(&b, "- %s (importance %.2g): loaded %d, referenced %d, successful %d\n",
				m.Name, m.Meta.Importance, s.Loaded, s.Referenced, s.SuccessfulFeatures)
		}
	}

	if t.journal != nil {
		stats, err := t.journal.GetStats(root)
		if err != nil {
			// Journal is a diagnostics side channel; report and move on.
			fmt.Fprintf(&b, "\nJournal unavailable: %v\n", err)
		} else {
			fmt.Fprintf(&b, "\nJournal: %d selection(s), %d learning(s), %d usage update(s)",
				stats.Selections, stats.Learnings, stats.UsageUpdates)
			if stats.LastSelection != "" {
				fmt.Fprintf(&b, "; last selection %s", stats.LastSelection)
			}
			b.WriteString("\n")
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
