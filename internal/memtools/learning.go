package memtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rkuprin/automaker/internal/memory"
)

// AppendLearningTool handles the memory_append_learning MCP tool.
type AppendLearningTool struct {
	engine *memory.Engine
}

// NewAppendLearningTool creates an AppendLearningTool.
func NewAppendLearningTool(engine *memory.Engine) *AppendLearningTool {
	return &AppendLearningTool{engine: engine}
}

var validLearningTypes = map[string]bool{
	string(memory.LearningDecision): true,
	string(memory.LearningLearning): true,
	string(memory.LearningPattern):  true,
	string(memory.LearningGotcha):   true,
}

// Definition returns the MCP tool definition for memory_append_learning.
func (t *AppendLearningTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_append_learning",
		mcp.WithDescription(
			"Record a learning after completing a task. Call this PROACTIVELY "+
				"after significant work — decisions made, patterns that worked, "+
				"gotchas encountered. Learnings accumulate per category and feed "+
				"future task prompts.",
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Topic category, e.g. 'auth', 'API design'. Becomes the memory filename."),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("One of: decision, learning, pattern, gotcha"),
			mcp.Enum("decision", "learning", "pattern", "gotcha"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("One-line statement of the decision/pattern/gotcha"),
		),
		mcp.WithString("context",
			mcp.Description("Situation or problem that led to this"),
		),
		mcp.WithString("why",
			mcp.Description("Reasoning, or root cause for gotchas"),
		),
		mcp.WithString("rejected",
			mcp.Description("Alternatives considered and rejected (decisions only)"),
		),
		mcp.WithString("tradeoffs",
			mcp.Description("Trade-offs accepted, or how to avoid for gotchas"),
		),
		mcp.WithString("breaking",
			mcp.Description("What breaks if this decision is changed (decisions only)"),
		),
		mcp.WithString("project_path",
			mcp.Description("Project root. Defaults to the nearest ancestor containing .automaker/"),
		),
	)
}

// Handle processes the memory_append_learning tool call.
func (t *AppendLearningTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	typ := req.GetString("type", "")
	content := req.GetString("content", "")

	if category == "" {
		return mcp.NewToolResultError("'category' is required"), nil
	}
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}
	if !validLearningTypes[typ] {
		return mcp.NewToolResultError("'type' must be one of: decision, learning, pattern, gotcha"), nil
	}

	root, err := resolveProjectRoot(req)
	if err != nil {
		return nil, err
	}

	learning := memory.Learning{
		Category:  category,
		Type:      memory.LearningType(typ),
		Content:   content,
		Context:   req.GetString("context", ""),
		Why:       req.GetString("why", ""),
		Rejected:  req.GetString("rejected", ""),
		Tradeoffs: req.GetString("tradeoffs", ""),
		Breaking:  req.GetString("breaking", ""),
	}
	if err := t.engine.AppendLearning(root, learning); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record learning: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Learning recorded: %q (%s → %s)", content, typ, category)), nil
}
