package memtools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rkuprin/automaker/internal/memory"
)

// RecordUsageTool handles the memory_record_usage MCP tool — the
// post-task feedback hook.
type RecordUsageTool struct {
	engine *memory.Engine
}

// NewRecordUsageTool creates a RecordUsageTool.
func NewRecordUsageTool(engine *memory.Engine) *RecordUsageTool {
	return &RecordUsageTool{engine: engine}
}

// Definition returns the MCP tool definition for memory_record_usage.
func (t *RecordUsageTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_record_usage",
		mcp.WithDescription(
			"Report the outcome of an agent run for the memory files that were "+
				"loaded into its prompt. Files whose terms appear in the agent's "+
				"output are counted as referenced, feeding future relevance "+
				"scoring. Call once per completed task.",
		),
		mcp.WithArray("loaded_files",
			mcp.Required(),
			mcp.Description("Paths of the memory files that were loaded into the prompt"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("agent_output",
			mcp.Required(),
			mcp.Description("The agent's raw output text"),
		),
		mcp.WithBoolean("success",
			mcp.Description("Whether the task completed successfully (default: false)"),
		),
	)
}

// Handle processes the memory_record_usage tool call. Usage tracking is
// best-effort by contract, so this tool always reports success.
func (t *RecordUsageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded := stringListArg(req, "loaded_files")
	if len(loaded) == 0 {
		return mcp.NewToolResultText("No loaded files to record."), nil
	}

	output := req.GetString("agent_output", "")
	success := boolArg(req, "success", false)

	t.engine.RecordMemoryUsage(loaded, output, success)

	return mcp.NewToolResultText(fmt.Sprintf(
		"Usage recorded for %d file(s) (success=%v).", len(loaded), success)), nil
}
