// Package prompts implements MCP prompt handlers for the memory
// workflow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// TaskKickoffPrompt handles the memory-kickoff MCP prompt.
// It guides the AI to load project context and memory before starting
// work on a task.
type TaskKickoffPrompt struct{}

// NewTaskKickoffPrompt creates a TaskKickoffPrompt.
func NewTaskKickoffPrompt() *TaskKickoffPrompt {
	return &TaskKickoffPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *TaskKickoffPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("memory-kickoff",
		mcp.WithPromptDescription(
			"Start a task with the project's accumulated context and memory. "+
				"Loads relevant context files and memory before any work begins.",
		),
		mcp.WithArgument("task_title",
			mcp.ArgumentDescription("Short title of the task you are about to start"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("task_description",
			mcp.ArgumentDescription("Optional longer description of the task"),
		),
	)
}

// Handle processes the memory-kickoff prompt request.
func (p *TaskKickoffPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	title := "the task"
	description := ""
	if args := req.Params.Arguments; args != nil {
		if t, ok := args["task_title"]; ok && t != "" {
			title = t
		}
		description = args["task_description"]
	}

	descLine := ""
	if description != "" {
		descLine = fmt.Sprintf(" and task_description='%s'", description)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Kick off task: %s", title),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I'm about to start working on: %s\n\n"+
						"Please:\n"+
						"1. Run `memory_load_context` with task_title='%s'%s\n"+
						"2. Treat the returned context block as binding project conventions\n"+
						"3. Do the work\n"+
						"4. When finished, run `memory_record_usage` with the loaded file paths, "+
						"your output, and whether the task succeeded\n"+
						"5. Record anything worth remembering with `memory_append_learning`",
					title, title, descLine,
				)),
			},
		},
	}, nil
}

// ─── RetroPrompt ────────────────────────────────────────────────────────────

// RetroPrompt handles the memory-retro MCP prompt.
// It guides the AI through recording what a finished task taught.
type RetroPrompt struct{}

// NewRetroPrompt creates a RetroPrompt.
func NewRetroPrompt() *RetroPrompt {
	return &RetroPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *RetroPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("memory-retro",
		mcp.WithPromptDescription(
			"Review a finished task and record its decisions, patterns, and "+
				"gotchas into project memory.",
		),
		mcp.WithArgument("category",
			mcp.ArgumentDescription("Memory category to record under, e.g. 'auth-decisions'"),
		),
	)
}

// Handle processes the memory-retro prompt request.
func (p *RetroPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	category := ""
	if args := req.Params.Arguments; args != nil {
		category = args["category"]
	}

	categoryHint := "Pick a short kebab-case category that matches the area of the work (e.g. 'auth-decisions', 'build-tooling')."
	if category != "" {
		categoryHint = fmt.Sprintf("Use category='%s'.", category)
	}

	return &mcp.GetPromptResult{
		Description: "Record task learnings",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"The task is done. Let's capture what it taught before moving on.\n\n" +
						"Please:\n" +
						"1. List the decisions made, surprises hit, and patterns that worked\n" +
						"2. For each, run `memory_append_learning` with the right type: " +
						"'decision' for choices with alternatives, 'gotcha' for surprises, " +
						"'pattern' for reusable approaches, 'learning' for everything else\n" +
						"3. " + categoryHint + "\n" +
						"4. Run `memory_stats` to confirm the entries landed",
				),
			},
		},
	}, nil
}
