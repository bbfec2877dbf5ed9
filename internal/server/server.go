// Package server wires the memory engine and creates the MCP server
// instance.
//
// This is the composition root: it creates the concrete engine,
// lock manager and journal, and injects them into the tools and
// resources that depend on them. No business logic lives here.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rkuprin/automaker/internal/journal"
	"github.com/rkuprin/automaker/internal/memory"
	"github.com/rkuprin/automaker/internal/memtools"
	"github.com/rkuprin/automaker/internal/prompts"
	"github.com/rkuprin/automaker/internal/resources"
	"github.com/sirupsen/logrus"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all memory tools,
// prompts, and resources registered.
//
// The returned cleanup function closes any journal databases the
// server opened and must be called on shutdown (typically via defer).
// It is always non-nil.
func New(log *logrus.Logger) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---
	//
	// One engine and one journal manager serve every project the
	// server touches: the lock manager inside the engine must be
	// process-wide for file serialization to hold.

	journals := journal.NewManager()
	engine := memory.NewEngine(
		memory.WithJournal(journals),
		memory.WithLogger(log),
	)

	cleanup := func() {
		if err := journals.Close(); err != nil {
			log.WithError(err).Warn("journal close")
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"automaker-memory",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	loadContext := memtools.NewLoadContextTool(engine)
	s.AddTool(loadContext.Definition(), loadContext.Handle)

	contextSummary := memtools.NewContextSummaryTool(engine)
	s.AddTool(contextSummary.Definition(), contextSummary.Handle)

	appendLearning := memtools.NewAppendLearningTool(engine)
	s.AddTool(appendLearning.Definition(), appendLearning.Handle)

	recordUsage := memtools.NewRecordUsageTool(engine)
	s.AddTool(recordUsage.Definition(), recordUsage.Handle)

	initTool := memtools.NewInitTool(engine)
	s.AddTool(initTool.Definition(), initTool.Handle)

	statsTool := memtools.NewStatsTool(engine, journals)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// --- Register prompts ---

	kickoff := prompts.NewTaskKickoffPrompt()
	s.AddPrompt(kickoff.Definition(), kickoff.Handle)

	retro := prompts.NewRetroPrompt()
	s.AddPrompt(retro.Definition(), retro.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(engine, journals)
	s.AddResource(resourceHandler.StatsResource(), resourceHandler.HandleStats)

	return s, cleanup, nil
}

func serverInstructions() string {
	return `Automaker memory server. Before starting a task, call
memory_load_context with the task title and inject the returned block
as system-level instructions. After finishing a task, call
memory_record_usage with the loaded file paths and the agent output,
and record notable decisions, patterns and gotchas with
memory_append_learning so future tasks benefit from them.`
}
