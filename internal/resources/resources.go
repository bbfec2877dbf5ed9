// Package resources implements MCP resource handlers for the memory
// engine.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (automaker://...) following
// MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rkuprin/automaker/internal/journal"
	"github.com/rkuprin/automaker/internal/memory"
)

// Handler manages automaker resource endpoints.
type Handler struct {
	engine  *memory.Engine
	journal *journal.Manager
}

// NewHandler creates a resource Handler with its dependencies. The
// journal manager may be nil, in which case journal aggregates are
// omitted from the stats payload.
func NewHandler(engine *memory.Engine, journal *journal.Manager) *Handler {
	return &Handler{engine: engine, journal: journal}
}

// memoryFileStats is the per-file slice of the stats payload.
type memoryFileStats struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Importance         float64 `json:"importance"`
	Loaded             int     `json:"loaded"`
	Referenced         int     `json:"referenced"`
	SuccessfulFeatures int     `json:"successfulFeatures"`
}

// statsPayload is the JSON document served at automaker://memory/stats.
type statsPayload struct {
	ProjectRoot string            `json:"projectRoot"`
	Files       []memoryFileStats `json:"files"`
	Journal     *journal.Stats    `json:"journal,omitempty"`
}

// StatsResource returns the MCP resource definition for memory stats.
func (h *Handler) StatsResource() mcp.Resource {
	return mcp.NewResource(
		"automaker://memory/stats",
		"Memory Usage Stats",
		mcp.WithResourceDescription("Per-file usage counters and journal aggregates for the current project's memory"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStats returns the current project's memory stats as JSON.
func (h *Handler) HandleStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	root, err := findRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	payload := statsPayload{
		ProjectRoot: root,
		Files:       []memoryFileStats{},
	}
	for _, m := range h.engine.ListMemoryFiles(root) {
		s := m.Meta.UsageStats
		payload.Files = append(payload.Files, memoryFileStats{
			Name:               m.Name,
			Category:           m.Category,
			Importance:         m.Meta.Importance,
			Loaded:             s.Loaded,
			Referenced:         s.Referenced,
			SuccessfulFeatures: s.SuccessfulFeatures,
		})
	}

	if h.journal != nil {
		stats, err := h.journal.GetStats(root)
		if err == nil {
			payload.Journal = stats
		}
		// A broken journal never blocks the resource; the per-file
		// counters still get served.
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
