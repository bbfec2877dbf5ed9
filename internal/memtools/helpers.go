// Package memtools provides the MCP tool handlers over the memory and
// context engine.
//
// Each tool follows the same pattern:
// - A struct with dependencies (memory.Engine, journal manager) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Tools never fail the calling pipeline for engine-internal reasons:
// parse and absence conditions degrade to empty results, matching the
// engine's error taxonomy.
package memtools

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rkuprin/automaker/internal/config"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringListArg extracts a list-of-strings argument; non-string items
// are skipped.
func stringListArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	var items []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

// resolveProjectRoot returns the explicit project_path argument, or
// walks up from the working directory looking for an .automaker/
// directory so tools work from any subdirectory. Falls back to cwd.
func resolveProjectRoot(req mcp.CallToolRequest) (string, error) {
	if path := req.GetString("project_path", ""); path != "" {
		return path, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, config.AutomakerDir)); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
