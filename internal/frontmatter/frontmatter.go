// Package frontmatter parses and serializes the metadata header embedded
// at the top of Automaker memory files.
//
// The format is a deliberately restricted, line-oriented YAML subset:
// scalar fields, bracketed lists, and a single nested usageStats block.
// It is NOT full YAML — the escaping rules below are the contract, and
// Parse(Serialize(m) + "\n" + body) must round-trip exactly. Do not swap
// this for a YAML library.
package frontmatter

import (
	"fmt"
	"strconv"
	"strings"
)

// UsageStats holds the per-file usage counters maintained by the
// usage-feedback tracker. All counters are monotonically non-decreasing.
//
// SuccessfulFeatures <= Referenced is expected but not enforced; the
// call sites that increment these control the ordering.
type UsageStats struct {
	Loaded             int `json:"loaded"`
	Referenced         int `json:"referenced"`
	SuccessfulFeatures int `json:"successfulFeatures"`
}

// Metadata is the structured header of a memory file.
type Metadata struct {
	Tags         []string   `json:"tags"`
	Summary      string     `json:"summary"`
	RelevantTo   []string   `json:"relevantTo"`
	Importance   float64    `json:"importance"`
	RelatedFiles []string   `json:"relatedFiles"`
	UsageStats   UsageStats `json:"usageStats"`
}

// DefaultImportance is assigned when a file carries no importance field.
const DefaultImportance = 0.5

// Default returns metadata with every field at its default value.
func Default() Metadata {
	return Metadata{Importance: DefaultImportance}
}

const delimiter = "---"

// Parse splits raw file text into metadata and body. It never fails:
// text without a frontmatter block (or with an unterminated one) yields
// default metadata and the entire input as body, and a malformed field
// silently falls back to that field's default.
func Parse(text string) (Metadata, string) {
	meta := Default()

	rest, ok := strings.CutPrefix(text, delimiter+"\n")
	if !ok {
		return meta, text
	}

	header, body, ok := cutHeader(rest)
	if !ok {
		return meta, text
	}

	inStats := false
	for _, line := range strings.Split(header, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Indented lines belong to the usageStats block; a new
		// top-level key ends it.
		indented := strings.TrimLeft(line, " \t") != line
		if !indented {
			inStats = false
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if inStats {
			parseStatField(&meta.UsageStats, key, value)
			continue
		}

		switch key {
		case "tags":
			meta.Tags = parseList(value)
		case "summary":
			meta.Summary = unquote(value)
		case "relevantTo":
			meta.RelevantTo = parseList(value)
		case "importance":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				meta.Importance = clamp01(f)
			}
		case "relatedFiles":
			meta.RelatedFiles = parseList(value)
		case "usageStats":
			inStats = true
		}
	}

	return meta, body
}

// cutHeader splits text (already past the opening delimiter) at the
// closing delimiter line. Returns ok=false if the header never closes.
func cutHeader(text string) (header, body string, ok bool) {
	if rest, found := strings.CutPrefix(text, delimiter+"\n"); found {
		return "", rest, true
	}
	if text == delimiter {
		return "", "", true
	}
	if header, body, found := strings.Cut(text, "\n"+delimiter+"\n"); found {
		return header, body, true
	}
	if header, found := strings.CutSuffix(text, "\n"+delimiter); found {
		return header, "", true
	}
	return "", "", false
}

func parseStatField(stats *UsageStats, key, value string) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return
	}
	switch key {
	case "loaded":
		stats.Loaded = n
	case "referenced":
		stats.Referenced = n
	case "successfulFeatures":
		stats.SuccessfulFeatures = n
	}
}

// parseList parses a bracketed, comma-separated list. Items are trimmed,
// surrounding quotes are stripped, and empty items are discarded. A value
// that is not bracketed yields nil.
func parseList(value string) []string {
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		return nil
	}
	inner := value[1 : len(value)-1]

	var items []string
	for _, raw := range splitItems(inner) {
		item := unquote(strings.TrimSpace(raw))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitItems splits on commas, but not inside quoted items, so that
// serialized values containing commas survive the round trip.
func splitItems(s string) []string {
	var (
		items   []string
		start   int
		quote   byte
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if c == '\\' && quote == '"' {
				escaped = true
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			items = append(items, s[start:i])
			start = i + 1
		}
	}
	return append(items, s[start:])
}

// unquote strips one layer of surrounding single or double quotes. For
// double quotes it also unescapes \" — the inverse of quoteIfNeeded.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// Serialize renders metadata as a frontmatter header, opening and closing
// delimiters included, without a trailing newline.
func Serialize(meta Metadata) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	fmt.Fprintf(&b, "tags: %s\n", formatList(meta.Tags))
	fmt.Fprintf(&b, "summary: %s\n", quoteIfNeeded(meta.Summary))
	fmt.Fprintf(&b, "relevantTo: %s\n", formatList(meta.RelevantTo))
	fmt.Fprintf(&b, "importance: %s\n", strconv.FormatFloat(clamp01(meta.Importance), 'g', -1, 64))
	fmt.Fprintf(&b, "relatedFiles: %s\n", formatList(meta.RelatedFiles))
	b.WriteString("usageStats:\n")
	fmt.Fprintf(&b, "  loaded: %d\n", meta.UsageStats.Loaded)
	fmt.Fprintf(&b, "  referenced: %d\n", meta.UsageStats.Referenced)
	fmt.Fprintf(&b, "  successfulFeatures: %d\n", meta.UsageStats.SuccessfulFeatures)
	b.WriteString(delimiter)
	return b.String()
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteIfNeeded(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// yamlSpecial marks characters that force a value into double quotes.
// This is a heuristic scan, not exhaustive YAML escaping; it must stay
// in sync with the parser's unquote for round-trips to hold.
const yamlSpecial = ":[]{}#&*!|><'\"%@`,\n"

func quoteIfNeeded(value string) string {
	if value == "" {
		return value
	}
	if strings.ContainsAny(value, yamlSpecial) || strings.TrimSpace(value) != value {
		return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	return value
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
