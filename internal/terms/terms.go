// Package terms normalizes free text into the significant lowercase
// tokens used for relevance matching between tasks and memory files.
package terms

import "strings"

// stopWords are tokens with no discriminating signal: common English
// function words plus the generic verbs that show up in nearly every
// task description.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "they": {}, "will": {}, "would": {},
	"there": {}, "their": {}, "what": {}, "about": {}, "which": {},
	"when": {}, "them": {}, "then": {}, "than": {}, "into": {}, "its": {},
	"should": {}, "could": {}, "also": {}, "some": {}, "more": {},
	"other": {}, "been": {}, "were": {}, "being": {}, "does": {},
	"doing": {}, "each": {}, "using": {}, "use": {}, "used": {},
	"add": {}, "adds": {}, "added": {}, "create": {}, "creates": {},
	"created": {}, "implement": {}, "implements": {}, "implemented": {},
	"build": {}, "builds": {}, "built": {}, "make": {}, "makes": {},
	"made": {}, "update": {}, "updates": {}, "updated": {}, "fix": {},
	"fixes": {}, "fixed": {}, "change": {}, "changes": {}, "changed": {},
	"modify": {}, "modifies": {}, "modified": {},
}

// Extract normalizes text into a set of significant lowercase terms.
// Characters outside [a-z0-9] become whitespace, tokens of length <= 2
// and stop-words are discarded. Pure, deterministic, no I/O.
func Extract(text string) map[string]struct{} {
	terms := make(map[string]struct{})

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	for _, token := range strings.Fields(b.String()) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		terms[token] = struct{}{}
	}
	return terms
}

// SplitName derives matching terms from a category or filename by
// splitting on hyphens and underscores, keeping pieces longer than two
// characters. Used for the category component of relevance scoring.
func SplitName(name string) []string {
	var parts []string
	for _, piece := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		if len(piece) > 2 {
			parts = append(parts, piece)
		}
	}
	return parts
}
