package frontmatter

import (
	"reflect"
	"strings"
	"testing"
)

// ─── Parse ───────────────────────────────────────────────────────────────────

func TestParse_NoFrontmatter(t *testing.T) {
	meta, body := Parse("# Just a heading\n\nSome content.")

	if meta.Importance != DefaultImportance {
		t.Errorf("Importance = %v, want %v", meta.Importance, DefaultImportance)
	}
	if len(meta.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", meta.Tags)
	}
	if body != "# Just a heading\n\nSome content." {
		t.Errorf("body = %q, want full input", body)
	}
}

func TestParse_FullHeader(t *testing.T) {
	text := strings.Join([]string{
		"---",
		"tags: [auth, jwt]",
		"summary: JWT auth patterns",
		"relevantTo: [login, tokens]",
		"importance: 0.8",
		"relatedFiles: [api-decisions.md]",
		"usageStats:",
		"  loaded: 4",
		"  referenced: 2",
		"  successfulFeatures: 1",
		"---",
		"Use RS256 for signing.",
	}, "\n")

	meta, body := Parse(text)

	if got, want := meta.Tags, []string{"auth", "jwt"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
	if meta.Summary != "JWT auth patterns" {
		t.Errorf("Summary = %q, want 'JWT auth patterns'", meta.Summary)
	}
	if got, want := meta.RelevantTo, []string{"login", "tokens"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RelevantTo = %v, want %v", got, want)
	}
	if meta.Importance != 0.8 {
		t.Errorf("Importance = %v, want 0.8", meta.Importance)
	}
	if got, want := meta.RelatedFiles, []string{"api-decisions.md"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RelatedFiles = %v, want %v", got, want)
	}
	if meta.UsageStats.Loaded != 4 || meta.UsageStats.Referenced != 2 || meta.UsageStats.SuccessfulFeatures != 1 {
		t.Errorf("UsageStats = %+v, want {4 2 1}", meta.UsageStats)
	}
	if body != "Use RS256 for signing." {
		t.Errorf("body = %q", body)
	}
}

func TestParse_ImportanceClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1.5", 1.0},
		{"-3", 0},
		{"0.25", 0.25},
		{"not-a-number", DefaultImportance},
		{"", DefaultImportance},
	}
	for _, tt := range tests {
		meta, _ := Parse("---\nimportance: " + tt.raw + "\n---\nbody")
		if meta.Importance != tt.want {
			t.Errorf("importance %q parsed to %v, want %v", tt.raw, meta.Importance, tt.want)
		}
	}
}

func TestParse_MalformedFieldFallsBack(t *testing.T) {
	text := "---\ntags: not a list\nsummary: still works\nusageStats:\n  loaded: banana\n---\nbody"
	meta, body := Parse(text)

	if len(meta.Tags) != 0 {
		t.Errorf("Tags = %v, want empty for unbracketed value", meta.Tags)
	}
	if meta.Summary != "still works" {
		t.Errorf("Summary = %q, want 'still works'", meta.Summary)
	}
	if meta.UsageStats.Loaded != 0 {
		t.Errorf("Loaded = %d, want 0 for non-numeric value", meta.UsageStats.Loaded)
	}
	if body != "body" {
		t.Errorf("body = %q, want 'body'", body)
	}
}

func TestParse_QuotedListItems(t *testing.T) {
	meta, _ := Parse("---\ntags: ['auth', \"jwt\", , ]\n---\nx")
	if got, want := meta.Tags, []string{"auth", "jwt"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestParse_NeverFails(t *testing.T) {
	inputs := []string{
		"",
		"---",
		"---\n",
		"---\nunterminated header, never closed",
		"--- not a real delimiter\ntext",
		"\x00\x01binary\xffgarbage",
		"---\n---",
		"---\n---\n",
		"---\nno colon line\n---\n",
		strings.Repeat("-", 100),
	}
	for _, in := range inputs {
		meta, _ := Parse(in) // must not panic
		if meta.Importance != DefaultImportance {
			t.Errorf("input %q: Importance = %v, want default", in, meta.Importance)
		}
	}
}

func TestParse_UnterminatedHeaderTreatedAsBody(t *testing.T) {
	in := "---\ntags: [a]\nnever closed"
	meta, body := Parse(in)
	if len(meta.Tags) != 0 {
		t.Errorf("Tags = %v, want empty for unterminated header", meta.Tags)
	}
	if body != in {
		t.Errorf("body = %q, want full input", body)
	}
}

// ─── Serialize round trips ───────────────────────────────────────────────────

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		body string
	}{
		{
			name: "defaults",
			meta: Default(),
			body: "plain body",
		},
		{
			name: "full",
			meta: Metadata{
				Tags:         []string{"auth", "jwt"},
				Summary:      "JWT auth patterns",
				RelevantTo:   []string{"login"},
				Importance:   0.9,
				RelatedFiles: []string{"api.md"},
				UsageStats:   UsageStats{Loaded: 7, Referenced: 3, SuccessfulFeatures: 2},
			},
			body: "## Decisions\n\n- Use RS256\n",
		},
		{
			name: "special characters",
			meta: Metadata{
				Tags:       []string{"c: colon", "b[racket]", "has, comma"},
				Summary:    `quotes "inside" and #hash`,
				RelevantTo: []string{" leading space"},
				Importance: 0.5,
			},
			body: "body with\n---\na horizontal rule-ish line",
		},
		{
			name: "empty body",
			meta: Metadata{Summary: "no body", Importance: 1},
			body: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := Serialize(tt.meta) + "\n" + tt.body
			meta, body := Parse(text)

			if !metaEqual(meta, tt.meta) {
				t.Errorf("metadata = %+v, want %+v", meta, tt.meta)
			}
			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestSerialize_ClampsImportance(t *testing.T) {
	meta, _ := Parse(Serialize(Metadata{Importance: 2.5}) + "\nx")
	if meta.Importance != 1.0 {
		t.Errorf("Importance = %v, want 1.0", meta.Importance)
	}
}

// metaEqual compares metadata treating nil and empty slices as equal.
func metaEqual(a, b Metadata) bool {
	if a.Summary != b.Summary || a.Importance != b.Importance || a.UsageStats != b.UsageStats {
		return false
	}
	return sliceEqual(a.Tags, b.Tags) && sliceEqual(a.RelevantTo, b.RelevantTo) && sliceEqual(a.RelatedFiles, b.RelatedFiles)
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
