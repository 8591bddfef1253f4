package steno

import "strings"

// Suggestion is one dictionary suggestion for a piece of translation text:
// the text itself plus the steno outlines that produce it. Each outline is
// a sequence of strokes in RTF/CRE notation (e.g. ["TKIBG", "THAIR"]).
type Suggestion struct {
	Text     string
	Outlines [][]string
}

// FormatSuggestions renders suggestions one per line as
// "<text>: OUTLINE, OUTLINE" with strokes inside an outline joined by "/".
// Returns "" for an empty suggestion list.
func FormatSuggestions(suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return ""
	}
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		outlines := make([]string, 0, len(s.Outlines))
		for _, outline := range s.Outlines {
			outlines = append(outlines, strings.Join(outline, "/"))
		}
		lines = append(lines, s.Text+": "+strings.Join(outlines, ", "))
	}
	return strings.Join(lines, "\n")
}
