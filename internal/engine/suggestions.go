package engine

import "github.com/dshills/stenoterm/internal/steno"

// StaticSuggestions is a SuggestionSource backed by a fixed reverse
// dictionary: translation text to steno outlines. Useful for tests and
// for running the console without a live dictionary backend.
type StaticSuggestions map[string][][]string

// Suggestions implements SuggestionSource by exact text match.
func (s StaticSuggestions) Suggestions(text string) []steno.Suggestion {
	outlines, ok := s[text]
	if !ok {
		return nil
	}
	return []steno.Suggestion{{Text: text, Outlines: outlines}}
}
