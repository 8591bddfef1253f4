package steno

import "strings"

// UnescapeTranslation removes backslash escapes from dictionary translation
// text, so users can look up entries exactly as they appear in a dictionary
// file: `\{` becomes `{`, `\}` becomes `}`, and `\\` becomes `\`. A trailing
// lone backslash is preserved as-is.
func UnescapeTranslation(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			switch text[i+1] {
			case '{', '}', '\\':
				i++
				c = text[i]
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
