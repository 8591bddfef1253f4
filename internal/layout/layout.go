// Package layout derives the tape display layout from a steno system
// definition: one display glyph per physical key, a same-width blank filler
// for each glyph, the numeral key set, and the row width.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/stenoterm/internal/steno"
)

// KeyLayout is the derived display layout for one steno system. It is
// immutable once resolved; a system change produces a whole new layout.
type KeyLayout struct {
	system    string
	glyphs    []string
	fillers   []string
	keyOrder  map[string]int
	numerals  map[string]struct{}
	indicator string
}

// Resolve computes the display layout for a system. Key names have their
// positional hyphens stripped ("S-" and "-T" render as "S" and "T"); each
// glyph gets a blank filler of equal terminal width so engaged and idle
// cells line up even for wide glyphs.
func Resolve(sys *steno.System) *KeyLayout {
	glyphs := make([]string, len(sys.Keys))
	fillers := make([]string, len(sys.Keys))
	for i, key := range sys.Keys {
		glyph := strings.Trim(key, "-")
		glyphs[i] = glyph
		fillers[i] = strings.Repeat(" ", runewidth.StringWidth(glyph))
	}
	return &KeyLayout{
		system:    sys.Name,
		glyphs:    glyphs,
		fillers:   fillers,
		keyOrder:  sys.KeyOrder(),
		numerals:  sys.NumeralKeys(),
		indicator: sys.Indicator(),
	}
}

// System returns the name of the system this layout was resolved from.
func (l *KeyLayout) System() string {
	return l.system
}

// RowWidth is the tape row width in display cells: one per key plus one
// reserved column, matching the host display convention.
func (l *KeyLayout) RowWidth() int {
	return len(l.glyphs) + 1
}

// KeyCount returns the number of physical keys.
func (l *KeyLayout) KeyCount() int {
	return len(l.glyphs)
}

// Glyph returns the display glyph at the given position.
func (l *KeyLayout) Glyph(i int) string {
	return l.glyphs[i]
}

// Position returns the column for a key identifier. Numeral aliases map to
// the column of the letter key they shadow. ok is false for keys the
// system does not define.
func (l *KeyLayout) Position(key string) (pos int, ok bool) {
	pos, ok = l.keyOrder[key]
	return pos, ok
}

// IsNumeral returns true if the key is a numeral alias in this system.
func (l *KeyLayout) IsNumeral(key string) bool {
	_, ok := l.numerals[key]
	return ok
}

// Indicator returns the numeric indicator key identifier.
func (l *KeyLayout) Indicator() string {
	return l.indicator
}

// BlankRow returns a fresh all-blank row: one filler cell per key. The
// caller owns the returned slice.
func (l *KeyLayout) BlankRow() []string {
	row := make([]string, len(l.fillers))
	copy(row, l.fillers)
	return row
}
