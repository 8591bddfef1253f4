// Package tape renders decoded strokes into fixed-width paper tape rows.
//
// The tape is a stateful transformer: a system change rebuilds its display
// layout from scratch, and each stroke becomes one row showing which keys
// were engaged. Rows accumulate in an append-only log that the console
// displays as a scrolling pane.
package tape

import (
	"fmt"
	"strings"

	"github.com/dshills/stenoterm/internal/layout"
	"github.com/dshills/stenoterm/internal/steno"
)

// SystemSource resolves a system definition by name. The plugin registry
// implements this.
type SystemSource interface {
	System(name string) (*steno.System, error)
}

// ResetFunc is called after a system change has rebuilt the layout.
// rowWidth is the new display width.
type ResetFunc func(rowWidth int)

// RowFunc is called for each rendered row.
type RowFunc func(row string)

// Tape converts stroke events into display rows under the current system
// layout. It is driven from the single-threaded event loop; no internal
// locking is needed.
type Tape struct {
	source  SystemSource
	layout  *layout.KeyLayout
	rows    []string
	onReset ResetFunc
	onRow   RowFunc
}

// Option configures a Tape.
type Option func(*Tape)

// WithResetFunc installs a callback invoked after each layout rebuild.
func WithResetFunc(fn ResetFunc) Option {
	return func(t *Tape) {
		t.onReset = fn
	}
}

// WithRowFunc installs a callback invoked for each appended row.
func WithRowFunc(fn RowFunc) Option {
	return func(t *Tape) {
		t.onRow = fn
	}
}

// New creates a tape. The layout is created lazily by the first
// system-change notification; strokes arriving before then are dropped.
func New(source SystemSource, opts ...Option) *Tape {
	t := &Tape{source: source}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnConfigChanged handles a partial engine config update. Only the
// "system_name" key is of interest; its presence forces a full layout
// rebuild even if the named system is already active.
func (t *Tape) OnConfigChanged(update map[string]any) error {
	raw, ok := update["system_name"]
	if !ok {
		return nil
	}
	name, ok := raw.(string)
	if !ok {
		return fmt.Errorf("tape: system_name is %T, want string", raw)
	}

	sys, err := t.source.System(name)
	if err != nil {
		return fmt.Errorf("tape: resolving system %q: %w", name, err)
	}

	t.layout = layout.Resolve(sys)
	t.rows = nil
	if t.onReset != nil {
		t.onReset(t.layout.RowWidth())
	}
	return nil
}

// OnStroked renders one stroke into a row and appends it to the log. Keys
// the current system does not define are skipped so one malformed key
// never loses the whole row. Returns the rendered row, or "" when no
// system is active yet.
func (t *Tape) OnStroked(stroke steno.Stroke) string {
	if t.layout == nil {
		return ""
	}

	cells := t.layout.BlankRow()
	keys := stroke.Keys
	for _, key := range keys {
		if t.layout.IsNumeral(key) {
			keys = append(keys[:len(keys):len(keys)], t.layout.Indicator())
			break
		}
	}
	for _, key := range keys {
		pos, ok := t.layout.Position(key)
		if !ok {
			continue
		}
		cells[pos] = t.layout.Glyph(pos)
	}

	row := strings.Join(cells, "")
	t.rows = append(t.rows, row)
	if t.onRow != nil {
		t.onRow(row)
	}
	return row
}

// Rows returns the rendered row log. The caller must not mutate it.
func (t *Tape) Rows() []string {
	return t.rows
}

// RowWidth returns the current display width, or 0 before the first
// system change.
func (t *Tape) RowWidth() int {
	if t.layout == nil {
		return 0
	}
	return t.layout.RowWidth()
}

// ActiveSystem returns the name of the system the current layout was
// built from, or "" before the first system change.
func (t *Tape) ActiveSystem() string {
	if t.layout == nil {
		return ""
	}
	return t.layout.System()
}
