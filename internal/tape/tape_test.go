package tape_test

import (
	"fmt"
	"testing"

	"github.com/dshills/stenoterm/internal/steno"
	"github.com/dshills/stenoterm/internal/tape"
)

type fakeSource struct {
	systems map[string]*steno.System
}

func (f *fakeSource) System(name string) (*steno.System, error) {
	sys, ok := f.systems[name]
	if !ok {
		return nil, fmt.Errorf("no such system: %s", name)
	}
	return sys, nil
}

func newSource() *fakeSource {
	return &fakeSource{systems: map[string]*steno.System{
		"test": {
			Name:    "test",
			Keys:    []string{"S-", "T-", "#", "-T"},
			Numbers: map[string]string{"S-": "1-"},
		},
		"english-stenotype": steno.EnglishStenotype(),
	}}
}

func activate(t *testing.T, tp *tape.Tape, name string) {
	t.Helper()
	if err := tp.OnConfigChanged(map[string]any{"system_name": name}); err != nil {
		t.Fatalf("OnConfigChanged: %v", err)
	}
}

func TestStrokeRendering(t *testing.T) {
	tp := tape.New(newSource())
	activate(t, tp, "test")

	// Keys S- and # engaged: glyphs at their columns, others blank,
	// width = key count + 1 reserved column.
	row := tp.OnStroked(steno.NewStroke("S-", "#"))
	if row != "S # " {
		t.Errorf("row = %q, want %q", row, "S # ")
	}
	if tp.RowWidth() != 5 {
		t.Errorf("RowWidth = %d, want 5", tp.RowWidth())
	}
	if len(row) != tp.RowWidth()-1 {
		t.Errorf("rendered cells = %d, want key count %d", len(row), tp.RowWidth()-1)
	}
}

func TestNumeralAppendsIndicator(t *testing.T) {
	tp := tape.New(newSource())
	activate(t, tp, "test")

	// 1- is the numeral alias of S-: its column lights up and the
	// numeric indicator is added to the engaged set.
	row := tp.OnStroked(steno.NewStroke("1-"))
	if row != "S # " {
		t.Errorf("row = %q, want %q", row, "S # ")
	}
}

func TestUnknownKeySkipped(t *testing.T) {
	tp := tape.New(newSource())
	activate(t, tp, "test")

	row := tp.OnStroked(steno.NewStroke("S-", "Q-"))
	if row != "S   " {
		t.Errorf("row = %q, want %q (unknown key ignored)", row, "S   ")
	}
}

func TestStrokeBeforeSystemDropped(t *testing.T) {
	tp := tape.New(newSource())

	if row := tp.OnStroked(steno.NewStroke("S-")); row != "" {
		t.Errorf("expected empty row before first system change, got %q", row)
	}
	if len(tp.Rows()) != 0 {
		t.Errorf("expected no logged rows, got %d", len(tp.Rows()))
	}
}

func TestRowsAppendOnly(t *testing.T) {
	tp := tape.New(newSource())
	activate(t, tp, "test")

	tp.OnStroked(steno.NewStroke("S-"))
	tp.OnStroked(steno.NewStroke("-T"))

	rows := tp.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0] != "S   " || rows[1] != "   T" {
		t.Errorf("unexpected rows: %q", rows)
	}
}

func TestSystemChangeResetsLayout(t *testing.T) {
	tp := tape.New(newSource())
	activate(t, tp, "test")

	var resetWidth int
	tp2 := tape.New(newSource(), tape.WithResetFunc(func(w int) { resetWidth = w }))
	activate(t, tp2, "english-stenotype")

	if tp2.RowWidth() != 24 {
		t.Errorf("RowWidth = %d, want 24", tp2.RowWidth())
	}
	if resetWidth != 24 {
		t.Errorf("reset callback width = %d, want 24", resetWidth)
	}
	if tp2.ActiveSystem() != "english-stenotype" {
		t.Errorf("ActiveSystem = %q", tp2.ActiveSystem())
	}
	_ = tp
}

func TestSystemChangeClearsRowLog(t *testing.T) {
	tp := tape.New(newSource())
	activate(t, tp, "test")
	tp.OnStroked(steno.NewStroke("S-"))

	activate(t, tp, "english-stenotype")
	if got := len(tp.Rows()); got != 0 {
		t.Errorf("rows after system change = %d, want 0", got)
	}
}

func TestSameSystemStillRecomputes(t *testing.T) {
	resets := 0
	tp := tape.New(newSource(), tape.WithResetFunc(func(int) { resets++ }))
	activate(t, tp, "test")
	activate(t, tp, "test")

	if resets != 2 {
		t.Errorf("expected recompute on every system_name update, got %d resets", resets)
	}
}

func TestUnknownSystemErrors(t *testing.T) {
	tp := tape.New(newSource())
	if err := tp.OnConfigChanged(map[string]any{"system_name": "nope"}); err == nil {
		t.Fatal("expected error for unknown system")
	}
}

func TestIrrelevantUpdateIgnored(t *testing.T) {
	tp := tape.New(newSource())
	if err := tp.OnConfigChanged(map[string]any{"machine_type": "keyboard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.RowWidth() != 0 {
		t.Error("layout must not exist before a system_name update")
	}
}

func TestRowCallback(t *testing.T) {
	var got []string
	tp := tape.New(newSource(), tape.WithRowFunc(func(r string) { got = append(got, r) }))
	activate(t, tp, "test")

	tp.OnStroked(steno.NewStroke("T-", "-T"))
	if len(got) != 1 || got[0] != " T T" {
		t.Errorf("row callback got %q", got)
	}
}
