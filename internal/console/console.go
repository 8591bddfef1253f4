// Package console implements the terminal UI host: the scrolling command
// output pane, the paper tape pane, the suggestions pane, the input line,
// and foreground color styling. It owns the tcell screen and the
// cooperative event loop every command dispatch runs on.
package console

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const prompt = "> "

// maxSuggestionRows bounds the suggestions pane height.
const maxSuggestionRows = 5

// CommandHandler dispatches one tokenized input line. The returned error
// is a command-level failure (e.g. color validation) reported to the
// user; handled mirrors the command tree's handled/help distinction.
type CommandHandler func(words []string) (handled bool, err error)

// Console is the terminal UI host.
type Console struct {
	mu     sync.Mutex
	screen tcell.Screen

	lines       []string // command output log, append-only
	tapeRows    []string // rendered tape rows, append-only
	tapeWidth   int
	suggestions []string // most recent suggestion lines

	showTape        bool
	showSuggestions bool

	input   []rune
	style   tcell.Style
	handler CommandHandler

	quitting bool
	exitCode int
}

// Option configures a Console.
type Option func(*Console)

// WithTapeShown sets the initial tape pane visibility.
func WithTapeShown(show bool) Option {
	return func(c *Console) {
		c.showTape = show
	}
}

// WithSuggestionsShown sets the initial suggestions pane visibility.
func WithSuggestionsShown(show bool) Option {
	return func(c *Console) {
		c.showSuggestions = show
	}
}

// New creates a console on the given screen. The screen must already be
// initialized; the caller finalizes it after Run returns.
func New(screen tcell.Screen, opts ...Option) *Console {
	c := &Console{
		screen: screen,
		style:  tcell.StyleDefault,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCommandHandler installs the dispatch target for input lines. The
// command tree needs the console's output sink to build, so the handler
// arrives after construction.
func (c *Console) SetCommandHandler(h CommandHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// OutputLine appends one line to the command output pane. Multi-line
// strings are split so the log stays one display line per entry.
func (c *Console) OutputLine(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, strings.Split(line, "\n")...)
	c.mu.Unlock()
	c.draw()
}

// TapeAppend appends one rendered row to the tape pane.
func (c *Console) TapeAppend(row string) {
	c.mu.Lock()
	c.tapeRows = append(c.tapeRows, row)
	c.mu.Unlock()
	c.draw()
}

// TapeReset clears the tape pane and resizes it for a new layout.
func (c *Console) TapeReset(rowWidth int) {
	c.mu.Lock()
	c.tapeRows = nil
	c.tapeWidth = rowWidth
	c.mu.Unlock()
	c.draw()
}

// ShowSuggestions replaces the suggestions pane content.
func (c *Console) ShowSuggestions(lines []string) {
	c.mu.Lock()
	c.suggestions = lines
	c.mu.Unlock()
	c.draw()
}

// ToggleTape flips the tape pane and returns the new visibility.
func (c *Console) ToggleTape() bool {
	c.mu.Lock()
	c.showTape = !c.showTape
	show := c.showTape
	c.mu.Unlock()
	c.draw()
	return show
}

// ToggleSuggestions flips the suggestions pane and returns the new
// visibility.
func (c *Console) ToggleSuggestions() bool {
	c.mu.Lock()
	c.showSuggestions = !c.showSuggestions
	show := c.showSuggestions
	c.mu.Unlock()
	c.draw()
	return show
}

// ApplyStyle applies a foreground color spec to the live UI, failing on
// an invalid spec without touching the current style.
func (c *Console) ApplyStyle(colorSpec string) error {
	color, err := ParseColor(colorSpec)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.style = tcell.StyleDefault.Foreground(color)
	c.mu.Unlock()
	c.draw()
	return nil
}

// Exit requests termination of the event loop.
func (c *Console) Exit(code int) {
	c.mu.Lock()
	c.quitting = true
	c.exitCode = code
	c.mu.Unlock()
	// Wake the loop if it is blocked in PollEvent.
	c.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// ExitCode returns the code passed to Exit.
func (c *Console) ExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitCode
}

// TapeRows returns the rendered tape rows since the last reset.
func (c *Console) TapeRows() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.tapeRows))
	copy(out, c.tapeRows)
	return out
}

// Lines returns the command output log.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Run drives the event loop until Exit is called or the screen is
// finalized. Each input line is dispatched synchronously; the next
// event is not read until the command completes.
func (c *Console) Run() error {
	c.draw()
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			if c.done() {
				return nil
			}
		case *tcell.EventResize:
			c.screen.Sync()
			c.draw()
		case *tcell.EventKey:
			c.handleKey(ev)
			if c.done() {
				return nil
			}
		}
	}
}

func (c *Console) done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quitting
}

func (c *Console) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		c.Exit(0)
	case tcell.KeyEnter:
		c.submitLine()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		c.mu.Lock()
		if len(c.input) > 0 {
			c.input = c.input[:len(c.input)-1]
		}
		c.mu.Unlock()
		c.draw()
	case tcell.KeyRune:
		c.mu.Lock()
		c.input = append(c.input, ev.Rune())
		c.mu.Unlock()
		c.draw()
	}
}

func (c *Console) submitLine() {
	c.mu.Lock()
	line := string(c.input)
	c.input = nil
	handler := c.handler
	c.mu.Unlock()

	c.OutputLine(prompt + line)

	if handler == nil {
		c.draw()
		return
	}
	// Empty input still dispatches: the tree answers it with the help
	// listing for the current level.
	if _, err := handler(strings.Fields(line)); err != nil {
		c.OutputLine("Error: " + err.Error())
	}
	c.draw()
}

// draw repaints the whole screen: output pane left, tape pane right,
// suggestions pane above the input line.
func (c *Console) draw() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen.Clear()
	width, height := c.screen.Size()
	if width == 0 || height == 0 {
		return
	}

	outputWidth := width
	if c.showTape && c.tapeWidth > 0 && c.tapeWidth+1 < width {
		outputWidth = width - c.tapeWidth - 1
		c.drawTape(outputWidth, width, height)
	}

	inputRow := height - 1
	outputBottom := inputRow
	if c.showSuggestions && len(c.suggestions) > 0 {
		outputBottom = c.drawSuggestions(outputWidth, inputRow)
	}

	c.drawTail(c.lines, 0, outputWidth, 0, outputBottom)

	c.setText(0, inputRow, prompt+string(c.input), c.style)
	c.screen.ShowCursor(runewidth.StringWidth(prompt+string(c.input)), inputRow)
	c.screen.Show()
}

// drawTape renders the separator and the newest tape rows.
func (c *Console) drawTape(sepCol, width, height int) {
	for y := 0; y < height; y++ {
		c.screen.SetContent(sepCol, y, tcell.RuneVLine, nil, c.style)
	}
	c.drawTail(c.tapeRows, sepCol+1, width, 0, height)
}

// drawSuggestions renders the suggestions pane above the input line and
// returns the first row it occupies.
func (c *Console) drawSuggestions(width, inputRow int) int {
	rows := len(c.suggestions)
	if rows > maxSuggestionRows {
		rows = maxSuggestionRows
	}
	top := inputRow - rows - 1
	if top < 0 {
		top = 0
	}
	for x := 0; x < width; x++ {
		c.screen.SetContent(x, top, tcell.RuneHLine, nil, c.style)
	}
	for i := 0; i < rows; i++ {
		c.setText(0, top+1+i, c.suggestions[len(c.suggestions)-rows+i], c.style)
	}
	return top
}

// drawTail renders the newest lines that fit between top and bottom.
func (c *Console) drawTail(lines []string, left, right, top, bottom int) {
	visible := bottom - top
	if visible <= 0 {
		return
	}
	start := 0
	if len(lines) > visible {
		start = len(lines) - visible
	}
	for i, line := range lines[start:] {
		c.setTextClipped(left, top+i, right, line, c.style)
	}
}

func (c *Console) setText(x, y int, text string, style tcell.Style) {
	width, _ := c.screen.Size()
	c.setTextClipped(x, y, width, text, style)
}

func (c *Console) setTextClipped(x, y, right int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > right {
			break
		}
		c.screen.SetContent(col, y, r, nil, style)
		col += w
	}
}
