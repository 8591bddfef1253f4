package command

import (
	"fmt"
	"strings"

	"github.com/dshills/stenoterm/internal/steno"
)

// Config store location for the console foreground color.
const (
	SectionConsoleUI = "Console UI"
	KeyForeground    = "fg"
)

// Engine is the slice of the host engine the command tree drives.
type Engine interface {
	GetSuggestions(text string) []steno.Suggestion
	ApplyConfig(update map[string]any)
	Config() map[string]any
	Output() bool
	SetOutput(enabled bool)
}

// ConfigStore persists console settings.
type ConfigStore interface {
	Set(section, key string, value any)
}

// UIHost is the slice of the console UI the command tree drives.
type UIHost interface {
	// ApplyStyle applies a foreground color spec to the live UI and
	// fails on an invalid spec.
	ApplyStyle(colorSpec string) error

	// Exit requests host application termination.
	Exit(code int)
}

// Toggler flips a UI pane on or off and returns the new state.
type Toggler func() bool

// Resetter triggers a machine reconnect.
type Resetter func()

// NewColorCommand sets the console foreground color. The spec is
// validated by applying it to the live UI first; only a successfully
// applied color is persisted, so a bad spec never corrupts the store.
func NewColorCommand(output Output, ui UIHost, store ConfigStore) *Node {
	return NewLeaf("color", "sets foreground color of console (web colors or hexes should work)", output,
		func(words []string) (bool, error) {
			if len(words) == 0 {
				return false, nil
			}
			color := words[0]
			if err := ui.ApplyStyle(color); err != nil {
				return false, err
			}
			store.Set(SectionConsoleUI, KeyForeground, color)
			return true, nil
		})
}

// NewExitCommand requests host termination. Arguments are ignored.
func NewExitCommand(output Output, ui UIHost) *Node {
	return NewLeaf("exit", "exits the console", output,
		func(words []string) (bool, error) {
			ui.Exit(0)
			return true, nil
		})
}

// NewLookupCommand looks up translation text in the current
// dictionaries. The text is unescaped first so entries can be typed
// exactly as they appear in a dictionary file.
func NewLookupCommand(output Output, eng Engine) *Node {
	return NewLeaf("lookup", "looks up words in current dictionaries", output,
		func(words []string) (bool, error) {
			if len(words) == 0 {
				return false, nil
			}
			text := steno.UnescapeTranslation(strings.Join(words, " "))
			formatted := steno.FormatSuggestions(eng.GetSuggestions(text))
			if formatted != "" {
				output(formatted)
			} else {
				output(fmt.Sprintf("'%s' not found", text))
			}
			return true, nil
		})
}

// NewToggleTapeCommand flips the paper tape pane and records the new
// state in the engine config.
func NewToggleTapeCommand(output Output, toggler Toggler, eng Engine) *Node {
	return NewLeaf("tape", "turns paper tape pane on/off", output,
		func(words []string) (bool, error) {
			show := toggler()
			eng.ApplyConfig(map[string]any{"show_stroke_display": show})
			output(fmt.Sprintf("Show tape: %t", show))
			return true, nil
		})
}

// NewToggleSuggestionsCommand flips the suggestions pane and records the
// new state in the engine config.
func NewToggleSuggestionsCommand(output Output, toggler Toggler, eng Engine) *Node {
	return NewLeaf("suggestions", "turns suggestions pane on/off", output,
		func(words []string) (bool, error) {
			show := toggler()
			eng.ApplyConfig(map[string]any{"show_suggestions_display": show})
			output(fmt.Sprintf("Show suggestions: %t", show))
			return true, nil
		})
}

// NewResetMachineCommand reconnects the current machine.
func NewResetMachineCommand(output Output, resetter Resetter) *Node {
	return NewLeaf("reset", "reconnects current machine", output,
		func(words []string) (bool, error) {
			output("Resetting machine...")
			resetter()
			return true, nil
		})
}

// NewToggleOutputCommand toggles engine output on/off.
func NewToggleOutputCommand(output Output, eng Engine) *Node {
	return NewLeaf("output", "toggles steno output on/off", output,
		func(words []string) (bool, error) {
			eng.SetOutput(!eng.Output())
			state := "Disabled"
			if eng.Output() {
				state = "Enabled"
			}
			output("Output: " + state)
			return true, nil
		})
}
