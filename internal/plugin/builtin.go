package plugin

import "github.com/dshills/stenoterm/internal/steno"

// NewDefaultRegistry returns a registry preloaded with the built-in
// plugins: the English Stenotype system plus descriptors for the
// keyboard and replay machines, so machine selection and option
// configuration have real entries. Device I/O lives in the host engine.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Built-in names are unique; registration cannot fail.
	_ = r.RegisterSystem(&SystemPlugin{
		Name:       "english-stenotype",
		Definition: steno.EnglishStenotype(),
	})
	_ = r.RegisterMachine(&Machine{
		Name: "keyboard",
		Options: []OptionInfo{
			StringOption("arpeggiate", "false"),
			StringOption("first_up_chord_send", "false"),
		},
	})
	_ = r.RegisterMachine(&Machine{
		Name: "replay",
		Options: []OptionInfo{
			StringOption("file", ""),
			StringOption("interval_ms", "250"),
		},
	})

	return r
}
