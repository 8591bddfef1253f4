// Package engine models the steno host engine the console extends. The
// translation algorithm and device I/O live outside this process; Engine
// holds the narrow surface the console needs: the live config mapping,
// the output flag, a suggestion source, stroke emission, and machine
// reset. State changes are published on the event bus so the tape and
// the console panes stay current.
package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/stenoterm/internal/event"
	"github.com/dshills/stenoterm/internal/steno"
)

// Engine config keys the console writes.
const (
	KeyShowStrokeDisplay      = "show_stroke_display"
	KeyShowSuggestionsDisplay = "show_suggestions_display"
	KeySystemName             = "system_name"
	KeyMachineType            = "machine_type"
)

// SuggestionSource answers dictionary suggestion queries.
type SuggestionSource interface {
	Suggestions(text string) []steno.Suggestion
}

// Engine is the host engine collaborator.
type Engine struct {
	mu          sync.RWMutex
	cfg         map[string]any
	output      bool
	suggestions SuggestionSource
	bus         *event.Bus
}

// Option configures an Engine.
type Option func(*Engine)

// WithSuggestionSource sets the dictionary suggestion source.
func WithSuggestionSource(src SuggestionSource) Option {
	return func(e *Engine) {
		e.suggestions = src
	}
}

// WithInitialConfig seeds the engine config.
func WithInitialConfig(cfg map[string]any) Option {
	return func(e *Engine) {
		for k, v := range cfg {
			e.cfg[k] = v
		}
	}
}

// New creates an engine publishing to the given bus.
func New(bus *event.Bus, opts ...Option) *Engine {
	e := &Engine{
		cfg: make(map[string]any),
		bus: bus,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the live config mapping. Machine option accessors read
// and write it directly; the cooperative event loop is the only writer.
func (e *Engine) Config() map[string]any {
	return e.cfg
}

// ConfigValue returns one config value.
func (e *Engine) ConfigValue(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.cfg[key]
	return v, ok
}

// ApplyConfig applies a partial config update and publishes the changed
// keys on the bus.
func (e *Engine) ApplyConfig(update map[string]any) {
	if len(update) == 0 {
		return
	}
	e.mu.Lock()
	for k, v := range update {
		e.cfg[k] = v
	}
	e.mu.Unlock()

	e.bus.Publish(event.TopicConfigChanged, event.ConfigChangedPayload{Update: update})
}

// Output reports whether engine output is enabled.
func (e *Engine) Output() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.output
}

// SetOutput enables or disables engine output and publishes the change.
func (e *Engine) SetOutput(enabled bool) {
	e.mu.Lock()
	e.output = enabled
	e.mu.Unlock()

	e.bus.Publish(event.TopicOutput, event.OutputPayload{Enabled: enabled})
}

// GetSuggestions returns dictionary suggestions for translation text.
// A missing source yields no suggestions.
func (e *Engine) GetSuggestions(text string) []steno.Suggestion {
	if e.suggestions == nil {
		return nil
	}
	return e.suggestions.Suggestions(text)
}

// EmitStroke publishes a decoded stroke. Machines call this; tests and
// the replay machine use it to drive the tape.
func (e *Engine) EmitStroke(stroke steno.Stroke) {
	e.bus.Publish(event.TopicStroke, event.StrokePayload{Stroke: stroke})
}

// ResetMachine requests a reconnect of the current machine and returns
// the attempt ID included in the published event.
func (e *Engine) ResetMachine() string {
	e.mu.RLock()
	machine, _ := e.cfg[KeyMachineType].(string)
	e.mu.RUnlock()

	attemptID := uuid.New().String()
	e.bus.Publish(event.TopicMachineReset, event.MachineResetPayload{
		AttemptID: attemptID,
		Machine:   machine,
	})
	return attemptID
}
