package app

import (
	"strings"

	"github.com/dshills/stenoterm/internal/event"
	"github.com/dshills/stenoterm/internal/steno"
)

// wireSubscriptions connects engine events to the tape renderer and the
// console. Called with app.mu held, after the console exists.
func (app *Application) wireSubscriptions() error {
	subs := []struct {
		topic   event.Topic
		handler event.Handler
	}{
		{event.TopicStroke, app.handleStroke},
		{event.TopicConfigChanged, app.handleConfigChanged},
		{event.TopicOutput, app.handleOutput},
		{event.TopicMachineReset, app.handleMachineReset},
	}

	for _, s := range subs {
		sub, err := app.bus.Subscribe(s.topic, s.handler)
		if err != nil {
			return NewComponentError("events", "subscribe "+string(s.topic), err)
		}
		app.subscriptions = append(app.subscriptions, sub)
	}
	return nil
}

func (app *Application) handleStroke(payload any) {
	p, ok := payload.(event.StrokePayload)
	if !ok {
		return
	}
	// The row callback forwards to the console; a stroke arriving
	// before any layout is resolved renders nothing.
	app.tape.OnStroked(p.Stroke)
	app.showStrokeSuggestions(p.Stroke)
}

// showStrokeSuggestions refreshes the suggestions pane with entries
// whose outlines match the stroke just written.
func (app *Application) showStrokeSuggestions(stroke steno.Stroke) {
	app.mu.RLock()
	c := app.console
	app.mu.RUnlock()
	if c == nil {
		return
	}
	suggestions := app.engine.GetSuggestions(stroke.String())
	if len(suggestions) == 0 {
		return
	}
	c.ShowSuggestions(strings.Split(steno.FormatSuggestions(suggestions), "\n"))
}

func (app *Application) handleConfigChanged(payload any) {
	p, ok := payload.(event.ConfigChangedPayload)
	if !ok {
		return
	}
	if err := app.tape.OnConfigChanged(p.Update); err != nil {
		app.logger.WithComponent("tape").Error("layout update: %v", err)
	}
}

func (app *Application) handleOutput(payload any) {
	p, ok := payload.(event.OutputPayload)
	if !ok {
		return
	}
	app.logger.WithComponent("engine").Debug("output enabled: %t", p.Enabled)
}

func (app *Application) handleMachineReset(payload any) {
	p, ok := payload.(event.MachineResetPayload)
	if !ok {
		return
	}
	app.logger.WithComponent("engine").
		WithField("attempt_id", p.AttemptID).
		Info("reconnecting machine %s", p.Machine)
}
