package event

import "github.com/dshills/stenoterm/internal/steno"

// StrokePayload is published on TopicStroke for each decoded stroke.
type StrokePayload struct {
	Stroke steno.Stroke
}

// ConfigChangedPayload is published on TopicConfigChanged after a partial
// engine config update has been applied. Update holds only the changed
// keys and their new values.
type ConfigChangedPayload struct {
	Update map[string]any
}

// OutputPayload is published on TopicOutput when engine output is toggled.
type OutputPayload struct {
	Enabled bool
}

// MachineResetPayload is published on TopicMachineReset when a machine
// reconnect is requested. AttemptID correlates log lines for one attempt.
type MachineResetPayload struct {
	AttemptID string
	Machine   string
}
