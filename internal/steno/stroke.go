package steno

import "strings"

// Stroke represents one atomic input event: the set of steno keys engaged
// simultaneously, in the order reported by the machine.
type Stroke struct {
	// Keys are the engaged key identifiers (e.g. "S-", "-T", "1-").
	Keys []string
}

// NewStroke creates a stroke from the given key identifiers.
// The slice is copied; callers may reuse their backing array.
func NewStroke(keys ...string) Stroke {
	k := make([]string, len(keys))
	copy(k, keys)
	return Stroke{Keys: k}
}

// IsEmpty returns true if no keys are engaged.
func (s Stroke) IsEmpty() bool {
	return len(s.Keys) == 0
}

// Contains returns true if the stroke engages the given key.
func (s Stroke) Contains(key string) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// String returns the engaged keys joined with spaces.
func (s Stroke) String() string {
	return strings.Join(s.Keys, " ")
}
