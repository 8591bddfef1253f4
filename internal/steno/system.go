package steno

import (
	"errors"
	"fmt"
)

// DefaultNumericIndicator is the key identifier appended to a stroke's
// engaged set when any engaged key is a numeral alias.
const DefaultNumericIndicator = "#"

// System validation errors.
var (
	ErrNoKeys       = errors.New("steno: system has no keys")
	ErrDuplicateKey = errors.New("steno: duplicate key in system")
	ErrUnknownKey   = errors.New("steno: number mapping refers to unknown key")
)

// System is a named steno key layout definition.
type System struct {
	// Name identifies the system (e.g. "english-stenotype").
	Name string

	// Keys is the canonical ordered key set. Key identifiers carry a
	// positional hyphen ("S-" left bank, "-T" right bank) where the
	// layout distinguishes sides.
	Keys []string

	// Numbers maps a letter key to its numeral alias, engaged when the
	// number bar is held (e.g. "S-" -> "1-").
	Numbers map[string]string

	// NumericIndicator is the key representing the number bar. Empty
	// means DefaultNumericIndicator.
	NumericIndicator string
}

// Validate checks structural invariants: at least one key, no duplicate
// keys, and number mappings that refer to declared keys.
func (s *System) Validate() error {
	if len(s.Keys) == 0 {
		return fmt.Errorf("%w: %s", ErrNoKeys, s.Name)
	}
	seen := make(map[string]struct{}, len(s.Keys))
	for _, k := range s.Keys {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %s in %s", ErrDuplicateKey, k, s.Name)
		}
		seen[k] = struct{}{}
	}
	for k := range s.Numbers {
		if _, ok := seen[k]; !ok {
			return fmt.Errorf("%w: %s in %s", ErrUnknownKey, k, s.Name)
		}
	}
	return nil
}

// Indicator returns the numeric indicator key for this system.
func (s *System) Indicator() string {
	if s.NumericIndicator != "" {
		return s.NumericIndicator
	}
	return DefaultNumericIndicator
}

// KeyOrder returns the key-to-position index. Numeral aliases share the
// position of the letter key they shadow, so a stroke reported with "1-"
// lands in the "S-" column.
func (s *System) KeyOrder() map[string]int {
	order := make(map[string]int, len(s.Keys)+len(s.Numbers))
	for i, k := range s.Keys {
		order[k] = i
	}
	for letter, numeral := range s.Numbers {
		if i, ok := order[letter]; ok {
			order[numeral] = i
		}
	}
	return order
}

// NumeralKeys returns the set of numeral alias identifiers.
func (s *System) NumeralKeys() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Numbers))
	for _, numeral := range s.Numbers {
		set[numeral] = struct{}{}
	}
	return set
}
