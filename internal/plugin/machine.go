package plugin

import "fmt"

// Values is the live engine config mapping that machine option accessors
// read from and write to.
type Values map[string]any

// OptionGetter reads an option's current value from the engine config.
type OptionGetter func(cfg Values, name string) string

// OptionSetter writes an option value into the engine config.
type OptionSetter func(cfg Values, name string, value string)

// OptionInfo describes one configurable machine option together with the
// accessors used to read and write it on the engine's config.
type OptionInfo struct {
	Name    string
	Default string
	Getter  OptionGetter
	Setter  OptionSetter
}

// Machine is an installed machine plugin: an input device driver
// descriptor with its configurable options.
type Machine struct {
	Name    string
	Options []OptionInfo
}

// OptionInfos returns the machine's options in declaration order.
func (m *Machine) OptionInfos() []OptionInfo {
	return m.Options
}

// StringOption builds an OptionInfo with the default string accessors:
// the getter returns the config value (or the declared default when the
// key is unset), the setter stores the string verbatim.
func StringOption(name, def string) OptionInfo {
	return OptionInfo{
		Name:    name,
		Default: def,
		Getter: func(cfg Values, name string) string {
			if v, ok := cfg[name]; ok {
				return fmt.Sprint(v)
			}
			return def
		},
		Setter: func(cfg Values, name string, value string) {
			cfg[name] = value
		},
	}
}
