package command

import (
	"fmt"
	"strings"

	"github.com/dshills/stenoterm/internal/plugin"
)

// Registry is the slice of the plugin registry the tree builders read.
type Registry interface {
	ListPlugins(category string) ([]plugin.Info, error)
	Machine(name string) (*plugin.Machine, error)
}

// NewMachineCommand builds the machine subtree: one setter child per
// installed machine plugin, in registry order.
func NewMachineCommand(output Output, reg Registry, eng Engine) (*Node, error) {
	infos, err := reg.ListPlugins(plugin.CategoryMachine)
	if err != nil {
		return nil, err
	}
	children := make([]*Node, 0, len(infos))
	for _, info := range infos {
		setter, err := newMachineSetter(output, info.Name, reg, eng)
		if err != nil {
			return nil, err
		}
		children = append(children, setter)
	}
	return NewBranch("machine", "machine commands", output, children...), nil
}

// newMachineSetter selects a machine and carries the machine's options
// subtree, so "machine <name>" switches machines while
// "machine <name> options ..." inspects and sets its options.
func newMachineSetter(output Output, name string, reg Registry, eng Engine) (*Node, error) {
	options, err := newMachineOptions(output, name, reg, eng)
	if err != nil {
		return nil, err
	}
	setter := NewLeaf(name, "sets machine to "+name, output,
		func(words []string) (bool, error) {
			output("Setting machine to " + name)
			eng.ApplyConfig(map[string]any{"machine_type": name})
			return false, nil
		})
	return setter.addChildren(options), nil
}

// newMachineOptions builds the options subtree for one machine: a
// setter leaf per declared option, its accessors pre-bound against the
// engine's live config.
func newMachineOptions(output Output, machineName string, reg Registry, eng Engine) (*Node, error) {
	machine, err := reg.Machine(machineName)
	if err != nil {
		return nil, err
	}
	children := make([]*Node, 0, len(machine.Options))
	for _, opt := range machine.OptionInfos() {
		opt := opt
		getter := func() string { return opt.Getter(eng.Config(), opt.Name) }
		setter := func(value string) { opt.Setter(eng.Config(), opt.Name, value) }
		children = append(children, newOptionSetter(output, opt, getter, setter))
	}
	return NewBranch("options", "machine options", output, children...), nil
}

func newOptionSetter(output Output, opt plugin.OptionInfo, getter func() string, setter func(string)) *Node {
	description := fmt.Sprintf("setting: %s - default: %s", opt.Name, opt.Default)
	return NewLeaf(opt.Name, description, output,
		func(words []string) (bool, error) {
			if len(words) == 0 {
				return false, nil
			}
			output("current: " + getter())
			setter(strings.Join(words, ""))
			return true, nil
		})
}

// NewSystemCommand builds the system subtree: one setter child per
// installed system plugin, in registry order.
func NewSystemCommand(output Output, reg Registry, eng Engine) (*Node, error) {
	infos, err := reg.ListPlugins(plugin.CategorySystem)
	if err != nil {
		return nil, err
	}
	children := make([]*Node, 0, len(infos))
	for _, info := range infos {
		name := info.Name
		children = append(children, NewLeaf(name, "sets system to "+name, output,
			func(words []string) (bool, error) {
				output("Setting system to " + name)
				eng.ApplyConfig(map[string]any{"system_name": name})
				return true, nil
			}))
	}
	return NewBranch("system", "system commands", output, children...), nil
}
