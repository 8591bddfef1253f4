package plugin

import (
	"fmt"

	"github.com/dshills/stenoterm/internal/steno"
)

// Plugin categories.
const (
	CategoryMachine = "machine"
	CategorySystem  = "system"
)

// Info is the minimal descriptor returned by listing.
type Info struct {
	Name     string
	Category string
}

// Registry holds installed machine and system plugins. Registration
// order is preserved and is the enumeration order seen by listing, so
// the command tree mirrors it.
type Registry struct {
	machines    []*Machine
	systems     []*SystemPlugin
	machineByID map[string]*Machine
	systemByID  map[string]*SystemPlugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		machineByID: make(map[string]*Machine),
		systemByID:  make(map[string]*SystemPlugin),
	}
}

// RegisterMachine adds a machine plugin. Names are unique per category;
// a duplicate fails fast rather than shadowing.
func (r *Registry) RegisterMachine(m *Machine) error {
	if m.Name == "" {
		return ErrMissingName
	}
	if _, exists := r.machineByID[m.Name]; exists {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateName, CategoryMachine, m.Name)
	}
	r.machines = append(r.machines, m)
	r.machineByID[m.Name] = m
	return nil
}

// RegisterSystem adds a system plugin after validating its definition.
func (r *Registry) RegisterSystem(p *SystemPlugin) error {
	if p.Name == "" {
		return ErrMissingName
	}
	if _, exists := r.systemByID[p.Name]; exists {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateName, CategorySystem, p.Name)
	}
	if err := p.Definition.Validate(); err != nil {
		return err
	}
	r.systems = append(r.systems, p)
	r.systemByID[p.Name] = p
	return nil
}

// ListPlugins returns descriptors for one category in registration order.
func (r *Registry) ListPlugins(category string) ([]Info, error) {
	switch category {
	case CategoryMachine:
		infos := make([]Info, 0, len(r.machines))
		for _, m := range r.machines {
			infos = append(infos, Info{Name: m.Name, Category: CategoryMachine})
		}
		return infos, nil
	case CategorySystem:
		infos := make([]Info, 0, len(r.systems))
		for _, s := range r.systems {
			infos = append(infos, Info{Name: s.Name, Category: CategorySystem})
		}
		return infos, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
}

// Machine returns the machine plugin with the given name.
func (r *Registry) Machine(name string) (*Machine, error) {
	m, ok := r.machineByID[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, CategoryMachine, name)
	}
	return m, nil
}

// SystemPlugin returns the system plugin with the given name.
func (r *Registry) SystemPlugin(name string) (*SystemPlugin, error) {
	s, ok := r.systemByID[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, CategorySystem, name)
	}
	return s, nil
}

// System returns the system definition with the given name. This is the
// tape's SystemSource.
func (r *Registry) System(name string) (*steno.System, error) {
	p, err := r.SystemPlugin(name)
	if err != nil {
		return nil, err
	}
	return p.Definition, nil
}

// SystemPlugin is a registered steno system layout.
type SystemPlugin struct {
	Name       string
	Definition *steno.System
}
