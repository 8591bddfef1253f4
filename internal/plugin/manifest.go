package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ManifestFile is the file name that marks a plugin directory.
const ManifestFile = "manifest.json"

// Manifest describes an installed plugin.
type Manifest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`

	// Main is the definition file for system plugins, relative to the
	// plugin directory. Lua (.lua) system definitions are supported.
	Main string `json:"main"`

	// Options declares configurable options for machine plugins.
	Options []ManifestOption `json:"options"`

	// path is the plugin directory, set during discovery.
	path string
}

// ManifestOption declares one machine option.
type ManifestOption struct {
	Name    string `json:"name"`
	Default string `json:"default"`
}

// Validate checks required manifest fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	switch m.Category {
	case CategoryMachine:
		if m.Main != "" {
			return fmt.Errorf("%w: machine plugin %s must not declare main", ErrInvalidManifest, m.Name)
		}
	case CategorySystem:
		if m.Main == "" {
			return fmt.Errorf("%w: system plugin %s must declare main", ErrInvalidManifest, m.Name)
		}
		if filepath.Ext(m.Main) != ".lua" {
			return fmt.Errorf("%w: system plugin %s main must be a .lua file", ErrInvalidManifest, m.Name)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCategory, m.Category)
	}
	return nil
}

// LoadManifest reads and validates a manifest from a plugin directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("plugin: reading manifest in %s: %w", dir, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("plugin: parsing manifest in %s: %w", dir, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.path = dir
	return &m, nil
}

// Discover scans a directory for plugin subdirectories carrying a
// manifest and registers each one. Subdirectories are visited in sorted
// name order so registration order is deterministic. A missing root
// directory is not an error; a broken plugin is.
func (r *Registry) Discover(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("plugin: reading plugin directory %s: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		dir := filepath.Join(root, name)
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
			continue
		}
		manifest, err := LoadManifest(dir)
		if err != nil {
			return err
		}
		if err := r.registerFromManifest(manifest); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) registerFromManifest(m *Manifest) error {
	switch m.Category {
	case CategoryMachine:
		machine := &Machine{Name: m.Name}
		for _, opt := range m.Options {
			machine.Options = append(machine.Options, StringOption(opt.Name, opt.Default))
		}
		return r.RegisterMachine(machine)
	case CategorySystem:
		sys, err := LoadSystemLua(filepath.Join(m.path, m.Main))
		if err != nil {
			return err
		}
		if sys.Name != m.Name {
			return fmt.Errorf("%w: manifest name %q does not match system NAME %q",
				ErrInvalidManifest, m.Name, sys.Name)
		}
		return r.RegisterSystem(&SystemPlugin{Name: m.Name, Definition: sys})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCategory, m.Category)
	}
}
