package app

import (
	"os"
	"path/filepath"

	"github.com/dshills/stenoterm/internal/engine"
)

// DefaultConfigPath returns the per-user configuration file path.
func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "stenoterm", "config.toml")
}

// DefaultPluginDir returns the per-user plugin directory.
func DefaultPluginDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "stenoterm", "plugins")
}

// defaultEngineConfig is the engine configuration used before any
// console command changes it.
func defaultEngineConfig() map[string]any {
	return map[string]any{
		engine.KeySystemName:             "english-stenotype",
		engine.KeyMachineType:            "keyboard",
		engine.KeyShowStrokeDisplay:      true,
		engine.KeyShowSuggestionsDisplay: false,
	}
}
