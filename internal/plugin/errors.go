package plugin

import "errors"

// Registry errors.
var (
	// ErrDuplicateName indicates two plugins in one category share a name.
	ErrDuplicateName = errors.New("plugin: duplicate plugin name in category")

	// ErrNotFound indicates no plugin with the requested name exists.
	ErrNotFound = errors.New("plugin: plugin not found")

	// ErrUnknownCategory indicates a category other than machine/system.
	ErrUnknownCategory = errors.New("plugin: unknown category")

	// ErrMissingName indicates a manifest without a name.
	ErrMissingName = errors.New("plugin: manifest name is required")

	// ErrInvalidManifest indicates a manifest that fails validation.
	ErrInvalidManifest = errors.New("plugin: invalid manifest")
)
