// Package config implements the console's sectioned key/value store.
//
// The store backs user-facing settings such as the console foreground
// color ("Console UI"/"fg"). Sections are created implicitly on first
// write. The store persists to a TOML file and can watch that file for
// external edits, republishing changes through its notifier.
package config
