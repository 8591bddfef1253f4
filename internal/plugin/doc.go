// Package plugin implements the console's plugin registry.
//
// Two categories exist: "machine" (input device drivers, each declaring
// its configurable options) and "system" (steno key layouts). Built-in
// plugins are registered at startup; additional plugins are discovered
// from directories carrying a manifest.json, and system layouts may be
// defined in Lua data files evaluated in a sandboxed interpreter.
//
// The registry is a snapshot consumer: the command tree built from it
// does not observe later registrations and must be rebuilt to do so.
package plugin
