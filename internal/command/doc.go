// Package command implements the console command tree: a recursive,
// dynamically composed tree of named commands dispatched against
// tokenized input lines.
//
// Branch nodes route by exact child-name match and describe themselves
// when invoked bare; leaf nodes carry one concrete action against the
// engine, the config store, or the UI host. The tree is built once from
// the current plugin registry state and is read-only afterwards: plugins
// installed later are picked up only by an explicit rebuild.
package command
