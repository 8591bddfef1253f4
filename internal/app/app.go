package app

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stenoterm/internal/command"
	"github.com/dshills/stenoterm/internal/config"
	"github.com/dshills/stenoterm/internal/console"
	"github.com/dshills/stenoterm/internal/engine"
	"github.com/dshills/stenoterm/internal/event"
	"github.com/dshills/stenoterm/internal/plugin"
	"github.com/dshills/stenoterm/internal/tape"
)

// SectionEngine is the config store section holding persisted engine
// settings, mirrored into the live engine when the store changes.
const SectionEngine = "Engine"

// Application wires the engine, plugin registry, config store, stroke
// tape, and console UI together and manages their lifecycle.
type Application struct {
	mu sync.RWMutex

	logger *Logger

	// Core infrastructure
	bus           *event.Bus
	store         *config.Store
	watcher       *config.Watcher
	storeObserver config.ObserverHandle
	observing     bool

	// Engine side
	registry *plugin.Registry
	engine   *engine.Engine
	tape     *tape.Tape

	// UI side
	console *console.Console
	tree    *command.Node

	subscriptions []*event.Subscription

	running atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty means
	// the per-user default location.
	ConfigPath string

	// PluginDir is the directory scanned for plugin manifests. Empty
	// means the per-user default location; a missing directory is not
	// an error.
	PluginDir string

	// Watch reloads the configuration file when it changes on disk.
	Watch bool

	// Debug enables debug logging.
	Debug bool

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput overrides the log destination. Nil means stderr.
	LogOutput *Logger
}

// New creates a new Application with the given options. The console is
// attached separately with SetScreen once a terminal is available.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		return nil, WrapError(err, "initializing application")
	}

	return app, nil
}

// bootstrap initializes the screen-independent components in
// dependency order.
func (app *Application) bootstrap() error {
	// 1. Logger
	if app.opts.LogOutput != nil {
		app.logger = app.opts.LogOutput
	} else {
		cfg := DefaultLoggerConfig()
		cfg.Level = ParseLogLevel(app.opts.LogLevel)
		if app.opts.Debug {
			cfg.Level = LogLevelDebug
		}
		app.logger = NewLogger(cfg)
	}

	// 2. Event bus
	app.bus = event.NewBus()
	app.bus.SetPanicHandler(func(topic event.Topic, value any) {
		app.logger.WithField("topic", string(topic)).Error("subscriber panic: %v", value)
	})

	// 3. Config store
	path := app.opts.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}
	app.store = config.NewStore(config.WithPath(path))
	if err := app.store.Load(); err != nil {
		// A corrupt config file is non-fatal, defaults apply.
		app.logger.WithComponent("config").Warn("load failed: %v", err)
	}

	// 4. Plugin registry: built-ins first, then discovered plugins.
	app.registry = plugin.NewDefaultRegistry()
	pluginDir := app.opts.PluginDir
	if pluginDir == "" {
		pluginDir = DefaultPluginDir()
	}
	if pluginDir != "" {
		if err := app.registry.Discover(pluginDir); err != nil {
			return NewComponentError("plugins", "discover", err)
		}
	}

	// 5. Engine
	app.engine = engine.New(app.bus, engine.WithInitialConfig(defaultEngineConfig()))

	// 6. Tape renderer, bound to the configured system.
	app.tape = tape.New(app.registry,
		tape.WithResetFunc(app.onTapeReset),
		tape.WithRowFunc(app.onTapeRow),
	)
	if err := app.tape.OnConfigChanged(app.engine.Config()); err != nil {
		return NewComponentError("tape", "initial layout", err)
	}

	return nil
}

// SetScreen attaches the terminal screen, builds the console and the
// command tree, and wires the event subscriptions. Must be called
// before Run.
func (app *Application) SetScreen(screen tcell.Screen) error {
	if err := app.attachScreen(screen); err != nil {
		return err
	}
	// Applied outside the lock: the sync publishes on the bus and the
	// tape callbacks read app state.
	app.syncSystemFromStore()
	return nil
}

func (app *Application) attachScreen(screen tcell.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	showTape, _ := app.engine.ConfigValue(engine.KeyShowStrokeDisplay)
	showSugg, _ := app.engine.ConfigValue(engine.KeyShowSuggestionsDisplay)

	app.console = console.New(screen,
		console.WithTapeShown(showTape == true),
		console.WithSuggestionsShown(showSugg == true),
	)
	app.console.TapeReset(app.tape.RowWidth())

	if err := app.rebuildTreeLocked(); err != nil {
		return err
	}
	app.console.SetCommandHandler(func(words []string) (bool, error) {
		return app.Tree().Handle(words)
	})

	app.restoreStyle()

	if err := app.wireSubscriptions(); err != nil {
		return err
	}

	app.storeObserver = app.store.Notifier().ObserveSection(SectionEngine, app.onEngineSectionChange)
	app.observing = true

	if app.opts.Watch && app.store.Path() != "" {
		watcher, err := config.NewWatcher(app.store,
			config.WithReloadFunc(app.onConfigReload),
		)
		if err != nil {
			// Live reload is best effort.
			app.logger.WithComponent("config").Warn("watcher unavailable: %v", err)
		} else {
			app.watcher = watcher
		}
	}

	return nil
}

// Tree returns the current command tree snapshot.
func (app *Application) Tree() *command.Node {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.tree
}

// RebuildTree rebuilds the command tree from the current registry
// state. Needed after plugins are added so new setter leaves appear.
func (app *Application) RebuildTree() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.rebuildTreeLocked()
}

func (app *Application) rebuildTreeLocked() error {
	tree, err := command.BuildTree(command.Dependencies{
		Output:            app.console.OutputLine,
		Engine:            app.engine,
		Registry:          app.registry,
		Store:             app.store,
		UI:                app.console,
		ToggleTape:        app.console.ToggleTape,
		ToggleSuggestions: app.console.ToggleSuggestions,
		ResetMachine:      app.resetMachine,
	})
	if err != nil {
		return NewComponentError("commands", "build tree", err)
	}
	app.tree = tree
	return nil
}

// restoreStyle applies the persisted foreground color, if any.
func (app *Application) restoreStyle() {
	color, ok := app.store.GetString(command.SectionConsoleUI, command.KeyForeground)
	if !ok || color == "" {
		return
	}
	if err := app.console.ApplyStyle(color); err != nil {
		app.logger.WithComponent("console").Warn("stored color %q rejected: %v", color, err)
	}
}

func (app *Application) resetMachine() {
	attemptID := app.engine.ResetMachine()
	app.logger.WithField("attempt_id", attemptID).Debug("machine reset requested")
}

// onConfigReload runs after the watcher reloads the config file. The
// reload itself notifies store observers, so engine settings are synced
// by onEngineSectionChange; only the style needs re-applying here.
func (app *Application) onConfigReload(err error) {
	if err != nil {
		app.logger.WithComponent("config").Warn("reload failed: %v", err)
		return
	}
	app.mu.RLock()
	c := app.console
	app.mu.RUnlock()
	if c != nil {
		app.restoreStyle()
	}
}

// onEngineSectionChange mirrors store updates to the engine section into
// the live engine config. Runs for both single-key sets and full
// reloads.
func (app *Application) onEngineSectionChange(change config.Change) {
	switch change.Type {
	case config.ChangeReload:
		app.syncSystemFromStore()
	case config.ChangeSet:
		if change.Key == engine.KeySystemName {
			app.syncSystemFromStore()
		}
	}
}

// syncSystemFromStore pushes the stored system name through the engine
// so the change republishes on the bus and the tape rebuilds its
// layout. A name matching the live config is left alone.
func (app *Application) syncSystemFromStore() {
	name, ok := app.store.GetString(SectionEngine, engine.KeySystemName)
	if !ok || name == "" {
		return
	}
	if current, _ := app.engine.ConfigValue(engine.KeySystemName); current == name {
		return
	}
	app.engine.ApplyConfig(map[string]any{engine.KeySystemName: name})
}

func (app *Application) onTapeReset(rowWidth int) {
	app.mu.RLock()
	c := app.console
	app.mu.RUnlock()
	if c != nil {
		c.TapeReset(rowWidth)
	}
}

func (app *Application) onTapeRow(row string) {
	app.mu.RLock()
	c := app.console
	app.mu.RUnlock()
	if c != nil {
		c.TapeAppend(row)
	}
}

// Run drives the console event loop until exit is requested. A normal
// exit returns ErrQuit so callers can distinguish it from failures.
func (app *Application) Run() error {
	app.mu.RLock()
	c := app.console
	app.mu.RUnlock()
	if c == nil {
		return NewComponentError("console", "run", ErrInitialization)
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := c.Run(); err != nil {
		return WrapError(err, "console event loop")
	}
	return ErrQuit
}

// Engine returns the engine, for feeding strokes from a machine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Tape returns the stroke tape renderer.
func (app *Application) Tape() *tape.Tape {
	return app.tape
}

// Store returns the config store.
func (app *Application) Store() *config.Store {
	return app.store
}

// Shutdown stops background components and persists the config store.
// Safe to call more than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.WithComponent("config").Warn("watcher close: %v", err)
		}
		app.watcher = nil
	}

	if app.observing {
		app.store.Notifier().Remove(app.storeObserver)
		app.observing = false
	}

	for _, sub := range app.subscriptions {
		sub.Unsubscribe()
	}
	app.subscriptions = nil

	if err := app.store.Save(); err != nil {
		app.logger.WithComponent("config").Error("save failed: %v", err)
	}
}
