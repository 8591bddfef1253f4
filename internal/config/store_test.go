package config_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/stenoterm/internal/config"
)

func TestSetCreatesSectionImplicitly(t *testing.T) {
	store := config.NewStore()

	if _, ok := store.Get("Console UI", "fg"); ok {
		t.Fatal("unexpected value in empty store")
	}

	store.Set("Console UI", "fg", "green")

	v, ok := store.GetString("Console UI", "fg")
	if !ok || v != "green" {
		t.Errorf("GetString = %q, %v; want green, true", v, ok)
	}
	if len(store.Sections()) != 1 {
		t.Errorf("expected 1 section, got %v", store.Sections())
	}
}

func TestGetStringTypeMismatch(t *testing.T) {
	store := config.NewStore()
	store.Set("Machine", "timeout", 5)

	if _, ok := store.GetString("Machine", "timeout"); ok {
		t.Error("expected ok=false for non-string value")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "console.toml")

	store := config.NewStore(config.WithPath(path))
	store.Set("Console UI", "fg", "ansiblue")
	store.Set("Machine", "port", "/dev/ttyACM0")
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := config.NewStore(config.WithPath(path))
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v, _ := loaded.GetString("Console UI", "fg"); v != "ansiblue" {
		t.Errorf("fg = %q, want ansiblue", v)
	}
	if v, _ := loaded.GetString("Machine", "port"); v != "/dev/ttyACM0" {
		t.Errorf("port = %q, want /dev/ttyACM0", v)
	}
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	store := config.NewStore(config.WithPath(filepath.Join(t.TempDir(), "absent.toml")))
	if err := store.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
}

func TestNotifierSectionScope(t *testing.T) {
	store := config.NewStore()

	var uiChanges, allChanges []config.Change
	store.Notifier().ObserveSection("Console UI", func(c config.Change) {
		uiChanges = append(uiChanges, c)
	})
	store.Notifier().Observe(func(c config.Change) {
		allChanges = append(allChanges, c)
	})

	store.Set("Console UI", "fg", "red")
	store.Set("Machine", "port", "COM3")

	if len(uiChanges) != 1 {
		t.Fatalf("section observer got %d changes, want 1", len(uiChanges))
	}
	if uiChanges[0].Key != "fg" || uiChanges[0].NewValue != "red" {
		t.Errorf("unexpected change: %+v", uiChanges[0])
	}
	if len(allChanges) != 2 {
		t.Errorf("global observer got %d changes, want 2", len(allChanges))
	}
}

func TestNotifierRemove(t *testing.T) {
	store := config.NewStore()

	calls := 0
	handle := store.Notifier().Observe(func(config.Change) { calls++ })
	store.Set("A", "k", 1)
	store.Notifier().Remove(handle)
	store.Set("A", "k", 2)

	if calls != 1 {
		t.Errorf("expected 1 call after Remove, got %d", calls)
	}
}

func TestWatcherReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.toml")
	if err := os.WriteFile(path, []byte("[\"Console UI\"]\nfg = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := config.NewStore(config.WithPath(path))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	reloaded := make(chan error, 1)
	w, err := config.NewWatcher(store,
		config.WithDebounce(20*time.Millisecond),
		config.WithReloadFunc(func(err error) { reloaded <- err }),
	)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[\"Console UI\"]\nfg = \"blue\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if v, _ := store.GetString("Console UI", "fg"); v != "blue" {
		t.Errorf("fg after reload = %q, want blue", v)
	}
}

func TestWatcherDebounceCollapsesRapidWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.toml")
	if err := os.WriteFile(path, []byte("[\"Console UI\"]\nfg = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := config.NewStore(config.WithPath(path))
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var reloads atomic.Int64
	first := make(chan struct{}, 1)
	w, err := config.NewWatcher(store,
		config.WithDebounce(100*time.Millisecond),
		config.WithReloadFunc(func(error) {
			if reloads.Add(1) == 1 {
				first <- struct{}{}
			}
		}),
	)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Several writes inside one debounce window, like an editor save.
	for _, fg := range []string{"green", "blue", "yellow"} {
		contents := "[\"Console UI\"]\nfg = \"" + fg + "\"\n"
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	// Enough settle time for any extra pending timers to have fired.
	time.Sleep(300 * time.Millisecond)
	if got := reloads.Load(); got != 1 {
		t.Errorf("got %d reloads for one burst of writes, want 1", got)
	}
	if v, _ := store.GetString("Console UI", "fg"); v != "yellow" {
		t.Errorf("fg after reload = %q, want the last write", v)
	}
}

func TestWatcherRequiresPath(t *testing.T) {
	if _, err := config.NewWatcher(config.NewStore()); err != config.ErrNoPath {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}
