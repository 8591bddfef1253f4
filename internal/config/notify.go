package config

import "sync"

// ChangeType distinguishes single-key updates from full reloads.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the whole store was replaced from disk.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one store modification. Section and Key are empty for
// reload changes.
type Change struct {
	Type     ChangeType
	Section  string
	Key      string
	OldValue any
	NewValue any
}

// Observer is called for store changes.
type Observer func(change Change)

// Notifier fans store changes out to observers. Observers registered for
// a section receive only that section's changes plus reloads; global
// observers receive everything.
type Notifier struct {
	mu       sync.RWMutex
	global   map[uint64]Observer
	sections map[string]map[uint64]Observer
	nextID   uint64
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		global:   make(map[uint64]Observer),
		sections: make(map[string]map[uint64]Observer),
	}
}

// ObserverHandle identifies a registered observer for removal.
type ObserverHandle struct {
	id      uint64
	section string
	global  bool
}

// Observe registers a global observer.
func (n *Notifier) Observe(obs Observer) ObserverHandle {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.global[n.nextID] = obs
	return ObserverHandle{id: n.nextID, global: true}
}

// ObserveSection registers an observer for one section.
func (n *Notifier) ObserveSection(section string, obs Observer) ObserverHandle {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	if n.sections[section] == nil {
		n.sections[section] = make(map[uint64]Observer)
	}
	n.sections[section][n.nextID] = obs
	return ObserverHandle{id: n.nextID, section: section}
}

// Remove unregisters an observer.
func (n *Notifier) Remove(h ObserverHandle) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if h.global {
		delete(n.global, h.id)
		return
	}
	if obs := n.sections[h.section]; obs != nil {
		delete(obs, h.id)
	}
}

// Notify delivers a change to matching observers synchronously.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.global))
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	if change.Type == ChangeReload {
		for _, section := range n.sections {
			for _, obs := range section {
				observers = append(observers, obs)
			}
		}
	} else if section := n.sections[change.Section]; section != nil {
		for _, obs := range section {
			observers = append(observers, obs)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}
