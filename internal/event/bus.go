// Package event provides the in-process event bus that connects the
// engine, the tape, and the console: stroke events and engine config
// changes are published here and delivered synchronously, one event at a
// time, in subscription order.
package event

import (
	"errors"
	"sync"
)

// Topic identifies an event stream on the bus.
type Topic string

// Topics published by the console host.
const (
	// TopicStroke carries StrokePayload events from the engine each
	// time a stroke is decoded.
	TopicStroke Topic = "steno.stroke"

	// TopicConfigChanged carries ConfigChangedPayload events whenever
	// the engine config receives a partial update.
	TopicConfigChanged Topic = "engine.config.changed"

	// TopicOutput carries OutputPayload events when engine output is
	// enabled or disabled.
	TopicOutput Topic = "engine.output"

	// TopicMachineReset carries MachineResetPayload events when a
	// machine reconnect is requested.
	TopicMachineReset Topic = "engine.machine.reset"
)

// Bus errors.
var (
	// ErrNilHandler indicates a subscription with no handler.
	ErrNilHandler = errors.New("event: handler is nil")

	// ErrEmptyTopic indicates a subscription or publish with no topic.
	ErrEmptyTopic = errors.New("event: topic is empty")
)

// Handler receives a published event payload.
type Handler func(payload any)

// PanicHandler is called when a subscriber panics. The bus recovers the
// panic and continues delivery to remaining subscribers.
type PanicHandler func(topic Topic, recovered any)

type subscriberEntry struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously to subscribers in subscription order.
// Delivery happens on the publisher's goroutine; the console's cooperative
// single-threaded model means handlers never observe concurrent mutation.
type Bus struct {
	mu           sync.RWMutex
	subs         map[Topic][]subscriberEntry
	nextID       uint64
	panicHandler PanicHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriberEntry)}
}

// SetPanicHandler installs a handler for subscriber panics. A nil handler
// silently swallows panics.
func (b *Bus) SetPanicHandler(h PanicHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.panicHandler = h
}

// Subscribe registers a handler for a topic. Handlers for the same topic
// run in subscription order.
func (b *Bus) Subscribe(topic Topic, h Handler) (*Subscription, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if h == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriberEntry{id: id, handler: h})
	return &Subscription{bus: b, topic: topic, id: id}, nil
}

// Publish delivers the payload to every subscriber of the topic, in
// subscription order, on the calling goroutine. Subscriber panics are
// recovered and reported to the panic handler.
func (b *Bus) Publish(topic Topic, payload any) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	b.mu.RLock()
	entries := make([]subscriberEntry, len(b.subs[topic]))
	copy(entries, b.subs[topic])
	panicHandler := b.panicHandler
	b.mu.RUnlock()

	for _, e := range entries {
		b.deliver(topic, e, payload, panicHandler)
	}
	return nil
}

func (b *Bus) deliver(topic Topic, e subscriberEntry, payload any, ph PanicHandler) {
	defer func() {
		if r := recover(); r != nil && ph != nil {
			ph(topic, r)
		}
	}()
	e.handler(payload)
}

// SubscriberCount returns the number of subscribers on a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Subscription is a handle to an active topic subscription.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    uint64
	once  sync.Once
}

// Unsubscribe removes the subscription from the bus. Safe to call more
// than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		entries := s.bus.subs[s.topic]
		for i, e := range entries {
			if e.id == s.id {
				s.bus.subs[s.topic] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
	})
}
