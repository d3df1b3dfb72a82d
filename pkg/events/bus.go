package events

import (
	"sort"
	"sync"
)

// Event names published by the EW core.
const (
	ChaffDeployed   = "chaff.deployed"
	ChaffExpired    = "chaff.expired"
	IFFResponse     = "iff.response"
	ECCMUpdated     = "eccm.updated"
	JammingScan     = "jamming.scan"
	RadarRegistered = "radar.registered"
)

// Event is a named notification with an arbitrary payload.
type Event struct {
	Name   string
	Fields map[string]interface{}
}

// Handler receives published events. Handlers must not block; the bus
// invokes them synchronously on the publisher's goroutine.
type Handler func(Event)

// SubscriptionID identifies a registered handler so it can be removed later.
type SubscriptionID int

type subscription struct {
	id       SubscriptionID
	name     string
	priority int
	handler  Handler
}

// Bus is an ordered handler registry. Handlers for an event run in
// ascending priority order; ties run in subscription order. Subscriptions
// have stable IDs so they can be removed while other handlers stay put.
type Bus struct {
	mu     sync.Mutex
	nextID SubscriptionID
	subs   []subscription
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{nextID: 1}
}

// Subscribe registers a handler for the named event. An empty name
// subscribes to every event.
func (b *Bus) Subscribe(name string, priority int, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, name: name, priority: priority, handler: handler})
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	return id
}

// Unsubscribe removes a handler by its subscription ID. Unknown IDs are
// ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every matching handler in priority order.
// The subscriber list is snapshotted first so handlers may subscribe or
// unsubscribe during delivery.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.name == "" || s.name == ev.Name {
			matched = append(matched, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range matched {
		h(ev)
	}
}
