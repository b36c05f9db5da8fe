package input

import "sync"

// Listener handles a dispatched event.
type Listener func(e *Event)

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	// AddEventListener registers fn for events of type t.
	//
	// Parameters:
	//   - t: the event type to listen for
	//   - fn: the listener
	//
	// Returns:
	//   - func(): removes the listener; safe to call more than once
	AddEventListener(t EventType, fn Listener) func()
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// Target is an in-process EventTarget. Listeners run synchronously on the dispatching goroutine
// in registration order. Registration and removal may happen from inside a listener.
type Target struct {
	mu        sync.Mutex
	listeners map[EventType][]listenerEntry
	nextID    uint64
}

var _ EventTarget = &Target{}

// NewTarget creates an empty event target.
//
// Returns:
//   - *Target: the new target
func NewTarget() *Target {
	return &Target{listeners: make(map[EventType][]listenerEntry)}
}

func (t *Target) AddEventListener(typ EventType, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.listeners[typ] = append(t.listeners[typ], listenerEntry{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.remove(typ, id) })
	}
}

func (t *Target) remove(typ EventType, id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entries := t.listeners[typ]
	for i := range entries {
		if entries[i].id == id {
			t.listeners[typ] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(t.listeners[typ]) == 0 {
		delete(t.listeners, typ)
	}
}

// Dispatch delivers e to every listener registered for e.Type at the time of the call.
//
// Parameters:
//   - e: the event to deliver
func (t *Target) Dispatch(e *Event) {
	t.mu.Lock()
	snapshot := append([]listenerEntry(nil), t.listeners[e.Type]...)
	t.mu.Unlock()

	for _, entry := range snapshot {
		entry.fn(e)
	}
}

// ListenerCount returns the number of registered listeners across all event types.
//
// Returns:
//   - int: total listener count
func (t *Target) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, entries := range t.listeners {
		n += len(entries)
	}
	return n
}
