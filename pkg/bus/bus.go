// Package bus provides the store's change notification bus: a minimal
// observer registry that lets independent consumers stay consistent with the
// shared document without polling.
//
// Notifications carry no payload — a listener must re-read whatever state it
// depends on. This is deliberate: the store's mutation surface stays simple,
// and the document is small enough that full re-reads are cheap.
package bus

import (
	"runtime/debug"
	"sync"

	"github.com/shashiranjanraj/digiteria/pkg/logger"
)

// Listener is a zero-argument callback invoked after every document save.
type Listener func()

type entry struct {
	id int
	fn Listener
}

// Bus is an ordered registry of listeners. The zero value is ready to use.
type Bus struct {
	mu      sync.Mutex
	nextID  int
	entries []entry
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns an unsubscribe function that removes
// exactly this registration. Subscribing the same function twice yields two
// independent registrations.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.entries = append(b.entries, entry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, e := range b.entries {
			if e.id == id {
				b.entries = append(b.entries[:i], b.entries[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every currently registered listener synchronously, in
// registration order. A panicking listener is logged and does not prevent
// later listeners from running.
func (b *Bus) Notify() {
	b.mu.Lock()
	current := make([]entry, len(b.entries))
	copy(current, b.entries)
	b.mu.Unlock()

	for _, e := range current {
		call(e.fn)
	}
}

func call(fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("bus: listener panicked",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
