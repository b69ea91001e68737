package emitter

import (
	"sync/atomic"

	"github.com/google/uuid"
)

type (
	// Handler is the function invoked on dispatch. It receives the emitter that
	// dispatched the event followed by the arguments given to Emit.
	Handler[K comparable, V any] func(e *EventEmitter[K, V], args ...V)

	// Listener is a registrable handle around a Handler. Handles are compared by
	// pointer: registering the same *Listener twice for one event is a no-op, while
	// two handles built from the same function are distinct listeners.
	Listener[K comparable, V any] struct {
		id      string
		handler Handler[K, V]

		// once wrappers only
		origin *Listener[K, V]
		fired  atomic.Bool
	}
)

// NewListener creates a new listener handle for fn.
func NewListener[K comparable, V any](fn Handler[K, V]) *Listener[K, V] {
	return &Listener[K, V]{
		id:      uuid.NewString(),
		handler: fn,
	}
}

// ID returns an identifier used in logs and errors. It plays no part in equality.
func (l *Listener[K, V]) ID() string {
	return l.id
}

// Once reports whether l is the self-removing wrapper created by Once or
// PrependListenerOnce.
func (l *Listener[K, V]) Once() bool {
	return l.origin != nil
}

// Origin returns the listener a once wrapper was created for, or nil.
func (l *Listener[K, V]) Origin() *Listener[K, V] {
	return l.origin
}

func (l *Listener[K, V]) call(e *EventEmitter[K, V], args []V) {
	if l.handler == nil {
		return
	}
	l.handler(e, args...)
}

// newOnceListener wraps listener so that, on its first invocation, the wrapper
// deregisters itself from event and only then calls listener. The flag keeps
// concurrent emits holding the same snapshot from firing it twice.
func newOnceListener[K comparable, V any](event K, listener *Listener[K, V]) *Listener[K, V] {
	w := &Listener[K, V]{
		id:     uuid.NewString(),
		origin: listener,
	}
	w.handler = func(e *EventEmitter[K, V], args ...V) {
		if !w.fired.CompareAndSwap(false, true) {
			return
		}
		e.RemoveListener(event, w)
		listener.call(e, args)
	}
	return w
}
