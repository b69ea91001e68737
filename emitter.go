package emitter

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

type (
	// Notifier is the producer side of an emitter.
	Notifier[K comparable, V any] interface {
		Emit(event K, args ...V) bool
	}

	// Stats is a point-in-time view of an emitter's bookkeeping.
	Stats struct {
		Events       int
		Listeners    int
		MaxListeners int
		// EventsOverMax counts events holding more listeners than MaxListeners.
		EventsOverMax int
		Emits         uint64
		Dispatches    uint64
	}
)

var _ Notifier[string, any] = (*EventEmitter[string, any])(nil)

// EventEmitter maps events (of type K) to ordered listener sequences and
// dispatches synchronously to them. Listeners receive arguments of type V.
//
// All methods are safe for concurrent use. Dispatch runs on a copy of the
// listener sequence taken when Emit starts and with no lock held, so listeners
// may register, remove or emit on the same emitter; such changes apply from
// the next Emit on.
type EventEmitter[K comparable, V any] struct {
	listeners     map[K][]*Listener[K, V]
	listenerCount int
	maxListeners  int
	warned        map[K]struct{}
	logger        Logger
	lock          sync.RWMutex

	emits      atomic.Uint64
	dispatches atomic.Uint64
}

// NewEventEmitter creates a new EventEmitter and returns a pointer to it.
func NewEventEmitter[K comparable, V any](opts ...Option) *EventEmitter[K, V] {
	o := newOptions(opts...)

	return &EventEmitter[K, V]{
		listeners:    make(map[K][]*Listener[K, V]),
		maxListeners: o.maxListeners,
		warned:       make(map[K]struct{}),
		logger:       o.logger.WithField("type", "event_emitter"),
	}
}

// RegisterEvent makes sure event has an entry, possibly with no listeners.
func (e *EventEmitter[K, V]) RegisterEvent(event K) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.registerEvent(event)
}

// init makes the zero value usable. Callers hold the write lock.
func (e *EventEmitter[K, V]) init() {
	if e.listeners == nil {
		e.listeners = make(map[K][]*Listener[K, V])
	}
	if e.warned == nil {
		e.warned = make(map[K]struct{})
	}
	if e.logger == nil {
		e.logger = NoopLogger
	}
}

func (e *EventEmitter[K, V]) registerEvent(event K) {
	e.init()
	if _, found := e.listeners[event]; !found {
		e.listeners[event] = []*Listener[K, V]{}
	}
}

// On appends listener to the listeners of event, unless it is already registered there.
func (e *EventEmitter[K, V]) On(event K, listener *Listener[K, V]) *EventEmitter[K, V] {
	e.add(event, listener, false)
	return e
}

// AddListener is an alias for On.
func (e *EventEmitter[K, V]) AddListener(event K, listener *Listener[K, V]) *EventEmitter[K, V] {
	return e.On(event, listener)
}

// PrependListener is like On but puts listener first in dispatch order.
func (e *EventEmitter[K, V]) PrependListener(event K, listener *Listener[K, V]) *EventEmitter[K, V] {
	e.add(event, listener, true)
	return e
}

// Once registers a wrapper that removes itself and then calls listener, so
// listener runs for at most one Emit.
//
// The wrapper, not listener, is what gets stored: RemoveListener(event, listener)
// does not cancel a pending once registration. Use Listeners and Origin to find
// the wrapper if it has to be removed before firing.
func (e *EventEmitter[K, V]) Once(event K, listener *Listener[K, V]) *EventEmitter[K, V] {
	if listener == nil {
		return e
	}
	e.add(event, newOnceListener(event, listener), false)
	return e
}

// PrependListenerOnce is like Once but puts the wrapper first in dispatch order.
func (e *EventEmitter[K, V]) PrependListenerOnce(event K, listener *Listener[K, V]) *EventEmitter[K, V] {
	if listener == nil {
		return e
	}
	e.add(event, newOnceListener(event, listener), true)
	return e
}

func (e *EventEmitter[K, V]) add(event K, listener *Listener[K, V], prepend bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.registerEvent(event)

	if listener == nil || slices.Index(e.listeners[event], listener) >= 0 {
		return
	}

	if prepend {
		e.listeners[event] = slices.Insert(e.listeners[event], 0, listener)
	} else {
		e.listeners[event] = append(e.listeners[event], listener)
	}
	e.listenerCount++

	e.logger.WithField("event", event).
		WithField("listener", listener.ID()).
		Debugf("listener registered, %d on event", len(e.listeners[event]))

	e.checkMaxListeners(event)
}

// checkMaxListeners warns once per event when it grows past the advisory cap.
func (e *EventEmitter[K, V]) checkMaxListeners(event K) {
	n := len(e.listeners[event])
	if e.maxListeners <= 0 || n <= e.maxListeners {
		return
	}
	if _, done := e.warned[event]; done {
		return
	}
	e.warned[event] = struct{}{}

	e.logger.WithField("event", event).
		Warnf("possible listener leak: %d listeners registered, max is %d. Use SetMaxListeners to raise it",
			n, e.maxListeners)
}

// Emit calls every listener registered for event, in order, with the emitter
// followed by args. It returns false when event has no listeners.
//
// A panicking listener is not recovered: the panic reaches the caller and the
// listeners after it do not run. See TryEmit.
func (e *EventEmitter[K, V]) Emit(event K, args ...V) bool {
	snapshot, found := e.snapshot(event)
	if !found {
		return false
	}

	e.emits.Add(1)
	for _, listener := range snapshot {
		e.dispatches.Add(1)
		listener.call(e, args)
	}

	return true
}

// TryEmit dispatches like Emit, but a listener panic is recovered and returned
// as an *ErrDispatchAborted wrapping ErrListenerPanic. Listeners after the
// panicking one do not run.
func (e *EventEmitter[K, V]) TryEmit(event K, args ...V) (bool, error) {
	snapshot, found := e.snapshot(event)
	if !found {
		return false, nil
	}

	e.emits.Add(1)
	for _, listener := range snapshot {
		e.dispatches.Add(1)
		if err := e.tryCall(event, listener, args); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (e *EventEmitter[K, V]) tryCall(event K, listener *Listener[K, V], args []V) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log().WithField("event", event).
				WithField("listener", listener.ID()).
				Errorf("listener panicked: %v", r)
			err = wrapErrDispatchAborted(event, listener.ID(), r)
		}
	}()

	listener.call(e, args)
	return nil
}

func (e *EventEmitter[K, V]) log() Logger {
	e.lock.RLock()
	defer e.lock.RUnlock()

	if e.logger == nil {
		return NoopLogger
	}
	return e.logger
}

func (e *EventEmitter[K, V]) snapshot(event K) ([]*Listener[K, V], bool) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	listeners, found := e.listeners[event]
	if !found || len(listeners) == 0 {
		return nil, false
	}

	return slices.Clone(listeners), true
}

// RemoveListener removes listener from event. Unknown events and listeners are ignored.
func (e *EventEmitter[K, V]) RemoveListener(event K, listener *Listener[K, V]) *EventEmitter[K, V] {
	e.lock.Lock()
	defer e.lock.Unlock()

	listeners, found := e.listeners[event]
	if !found {
		return e
	}

	idx := slices.Index(listeners, listener)
	if idx < 0 {
		return e
	}

	e.init()
	// Emptied entries stay in the map, HasEvent keeps reporting them.
	e.listeners[event] = slices.Delete(listeners, idx, idx+1)
	e.listenerCount--

	if len(e.listeners[event]) <= e.maxListeners {
		delete(e.warned, event)
	}

	e.logger.WithField("event", event).
		WithField("listener", listener.ID()).
		Debugf("listener removed, %d on event", len(e.listeners[event]))

	return e
}

// RemoveAllListeners drops the given events together with their listeners, or
// every event when called with no arguments. Unlike RemoveListener, the event
// entries themselves are deleted.
func (e *EventEmitter[K, V]) RemoveAllListeners(events ...K) *EventEmitter[K, V] {
	e.lock.Lock()
	defer e.lock.Unlock()

	if len(events) == 0 {
		e.listeners = make(map[K][]*Listener[K, V])
		e.warned = make(map[K]struct{})
		e.listenerCount = 0
		return e
	}

	for _, event := range events {
		listeners, found := e.listeners[event]
		if !found {
			continue
		}
		e.listenerCount -= len(listeners)
		delete(e.listeners, event)
		if e.warned != nil {
			delete(e.warned, event)
		}
	}

	return e
}

// Close removes all events and listeners to prevent memory leaks.
func (e *EventEmitter[K, V]) Close() {
	e.RemoveAllListeners()
}

// HasEvent reports whether event has an entry, even an empty one.
func (e *EventEmitter[K, V]) HasEvent(event K) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	_, found := e.listeners[event]
	return found
}

// HasListener reports whether listener is registered for event.
func (e *EventEmitter[K, V]) HasListener(event K, listener *Listener[K, V]) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return slices.Index(e.listeners[event], listener) >= 0
}

// Listeners returns a copy of the listeners of event in dispatch order.
func (e *EventEmitter[K, V]) Listeners(event K) []*Listener[K, V] {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return slices.Clone(e.listeners[event])
}

// Events returns the registered event names in no particular order.
func (e *EventEmitter[K, V]) Events() []K {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return slices.Collect(maps.Keys(e.listeners))
}

// ListenerCount returns the number of listeners across all events.
func (e *EventEmitter[K, V]) ListenerCount() int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.listenerCount
}

// ListenerCountFor returns the number of listeners of event.
func (e *EventEmitter[K, V]) ListenerCountFor(event K) int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.listeners[event])
}

func (e *EventEmitter[K, V]) MaxListeners() int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.maxListeners
}

// SetMaxListeners changes the advisory per-event cap. It is never enforced;
// going past it only logs a warning and shows up in Stats.
func (e *EventEmitter[K, V]) SetMaxListeners(n int) *EventEmitter[K, V] {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.maxListeners = n
	return e
}

func (e *EventEmitter[K, V]) Stats() Stats {
	e.lock.RLock()
	defer e.lock.RUnlock()

	s := Stats{
		Events:       len(e.listeners),
		Listeners:    e.listenerCount,
		MaxListeners: e.maxListeners,
		Emits:        e.emits.Load(),
		Dispatches:   e.dispatches.Load(),
	}
	if e.maxListeners > 0 {
		for _, listeners := range e.listeners {
			if len(listeners) > e.maxListeners {
				s.EventsOverMax++
			}
		}
	}

	return s
}
