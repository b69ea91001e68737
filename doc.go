// Package emitter implements an in-process, synchronous event emitter.
//
// Listeners are registered against an event name and are called, in
// registration order, every time that event is emitted:
//
//	e := emitter.NewEventEmitter[string, any]()
//	greet := emitter.NewListener(func(e *emitter.EventEmitter[string, any], args ...any) {
//	    fmt.Println("hello", args...)
//	})
//	e.On("greet", greet)
//	e.Emit("greet", "world") // hello world
//
// # Listener identity
//
// Listeners are handles created with NewListener and compared by pointer.
// Registering the same handle twice for one event has no effect, and
// RemoveListener removes exactly the handle it is given. Once and
// PrependListenerOnce store a self-removing wrapper instead of the handle, so
// removing the original handle does not cancel them.
//
// # Dispatch
//
// Emit works on a copy of the listener sequence taken when it starts and holds
// no lock while listeners run. Listeners added or removed during a dispatch
// take effect on the next Emit. A panicking listener aborts the dispatch and
// the panic reaches the Emit caller; TryEmit returns it as an error instead.
//
// # Max listeners
//
// MaxListeners is advisory. Going past it logs one warning per event and is
// reported by Stats and Collector, but registration always succeeds.
package emitter
