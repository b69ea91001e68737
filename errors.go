package emitter

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrListenerPanic       = errors.New("listener panicked during dispatch")
	ErrInvalidMaxListeners = errors.New("max listeners must not be negative")
)

// ErrDispatchAborted is returned by TryEmit when a listener panics. It carries the
// event and listener that stopped the pass together with the recovered value.
type ErrDispatchAborted struct {
	err      error
	event    any
	listener string
	value    any
}

func (e ErrDispatchAborted) Error() string {
	return fmt.Sprintf("dispatch of %v aborted by listener %s: %s: %v",
		e.event, e.listener, e.err, e.value)
}

func (e ErrDispatchAborted) Unwrap() error { return e.err }

// Value returns whatever the listener passed to panic.
func (e ErrDispatchAborted) Value() any { return e.value }

func wrapErrDispatchAborted(event any, listener string, value any) *ErrDispatchAborted {
	err := ErrListenerPanic
	if cause, ok := value.(error); ok {
		err = errors.Wrap(ErrListenerPanic, cause.Error())
	}
	return &ErrDispatchAborted{
		err:      err,
		event:    event,
		listener: listener,
		value:    value,
	}
}
