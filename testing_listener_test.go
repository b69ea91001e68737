package emitter

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

type testEmitter = EventEmitter[string, any]

type mockHandler struct {
	mock.Mock

	tapHandle func()
}

func (m *mockHandler) Handle(e *testEmitter, args ...any) {
	if m.tapHandle != nil {
		m.tapHandle()
	}
	m.Called(append([]any{e}, args...)...)
}

func (m *mockHandler) listener() *Listener[string, any] {
	return NewListener(m.Handle)
}

// recorder appends a tag to a shared, ordered log on every call.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) listener(tag string) *Listener[string, any] {
	return NewListener(func(*testEmitter, ...any) {
		r.mu.Lock()
		r.calls = append(r.calls, tag)
		r.mu.Unlock()
	})
}

func (r *recorder) log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
