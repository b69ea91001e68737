package emitter

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	e := NewEventEmitter[string, any](WithMaxListeners(1))
	noop := func(*testEmitter, ...any) {}
	e.On("a", NewListener(noop)).On("a", NewListener(noop)).On("b", NewListener(noop))
	e.Emit("a")
	e.Emit("missing")

	c := NewCollector("test", e, nil)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	assert.Equal(t, 6, testutil.CollectAndCount(c))

	expected := `
# HELP test_emitter_dispatches_total Total number of listener invocations
# TYPE test_emitter_dispatches_total counter
test_emitter_dispatches_total 2
# HELP test_emitter_emits_total Total number of emits that reached at least one listener
# TYPE test_emitter_emits_total counter
test_emitter_emits_total 1
# HELP test_emitter_events Number of registered events, including empty ones
# TYPE test_emitter_events gauge
test_emitter_events 2
# HELP test_emitter_events_over_max_listeners Number of events holding more listeners than the advisory cap
# TYPE test_emitter_events_over_max_listeners gauge
test_emitter_events_over_max_listeners 1
# HELP test_emitter_listeners Number of registered listeners across all events
# TYPE test_emitter_listeners gauge
test_emitter_listeners 3
# HELP test_emitter_max_listeners Advisory cap on listeners per event
# TYPE test_emitter_max_listeners gauge
test_emitter_max_listeners 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestCollectorConstLabels(t *testing.T) {
	e := NewEventEmitter[string, any]()
	c := NewCollector("", e, prometheus.Labels{"emitter": "orders"})

	expected := `
# HELP emitter_max_listeners Advisory cap on listeners per event
# TYPE emitter_max_listeners gauge
emitter_max_listeners{emitter="orders"} 10
`
	assert.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "emitter_max_listeners"))
}
