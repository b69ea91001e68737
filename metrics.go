package emitter

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatsProvider is implemented by EventEmitter.
type StatsProvider interface {
	Stats() Stats
}

// Collector exports an emitter's Stats as Prometheus metrics.
type Collector struct {
	source StatsProvider

	events        *prometheus.Desc
	listeners     *prometheus.Desc
	maxListeners  *prometheus.Desc
	eventsOverMax *prometheus.Desc
	emits         *prometheus.Desc
	dispatches    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for source. constLabels tell several
// emitters apart when they share a registry.
func NewCollector(namespace string, source StatsProvider, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "emitter", name),
			help,
			nil,
			constLabels,
		)
	}

	return &Collector{
		source:        source,
		events:        desc("events", "Number of registered events, including empty ones"),
		listeners:     desc("listeners", "Number of registered listeners across all events"),
		maxListeners:  desc("max_listeners", "Advisory cap on listeners per event"),
		eventsOverMax: desc("events_over_max_listeners", "Number of events holding more listeners than the advisory cap"),
		emits:         desc("emits_total", "Total number of emits that reached at least one listener"),
		dispatches:    desc("dispatches_total", "Total number of listener invocations"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.events
	ch <- c.listeners
	ch <- c.maxListeners
	ch <- c.eventsOverMax
	ch <- c.emits
	ch <- c.dispatches
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.events, prometheus.GaugeValue, float64(s.Events))
	ch <- prometheus.MustNewConstMetric(c.listeners, prometheus.GaugeValue, float64(s.Listeners))
	ch <- prometheus.MustNewConstMetric(c.maxListeners, prometheus.GaugeValue, float64(s.MaxListeners))
	ch <- prometheus.MustNewConstMetric(c.eventsOverMax, prometheus.GaugeValue, float64(s.EventsOverMax))
	ch <- prometheus.MustNewConstMetric(c.emits, prometheus.CounterValue, float64(s.Emits))
	ch <- prometheus.MustNewConstMetric(c.dispatches, prometheus.CounterValue, float64(s.Dispatches))
}
