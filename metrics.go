package arango

import "github.com/prometheus/client_golang/prometheus"

// outcome labels the "outcome" dimension of the dispatched-tasks counter.
type outcome string

const (
	outcomeSuccess     outcome = "success"
	outcomeDomainError outcome = "domain_error"
	outcomeHTTPError   outcome = "http_error"
	outcomeTransport   outcome = "transport_error"
	outcomeRedirect    outcome = "redirect"
)

// metricsCollector tracks task outcomes and in-flight concurrency. A
// Dispatcher always has one; when no registerer is configured via
// WithMetricsCollector, metrics are registered into a private registry
// that nothing ever scrapes, so the dispatcher never depends on (or
// pollutes) the default global prometheus registry.
type metricsCollector struct {
	dispatched  *prometheus.CounterVec
	activeTasks prometheus.Gauge
}

func newMetricsCollector(registerer prometheus.Registerer) *metricsCollector {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	collector := &metricsCollector{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arango_dispatcher_tasks_total",
			Help: "Total number of dispatched tasks by outcome.",
		}, []string{"outcome"}),
		activeTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arango_dispatcher_active_tasks",
			Help: "Number of tasks currently in transport.",
		}),
	}
	registerer.MustRegister(collector.dispatched, collector.activeTasks)
	return collector
}

func (m *metricsCollector) recordOutcome(o outcome) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(string(o)).Inc()
}

func (m *metricsCollector) setActiveTasks(n int) {
	if m == nil {
		return
	}
	m.activeTasks.Set(float64(n))
}
