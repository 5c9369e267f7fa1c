package ontology

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusOK         = "ok"
	statusError      = "error"
	statusUndetected = "undetected"
)

// Metrics holds the Prometheus collectors for parsing and extraction.
// A nil *Metrics records nothing.
type Metrics struct {
	parsesTotal       *prometheus.CounterVec   // By format and status (ok/error/undetected)
	parseDuration     *prometheus.HistogramVec // By format
	entitiesExtracted *prometheus.CounterVec   // By kind (class/property/shape/restriction/prefix)
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		parsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontology",
			Name:      "parses_total",
			Help:      "Total number of documents handed to the dispatcher",
		}, []string{"format", "status"}),

		parseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ontology",
			Name:      "parse_duration_seconds",
			Help:      "Time spent in format handlers in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"format"}),

		entitiesExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontology",
			Name:      "entities_extracted_total",
			Help:      "Total number of entities produced by the extractors",
		}, []string{"kind"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.parsesTotal, m.parseDuration, m.entitiesExtracted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeParse(format, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if format == "" {
		format = "unknown"
	}
	m.parsesTotal.WithLabelValues(format, status).Inc()
	if status != statusUndetected {
		m.parseDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) addEntities(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.entitiesExtracted.WithLabelValues(kind).Add(float64(n))
}
