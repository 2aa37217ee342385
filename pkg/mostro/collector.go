package mostro

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeNotFound = "not_found"
)

// Collector exposes submission and read outcomes as Prometheus metrics.
// Register it with a prometheus.Registerer and pass it to WithCollector.
type Collector struct {
	submissions  *prometheus.CounterVec
	confirmation *prometheus.HistogramVec
	reads        *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	return &Collector{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mostro",
			Name:      "submissions_total",
			Help:      "Transaction submissions by operation and outcome.",
		}, []string{"operation", "outcome"}),
		confirmation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mostro",
			Name:      "confirmation_seconds",
			Help:      "Time from submission until the commitment level was reached.",
			Buckets:   []float64{0.4, 0.8, 1.6, 3.2, 6.4, 12.8, 25.6},
		}, []string{"operation"}),
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mostro",
			Name:      "account_reads_total",
			Help:      "Program account reads by account kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.submissions.Describe(ch)
	c.confirmation.Describe(ch)
	c.reads.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.submissions.Collect(ch)
	c.confirmation.Collect(ch)
	c.reads.Collect(ch)
}

func (c *Collector) observeSubmission(operation, outcome string) {
	if c == nil {
		return
	}
	c.submissions.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) observeConfirmation(operation string, d time.Duration) {
	if c == nil {
		return
	}
	c.confirmation.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *Collector) observeRead(kind, outcome string) {
	if c == nil {
		return
	}
	c.reads.WithLabelValues(kind, outcome).Inc()
}
