package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"verdict/internal/decision"
)

var (
	deskDesc = prometheus.NewDesc(
		"verdict_desks",
		"Live desks by status",
		[]string{"status"},
		nil,
	)
)

// DeskCounter reports desks per status. *decision.Registry implements it.
type DeskCounter interface {
	Counts() map[decision.Status]int
}

// DeskCollector is a custom Prometheus collector that reads desk counts
// from the registry on each scrape.
type DeskCollector struct {
	desks DeskCounter
}

// Describe sends the metric descriptor to the channel.
func (c *DeskCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- deskDesc
}

// Collect emits one gauge per status.
func (c *DeskCollector) Collect(ch chan<- prometheus.Metric) {
	for status, n := range c.desks.Counts() {
		ch <- prometheus.MustNewConstMetric(
			deskDesc,
			prometheus.GaugeValue,
			float64(n),
			status.String(),
		)
	}
}

// Recorder counts resolved invocations. It implements decision.Observer.
type Recorder struct {
	decisions *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// New registers the recorder's metrics and the desk collector on reg.
func New(reg prometheus.Registerer, desks DeskCounter) *Recorder {
	r := &Recorder{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "verdict_decisions_total",
			Help: "Total resolved invocations by outcome",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verdict_inference_duration_seconds",
			Help:    "Inference call latency by outcome",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		}, []string{"outcome"}),
	}
	reg.MustRegister(r.decisions, r.latency, &DeskCollector{desks: desks})
	return r
}

// ObserveDecision records one resolved invocation.
func (r *Recorder) ObserveDecision(st decision.State, elapsed time.Duration) {
	outcome := st.Status().String()
	r.decisions.WithLabelValues(outcome).Inc()
	r.latency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
