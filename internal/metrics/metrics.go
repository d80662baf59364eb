package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK        = "ok"
	ResultMalformed = "malformed"
	ResultError     = "error"
)

type Metrics struct {
	Registry       *prometheus.Registry
	Payloads       *prometheus.CounterVec
	PayloadSize    prometheus.Histogram
	MirrorFailures prometheus.Counter
}

// New builds the receiver metrics on their own registry together with the go and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Payloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_receiver_payloads_total",
			Help: "Webhook requests handled, by result.",
		}, []string{"result"}),
		PayloadSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "webhook_receiver_payload_size_bytes",
			Help:    "Size of accepted webhook bodies.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
		MirrorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webhook_receiver_mirror_failures_total",
			Help: "Payloads that could not be published to the mirror.",
		}),
	}
	m.Registry.MustRegister(collectors.NewGoCollector())
	m.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m.Registry.MustRegister(m.Payloads, m.PayloadSize, m.MirrorFailures)
	return m
}

func (m *Metrics) ObserveResult(result string) {
	m.Payloads.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
