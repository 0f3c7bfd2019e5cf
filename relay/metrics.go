package relay

import (
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK         = "ok"
	OutcomeIncomplete = "incomplete"

	stageLookup = "lookup"
	stageFetch  = "fetch"
	stageStream = "stream"
)

// Metrics exports relay counters to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	requests      *promclient.CounterVec
	stageDuration *promclient.HistogramVec
	relayedBytes  promclient.Counter
}

func NewMetrics(namespace string, reg promclient.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "reelrelay"
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}
	metrics := &Metrics{
		requests: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Relay requests by final outcome or failure kind.",
		}, []string{"outcome"}),
		stageDuration: promclient.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Latency of each relay stage.",
			Buckets:   promclient.DefBuckets,
		}, []string{"stage"}),
		relayedBytes: promclient.NewCounter(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "relayed_bytes_total",
			Help:      "Media bytes read from upstream and handed to callers.",
		}),
	}
	for _, collector := range []promclient.Collector{metrics.requests, metrics.stageDuration, metrics.relayedBytes} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register relay metrics: %w", err)
		}
	}
	return metrics, nil
}

func (m *Metrics) RecordFailure(kind Kind) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) RecordStage(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (m *Metrics) RecordStream(outcome string, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.stageDuration.WithLabelValues(stageStream).Observe(duration.Seconds())
	m.relayedBytes.Add(float64(bytes))
}
