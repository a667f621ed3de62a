package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	apiRequests   *prometheus.CounterVec
	starConflicts prometheus.Counter
	wsConnections prometheus.Gauge
}

func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		apiRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_requests_total",
			Help:      "Total api requests by path and status.",
		}, []string{"path", "status"}),
		starConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "star_txn_conflicts_total",
			Help:      "Star transactions that hit a serialization conflict and retried.",
		}),
		wsConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ws_connections",
			Help:      "Currently open websocket connections.",
		}),
	}
}

func (m *Metrics) CountAPIRequest(path, status string) {
	m.apiRequests.WithLabelValues(path, status).Inc()
}

func (m *Metrics) CountStarConflict() {
	m.starConflicts.Inc()
}

func (m *Metrics) WsConnect() {
	m.wsConnections.Inc()
}

func (m *Metrics) WsDisconnect() {
	m.wsConnections.Dec()
}
