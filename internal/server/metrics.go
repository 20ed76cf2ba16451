package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame kinds used as the "kind" label of neochat_frames_total.
const (
	KindJoin     = "join"
	KindLeave    = "leave"
	KindWelcome  = "welcome"
	KindChat     = "chat"
	KindOperator = "operator"
)

// Metrics groups the relay's Prometheus collectors.
type Metrics struct {
	ConnectionsOpen     prometheus.Gauge
	MembersNamed        prometheus.Gauge
	FramesTotal         *prometheus.CounterVec
	SendFailures        prometheus.Counter
	BroadcastRecipients prometheus.Histogram
}

// NewMetrics registers the relay collectors with reg. A nil reg yields
// collectors that are not exported anywhere, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConnectionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "neochat_connections_open",
			Help: "Number of currently open WebSocket connections",
		}),
		MembersNamed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "neochat_members_named",
			Help: "Number of connections that have sent their display name",
		}),
		FramesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "neochat_frames_total",
			Help: "Outgoing frames produced by kind",
		}, []string{"kind"}),
		SendFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "neochat_send_failures_total",
			Help: "Frames that could not be written to a recipient",
		}),
		BroadcastRecipients: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "neochat_broadcast_recipients",
			Help:    "Recipients selected per broadcast",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (m *Metrics) observeCounts(open, named int) {
	m.ConnectionsOpen.Set(float64(open))
	m.MembersNamed.Set(float64(named))
}
