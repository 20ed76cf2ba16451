package server

import (
	"log/slog"
)

// Broadcaster fans a payload out to a registry snapshot. Send errors are
// counted and dropped; one bad recipient never aborts the loop.
type Broadcaster struct {
	registry *Registry
	metrics  *Metrics
	log      *slog.Logger
}

// NewBroadcaster creates a Broadcaster over registry.
func NewBroadcaster(registry *Registry, metrics *Metrics, log *slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Broadcaster{registry: registry, metrics: metrics, log: log}
}

// Broadcast sends payload to every open connection except exclude (nil for
// none) and returns how many sends succeeded. The snapshot is taken once;
// writes happen after the registry lock has been released.
//
// Writes run on the caller's goroutine, usually the sender's read loop. A
// recipient that has stopped reading holds the caller for at most the write
// timeout (NEOCHAT_WRITE_TIMEOUT); after that its connection is broken and
// later sends to it fail immediately.
func (b *Broadcaster) Broadcast(payload string, exclude Conn) int {
	recipients := b.registry.Recipients(exclude)
	b.metrics.BroadcastRecipients.Observe(float64(len(recipients)))

	delivered := 0
	for _, c := range recipients {
		if b.Unicast(c, payload) {
			delivered++
		}
	}
	return delivered
}

// Unicast sends payload to a single connection and reports success.
func (b *Broadcaster) Unicast(c Conn, payload string) bool {
	if err := c.Send(payload); err != nil {
		b.metrics.SendFailures.Inc()
		b.log.Debug("send failed", "conn", c.ID(), "err", err)
		return false
	}
	return true
}
