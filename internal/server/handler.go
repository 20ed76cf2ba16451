// Package server drives the per-connection lifecycle: unnamed on open, named
// after the first frame, gone on close.
package server

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// Stats is a point-in-time view of the relay.
type Stats struct {
	Uptime  time.Duration
	Open    int
	Named   int
	Relayed uint64
}

// Handler reacts to transport events and turns them into registry updates
// and broadcasts. Its methods are safe for concurrent use; events for one
// connection must be delivered in order.
type Handler struct {
	registry    *Registry
	broadcaster *Broadcaster
	format      *Formatter
	metrics     *Metrics
	log         *slog.Logger

	started time.Time
	relayed atomic.Uint64
}

// NewHandler wires a Handler with a fresh registry.
func NewHandler(log *slog.Logger, metrics *Metrics, clock Clock) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	registry := NewRegistry(WithCountObserver(metrics.observeCounts))
	return &Handler{
		registry:    registry,
		broadcaster: NewBroadcaster(registry, metrics, log),
		format:      NewFormatter(clock),
		metrics:     metrics,
		log:         log,
		started:     time.Now(),
	}
}

// Opened registers a connection that completed its handshake.
func (h *Handler) Opened(c Conn) {
	h.registry.Open(c)
	h.log.Info("new connection from "+c.RemoteAddr(), "conn", c.ID(), "remote", c.RemoteAddr())
}

// Message handles one inbound text frame. The first frame names the
// connection; every later frame is relayed as chat.
func (h *Handler) Message(c Conn, payload string) {
	assignment, err := h.registry.AssignName(c, payload)
	if err != nil {
		if errors.Is(err, ErrUnknownConn) {
			h.log.Debug("frame from unregistered connection dropped", "conn", c.ID())
		}
		return
	}

	if assignment.Named {
		h.chat(c, assignment.Existing, payload)
		return
	}
	h.join(c, payload, assignment.Online)
}

func (h *Handler) join(c Conn, name string, online int) {
	h.log.Info(name+" joined", "conn", c.ID(), "remote", c.RemoteAddr(), "online", online)

	h.broadcaster.Broadcast(h.format.Join(name), c)
	h.metrics.FramesTotal.WithLabelValues(KindJoin).Inc()

	h.broadcaster.Unicast(c, h.format.Welcome(online))
	h.metrics.FramesTotal.WithLabelValues(KindWelcome).Inc()
}

func (h *Handler) chat(c Conn, name, body string) {
	h.log.Info(name+": "+body, "conn", c.ID(), "remote", c.RemoteAddr())
	h.broadcaster.Broadcast(h.format.Chat(name, body), c)
	h.metrics.FramesTotal.WithLabelValues(KindChat).Inc()
	h.relayed.Add(1)
}

// Closed removes the connection. Named connections announce their departure
// to everybody still open; unnamed ones leave silently.
func (h *Handler) Closed(c Conn) {
	name, named := h.registry.Remove(c)
	if !named {
		return
	}

	h.log.Info(name+" left", "conn", c.ID(), "remote", c.RemoteAddr())
	h.broadcaster.Broadcast(h.format.Leave(name), nil)
	h.metrics.FramesTotal.WithLabelValues(KindLeave).Inc()
}

// Failed is called for connections whose handshake never completed. Load
// balancers and tunnel health checks do this constantly, so it is a no-op.
func (h *Handler) Failed(string) {}

// Announce broadcasts an operator line to every open connection and returns
// the number of recipients that accepted it.
func (h *Handler) Announce(body string) int {
	delivered := h.broadcaster.Broadcast(h.format.Operator(body), nil)
	h.metrics.FramesTotal.WithLabelValues(KindOperator).Inc()
	h.relayed.Add(1)
	return delivered
}

// Members lists named connections ordered by connect time.
func (h *Handler) Members() []Member {
	return h.registry.Members()
}

// Stats reports uptime, registry sizes and the number of relayed lines.
func (h *Handler) Stats() Stats {
	open, named := h.registry.Counts()
	return Stats{
		Uptime:  time.Since(h.started),
		Open:    open,
		Named:   named,
		Relayed: h.relayed.Load(),
	}
}
