// Package server adapts gorilla WebSocket connections to the relay's Conn
// interface, handling the read loop, writes and optional keep-alive pings.
package server

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents one accepted WebSocket session. Writes from the read
// loop, other connections' broadcasts and the operator console are
// serialised by writeMu; there is no outgoing queue.
type Client struct {
	conn    *websocket.Conn
	handler *Handler
	log     *slog.Logger
	id      string
	addr    string

	writeWait    time.Duration
	pingInterval time.Duration

	writeMu sync.Mutex
	closed  bool
	done    chan struct{}
}

// NewClient creates a Client for an upgraded connection.
func NewClient(conn *websocket.Conn, handler *Handler, addr string, cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if conn != nil && cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}
	return &Client{
		conn:         conn,
		handler:      handler,
		log:          log,
		id:           uuid.NewString(),
		addr:         addr,
		writeWait:    cfg.WriteTimeout,
		pingInterval: cfg.PingInterval,
		done:         make(chan struct{}),
	}
}

// ID implements Conn.
func (c *Client) ID() string { return c.id }

// RemoteAddr implements Conn.
func (c *Client) RemoteAddr() string { return c.addr }

// Send implements Conn by writing a single text frame.
func (c *Client) Send(payload string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	if c.writeWait > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
			return err
		}
	}
	return c.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

// Serve runs the connection until the peer goes away. It blocks.
func (c *Client) Serve() {
	c.handler.Opened(c)
	if c.pingInterval > 0 {
		go c.pingLoop()
	}

	c.readPump()

	c.writeMu.Lock()
	c.closed = true
	c.writeMu.Unlock()
	close(c.done)
	c.closeConnection()

	c.handler.Closed(c)
}

func (c *Client) readPump() {
	if c.pingInterval > 0 {
		c.setupReadDeadline()
	}

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		c.handler.Message(c, string(data))
	}
}

// setupReadDeadline expects a pong within two ping intervals.
func (c *Client) setupReadDeadline() {
	wait := 2 * c.pingInterval
	if err := c.conn.SetReadDeadline(time.Now().Add(wait)); err != nil {
		c.log.Debug("setting read deadline failed", "conn", c.id, "err", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wait))
	})
}

// handleReadError records why the read loop ended. Every reason is treated
// as a close by the caller.
func (c *Client) handleReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.log.Debug("frame exceeded maximum size", "conn", c.id)
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure):
		c.log.Debug("client disconnected", "conn", c.id, "err", err)
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || isExpectedCloseError(err):
		c.log.Debug("connection closed", "conn", c.id, "err", err)
	default:
		c.log.Debug("read error", "conn", c.id, "err", err)
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			var deadline time.Time
			if c.writeWait > 0 {
				deadline = time.Now().Add(c.writeWait)
			}
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.log.Debug("ping failed", "conn", c.id, "err", err)
				return
			}
		}
	}
}

// closeConnection safely closes the WebSocket connection
func (c *Client) closeConnection() {
	if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
		c.log.Debug("closing connection failed", "conn", c.id, "err", err)
	}
}
