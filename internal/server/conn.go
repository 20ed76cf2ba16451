//go:generate go run go.uber.org/mock/mockgen -source=conn.go -destination=../mocks/mock_conn.go -package=mocks

// Package server defines the connection handle shared by the registry,
// the broadcaster and the transport adapter.
package server

import "strings"

// Conn is a live client connection as seen by the relay. Implementations must
// be pointer types: the registry keys on handle identity, never on value.
type Conn interface {
	// ID returns a stable identifier used in logs.
	ID() string
	// RemoteAddr returns the peer address reported by the transport.
	RemoteAddr() string
	// Send writes payload as a single text frame.
	Send(payload string) error
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
