package server

import "errors"

var (
	// ErrUnknownConn is returned when a name is assigned to a connection
	// that is not (or no longer) in the open set.
	ErrUnknownConn = errors.New("server: connection is not open")

	// ErrConnClosed is returned by Client.Send once the connection has been torn down.
	ErrConnClosed = errors.New("server: connection closed")
)
