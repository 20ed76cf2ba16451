// Package server implements the NeoChat WebSocket relay.
//
// A Registry holds the open connections and their display names, a
// Broadcaster fans frames out to a registry snapshot, and a Handler drives
// each connection from unnamed to named to gone. Client adapts gorilla
// WebSocket sessions to the Conn interface the rest of the package works
// with; routes, listeners and configuration live alongside.
package server
