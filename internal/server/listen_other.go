//go:build !unix

package server

import "syscall"

// On Windows SO_REUSEADDR allows port hijacking, so the default is kept.
func reuseAddrControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
