package server

import (
	"sync"
	"time"
)

type fakeConn struct {
	id   string
	addr string

	mu     sync.Mutex
	frames []string
	err    error
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, addr: "127.0.0.1:" + id}
}

func (f *fakeConn) ID() string         { return f.id }
func (f *fakeConn) RemoteAddr() string { return f.addr }

func (f *fakeConn) Send(payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, payload)
	return nil
}

func (f *fakeConn) Frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

func (f *fakeConn) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// stamp renders as 13:04:05 in every time zone.
var stamp = fixedClock{t: time.Date(2024, 5, 1, 13, 4, 5, 0, time.Local)}
