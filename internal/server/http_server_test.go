package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/neochat/internal/testhelpers"
)

func TestListenStartAndShutdown(t *testing.T) {
	req := require.New(t)
	ln, err := Listen(context.Background(), "127.0.0.1:0")
	req.NoError(err)

	srv := CreateServer(http.HandlerFunc(HealthHandler))
	served := make(chan error, 1)
	go func() { served <- StartServer(srv, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	req.NoError(err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	req.NoError(err)
	req.Equal("NeoChat relay is running!", string(body))

	req.NoError(ShutdownServer(srv, time.Second))
	req.NoError(<-served)
}

func TestListen_AddressInUse(t *testing.T) {
	first, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer first.Close()

	_, err = Listen(context.Background(), first.Addr().String())

	require.ErrorContains(t, err, "failed to listen on")
}

func TestClient_SendAfterCloseFails(t *testing.T) {
	h, _ := newTestHandler()
	c := NewClient(nil, h, "127.0.0.1:1", DefaultConfig(), nil)
	c.closed = true

	require.ErrorIs(t, c.Send("late"), ErrConnClosed)
	require.NotEmpty(t, c.ID())
	require.Equal(t, "127.0.0.1:1", c.RemoteAddr())
}

func TestClient_SendToStalledPeerIsBoundedByWriteTimeout(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()
	cfg := DefaultConfig()
	cfg.WriteTimeout = 100 * time.Millisecond
	ts := testhelpers.CreateTestServer(t, SetupRoutes(h, cfg, nil))

	// Given a peer that never reads
	_ = testhelpers.ConnectWebSocket(t, testhelpers.WebSocketURL(ts.URL))
	req.Eventually(func() bool { return h.Stats().Open == 1 }, time.Second, 10*time.Millisecond)
	stalled := h.registry.Recipients(nil)[0]

	// When frames are pushed until the socket buffers fill
	payload := strings.Repeat("x", 1<<20)
	var err error
	for i := 0; i < 256 && err == nil; i++ {
		start := time.Now()
		err = stalled.Send(payload)
		req.Less(time.Since(start), 2*time.Second)
	}

	// Then the write times out and later sends fail at once
	req.Error(err)
	start := time.Now()
	req.Error(stalled.Send("again"))
	req.Less(time.Since(start), 50*time.Millisecond)
}
