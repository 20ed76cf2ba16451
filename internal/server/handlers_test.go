package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	header http.Header
}

func (w *failingWriter) Header() http.Header       { return w.header }
func (w *failingWriter) WriteHeader(int)           {}
func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("client went away") }

func TestChatPageHandler_RendersRelayPort(t *testing.T) {
	rec := httptest.NewRecorder()

	ChatPageHandler(7777, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), ":7777/")
}

func TestChatPageHandler_LogsWriteFailureOnInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ChatPageHandler(7777, log)(&failingWriter{header: http.Header{}}, httptest.NewRequest(http.MethodGet, "/chat", nil))

	require.Contains(t, buf.String(), "writing chat page failed")
}
