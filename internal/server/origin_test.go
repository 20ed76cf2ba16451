package server

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOriginPolicy_Check(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		origins []string
		header  string
		want    bool
	}{
		{"no header always passes", []string{"http://ok.example"}, "", true},
		{"wildcard", []string{"*"}, "http://evil.example", true},
		{"listed origin", []string{"http://ok.example"}, "http://ok.example", true},
		{"case and scheme normalised", []string{"HTTP://OK.example"}, "http://ok.EXAMPLE", true},
		{"unlisted origin", []string{"http://ok.example"}, "http://evil.example", false},
		{"port matters", []string{"http://ok.example"}, "http://ok.example:8080", false},
		{"garbage header", []string{"http://ok.example"}, "::::", false},
		{"nothing configured", nil, "http://ok.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := newOriginPolicy(tt.origins, log)
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Origin", tt.header)
			}
			require.Equal(t, tt.want, policy.check(r))
		})
	}
}

func TestNormalizeOrigins_SkipsInvalidEntries(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	normalized, allowAll := normalizeOrigins([]string{" ", "not-a-url", "https://Chat.Example"}, log)

	require.False(t, allowAll)
	require.Equal(t, []string{"https://chat.example"}, normalized)
}
