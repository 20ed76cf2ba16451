package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatter_Shapes(t *testing.T) {
	format := NewFormatter(stamp)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"join", format.Join("Alice"), "[系统 13:04:05] Alice 加入了聊天室"},
		{"leave", format.Leave("Carol"), "[系统 13:04:05] Carol 离开了聊天室"},
		{"welcome", format.Welcome(2), "[系统 13:04:05] 欢迎来到 NeoChat！当前在线人数: 2"},
		{"chat", format.Chat("Alice", "hi"), "[13:04:05] Alice: hi"},
		{"operator", format.Operator("hello all"), "[13:04:05] Server: hello all"},
		{"empty name", format.Join(""), "[系统 13:04:05]  加入了聊天室"},
		{"body kept verbatim", format.Chat("Bob", "  spaced  "), "[13:04:05] Bob:   spaced  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFormatter_DefaultsToSystemClock(t *testing.T) {
	format := NewFormatter(nil)
	require.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, format.Timestamp())
}
