package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/neochat/internal/server"
)

type fakeRelay struct {
	announced []string
	members   []server.Member
	stats     server.Stats
}

func (f *fakeRelay) Announce(body string) int {
	f.announced = append(f.announced, body)
	return len(f.members)
}

func (f *fakeRelay) Members() []server.Member { return f.members }
func (f *fakeRelay) Stats() server.Stats      { return f.stats }

func TestConsole_BroadcastsEveryNonEmptyLine(t *testing.T) {
	req := require.New(t)
	relay := &fakeRelay{}
	var out bytes.Buffer

	// Given three lines with an empty one in the middle
	in := strings.NewReader("hello all\n\n  padded  \n")

	// When the console drains its input
	err := New(relay, in, &out).Run()

	// Then every non-empty line is broadcast verbatim and echoed
	req.NoError(err)
	req.Equal([]string{"hello all", "  padded  "}, relay.announced)
	req.Equal("[已发送] Server: hello all\n[已发送] Server:   padded  \n", out.String())
}

func TestConsole_LastLineWithoutNewline(t *testing.T) {
	relay := &fakeRelay{}
	var out bytes.Buffer

	require.NoError(t, New(relay, strings.NewReader("bye"), &out).Run())
	require.Equal(t, []string{"bye"}, relay.announced)
}

func TestConsole_SlashLinesAreChatWhenCommandsDisabled(t *testing.T) {
	relay := &fakeRelay{}
	var out bytes.Buffer

	require.NoError(t, New(relay, strings.NewReader("/list\n"), &out).Run())
	require.Equal(t, []string{"/list"}, relay.announced)
}

func TestConsole_Prompt(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, New(&fakeRelay{}, strings.NewReader("x\n"), &out, WithPrompt(true)).Run())
	require.Equal(t, "Server> [已发送] Server: x\nServer> ", out.String())
}

func TestConsole_Commands(t *testing.T) {
	joined := time.Now().Add(-90 * time.Second)
	relay := &fakeRelay{
		members: []server.Member{
			{ID: "1", Name: "Alice", RemoteAddr: "10.0.0.1:5000", Since: joined},
		},
		stats: server.Stats{Uptime: time.Hour, Open: 2, Named: 1, Relayed: 7},
	}

	tests := []struct {
		name    string
		line    string
		want    []string
		wantNot []string
	}{
		{"list", "/list", []string{"NAME", "Alice", "10.0.0.1:5000"}, nil},
		{"stats", "/stats", []string{"Uptime", "1h0m0s", "Connections", "2", "Relayed", "7", "RSS", "12.0 MiB", "CPU", "3.5%"}, nil},
		{"help", "/help", []string{"/list", "/stats", "/help"}, nil},
		{"unknown", "/kick bob", []string{"未知命令: /kick"}, []string{"[已发送]"}},
		{"plain line still broadcast", "hello", []string{"[已发送] Server: hello"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(relay, strings.NewReader(tt.line+"\n"), &out, WithCommands(true))
			c.usage = func() (processUsage, error) {
				return processUsage{RSS: 12 << 20, CPU: 3.5}, nil
			}

			require.NoError(t, c.Run())
			for _, s := range tt.want {
				require.Contains(t, out.String(), s)
			}
			for _, s := range tt.wantNot {
				require.NotContains(t, out.String(), s)
			}
		})
	}
	require.Equal(t, []string{"hello"}, relay.announced)
}

func TestConsole_StatsWithoutProcessUsage(t *testing.T) {
	var out bytes.Buffer
	c := New(&fakeRelay{}, strings.NewReader("/stats\n"), &out, WithCommands(true))
	c.usage = func() (processUsage, error) { return processUsage{}, errors.New("unsupported") }

	require.NoError(t, c.Run())
	require.Contains(t, out.String(), "Relayed")
	require.NotContains(t, out.String(), "RSS")
}

func TestConsole_ListWhenEmpty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, New(&fakeRelay{}, strings.NewReader("/list\n"), &out, WithCommands(true)).Run())
	require.Equal(t, "当前无在线用户\n", out.String())
}

func TestConsole_OverlongLineIsAnError(t *testing.T) {
	relay := &fakeRelay{}
	in := strings.NewReader(strings.Repeat("x", maxLineSize+1))

	err := New(relay, in, &bytes.Buffer{}).Run()

	require.Error(t, err)
	require.Empty(t, relay.announced)
}

func TestPrintBanner_WithoutColours(t *testing.T) {
	var out bytes.Buffer

	PrintBanner(&out, BannerInfo{Host: "127.0.0.1", Port: 9999, AdminAddr: ":9090"})

	text := out.String()
	require.Contains(t, text, "NeoChat WebSocket 服务器")
	require.Contains(t, text, "已启动在端口: 9999")
	require.Contains(t, text, "访问地址: ws://127.0.0.1:9999")
	require.Contains(t, text, "管理接口: http://:9090")
	require.Contains(t, text, "署名为 Server")
	require.NotContains(t, text, "\x1b[")
}
