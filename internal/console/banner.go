package console

import (
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/gookit/color"
)

var (
	styleTitle   = color.New(color.FgCyan, color.OpBold)
	styleSuccess = color.New(color.FgGreen)
	styleHint    = color.New(color.FgYellow)
)

// BannerInfo is what the startup banner shows.
type BannerInfo struct {
	Host      string
	Port      int
	AdminAddr string
	Colours   bool
}

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer, info BannerInfo) {
	paint := func(style color.Style, s string) string {
		if !info.Colours {
			return s
		}
		return style.Sprint(s)
	}
	check := paint(styleSuccess, "✓")
	rule := strings.Repeat("═", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, paint(styleTitle, "      NeoChat WebSocket 服务器"))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s 已启动在端口: %d\n", check, info.Port)

	if info.Host == "" || info.Host == "0.0.0.0" || info.Host == "::" {
		fmt.Fprintf(w, "%s 本机访问: ws://localhost:%d\n", check, info.Port)
		if ip, ok := localIP(); ok {
			fmt.Fprintf(w, "%s 局域网访问: ws://%s\n", check, net.JoinHostPort(ip, fmt.Sprint(info.Port)))
		}
	} else {
		fmt.Fprintf(w, "%s 访问地址: ws://%s\n", check, net.JoinHostPort(info.Host, fmt.Sprint(info.Port)))
	}
	if info.AdminAddr != "" {
		fmt.Fprintf(w, "%s 管理接口: http://%s (/healthz, /metrics, /chat)\n", check, info.AdminAddr)
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintln(w, paint(styleHint, "输入消息并按回车发送 (署名为 Server)"))
	fmt.Fprintln(w, rule)
}

// localIP finds the address used for outbound traffic. Dialing UDP sends
// no packets.
func localIP() (string, bool) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", false
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", false
	}
	return addr.IP.String(), true
}

func (c *Console) paint(style color.Style, s string) string {
	if !c.colours {
		return s
	}
	return style.Sprint(s)
}
