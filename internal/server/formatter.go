package server

import (
	"fmt"
	"time"
)

// OperatorName is the author shown on lines typed at the server console.
const OperatorName = "Server"

const clockLayout = "15:04:05"

// Clock supplies the wall-clock time stamped on outgoing lines.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// Formatter builds the text frames sent to clients.
type Formatter struct {
	clock Clock
}

// NewFormatter returns a Formatter stamping lines with clock. A nil clock
// falls back to SystemClock.
func NewFormatter(clock Clock) *Formatter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Formatter{clock: clock}
}

// Timestamp returns the current time as HH:MM:SS.
func (f *Formatter) Timestamp() string {
	return f.clock.Now().Local().Format(clockLayout)
}

// Join is broadcast when a connection picks its name.
func (f *Formatter) Join(name string) string {
	return fmt.Sprintf("[系统 %s] %s 加入了聊天室", f.Timestamp(), name)
}

// Leave is broadcast when a named connection closes.
func (f *Formatter) Leave(name string) string {
	return fmt.Sprintf("[系统 %s] %s 离开了聊天室", f.Timestamp(), name)
}

// Welcome is sent to the new member only.
func (f *Formatter) Welcome(online int) string {
	return fmt.Sprintf("[系统 %s] 欢迎来到 NeoChat！当前在线人数: %d", f.Timestamp(), online)
}

// Chat is a member's line as seen by everybody else.
func (f *Formatter) Chat(name, body string) string {
	return fmt.Sprintf("[%s] %s: %s", f.Timestamp(), name, body)
}

// Operator is a console line attributed to the server.
func (f *Formatter) Operator(body string) string {
	return f.Chat(OperatorName, body)
}
