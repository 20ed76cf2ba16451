// Package console implements the operator side of the relay: a loop that
// reads standard input and broadcasts each line as the Server.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Tyrowin/neochat/internal/server"
	"golang.org/x/term"
)

const maxLineSize = 1 << 20

// Relay is what the console needs from the connection handler.
type Relay interface {
	Announce(body string) int
	Members() []server.Member
	Stats() server.Stats
}

// Console reads operator lines from in and reports to out.
type Console struct {
	relay    Relay
	in       io.Reader
	out      io.Writer
	prompt   bool
	commands bool
	colours  bool
	usage    func() (processUsage, error)
}

// Option configures a Console.
type Option func(*Console)

// WithPrompt prints "Server> " before every read.
func WithPrompt(enabled bool) Option {
	return func(c *Console) { c.prompt = enabled }
}

// WithCommands makes lines starting with "/" local commands instead of
// broadcasts.
func WithCommands(enabled bool) Option {
	return func(c *Console) { c.commands = enabled }
}

// WithColours toggles ANSI colours in console output.
func WithColours(enabled bool) Option {
	return func(c *Console) { c.colours = enabled }
}

// New creates a Console.
func New(relay Relay, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		relay: relay,
		in:    in,
		out:   out,
		usage: selfUsage,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run consumes lines until in reaches end of stream and returns the read
// error, if any. EOF is not an error.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for {
		if c.prompt {
			fmt.Fprint(c.out, c.paint(styleSuccess, "Server> "))
		}
		if !scanner.Scan() {
			break
		}
		c.handleLine(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console: read stdin: %w", err)
	}
	return nil
}

func (c *Console) handleLine(line string) {
	if line == "" {
		return
	}
	if c.commands && strings.HasPrefix(line, "/") {
		c.runCommand(line)
		return
	}

	c.relay.Announce(line)
	fmt.Fprintf(c.out, "[已发送] %s: %s\n", server.OperatorName, line)
}
