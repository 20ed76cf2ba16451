package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from NEOCHAT_* variables; -name overrides NEOCHAT_NAME.
type Config struct {
	URL     string `envconfig:"NEOCHAT_URL" default:"ws://localhost:9999/"`
	Name    string `envconfig:"NEOCHAT_NAME"`
	Colours bool   `envconfig:"NEOCHAT_COLOURS" default:"true"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal("config: ", err)
	}
	flag.StringVar(&cfg.Name, "name", cfg.Name, "display name sent as the first frame")
	flag.StringVar(&cfg.URL, "url", cfg.URL, "relay WebSocket URL")
	flag.Parse()

	if cfg.Name == "" {
		log.Fatal("a display name is required: -name alice or NEOCHAT_NAME=alice")
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// closeWait bounds how long run waits for the server to answer a close frame.
const closeWait = 2 * time.Second

// run joins the relay as cfg.Name, prints every frame to out and sends each
// non-empty line of in as chat. It returns when the server closes the
// connection or in is exhausted.
func run(cfg Config, in io.Reader, out io.Writer) error {
	conn, resp, err := websocket.DefaultDialer.Dial(cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.URL, err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(cfg.Name)); err != nil {
		return fmt.Errorf("send name: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			printLine(out, string(data), cfg.Colours)
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-done:
			fmt.Fprintln(out, "connection closed by server")
			return nil
		case line, ok := <-lines:
			if !ok {
				err := conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				if err == nil {
					select {
					case <-done:
					case <-time.After(closeWait):
					}
				}
				return nil
			}
			if line == "" {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return fmt.Errorf("send: %w", err)
			}
		}
	}
}

func printLine(out io.Writer, line string, colours bool) {
	if colours && strings.HasPrefix(line, "[系统") {
		line = color.Yellow.Sprint(line)
	}
	fmt.Fprintln(out, line)
}
