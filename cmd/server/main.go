package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/Tyrowin/neochat/internal/console"
	"github.com/Tyrowin/neochat/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[错误] 服务器启动失败: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	handler := server.NewHandler(logger, server.NewMetrics(registry), server.SystemClock{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := server.Listen(ctx, cfg.Addr())
	if err != nil {
		return err
	}
	relay := server.CreateServer(server.SetupRoutes(handler, cfg, logger))

	var admin *http.Server
	var adminLn net.Listener
	if cfg.AdminAddr != "" {
		if adminLn, err = server.Listen(ctx, cfg.AdminAddr); err != nil {
			_ = ln.Close()
			return err
		}
		admin = server.CreateServer(server.SetupAdminRoutes(registry, cfg, logger))
	}

	console.PrintBanner(os.Stdout, console.BannerInfo{
		Host:      cfg.Host,
		Port:      cfg.Port,
		AdminAddr: cfg.AdminAddr,
		Colours:   cfg.Colours,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.StartServer(relay, ln)
	})
	if admin != nil {
		g.Go(func() error {
			return server.StartServer(admin, adminLn)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		_ = relay.Close()
		if admin != nil {
			_ = server.ShutdownServer(admin, 5*time.Second)
		}
		return nil
	})

	// stdin reads cannot be interrupted; the loop is left behind on exit.
	go func() {
		op := console.New(handler, os.Stdin, os.Stdout,
			console.WithPrompt(console.IsTerminal(os.Stdin)),
			console.WithCommands(cfg.ConsoleCommands),
			console.WithColours(cfg.Colours),
		)
		if err := op.Run(); err != nil {
			logger.Warn("operator console stopped", "err", err)
		}
	}()

	return g.Wait()
}

func newLogger(cfg server.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
