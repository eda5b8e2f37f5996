package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rochadelon/super-productivity-mcp/internal/bridge"
	"github.com/rochadelon/super-productivity-mcp/internal/config"
	"github.com/rochadelon/super-productivity-mcp/internal/rest"
	spserver "github.com/rochadelon/super-productivity-mcp/internal/server"
	"github.com/rochadelon/super-productivity-mcp/internal/session"
	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const banner = `
  ___ _ __   ___ _ __ ___   ___ _ __
 / __| '_ \ / __| '_ ` + "`" + ` _ \ / __| '_ \
 \__ \ |_) |\__ \ | | | | | (__| |_) |
 |___/ .__/ |___/_| |_| |_|\___| .__/
     |_|  Super Productivity   |_|  MCP bridge
`

func newServeCmd() *cobra.Command {
	var port int
	var token string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Super Productivity MCP bridge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "port to listen on")
	cmd.Flags().StringVar(&token, "token", "", "bearer token required on the MCP endpoint and plugin socket (empty disables auth)")
	return cmd
}

func runServe(cfg config.Config) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	// The bridge: one plugin connection, one correlated channel, one
	// event log — shared by every session and the REST surface.
	registry := bridge.NewRegistry()
	channel := bridge.NewChannel(registry)
	events := bridge.NewEventLog(cfg.EventBuffer, log)
	client := superprod.NewSocketClient(channel)

	manager := session.NewManager(func() *mcpserver.MCPServer {
		return spserver.NewRegistry(client)
	}, log)

	mux := http.NewServeMux()
	mux.Handle("/mcp", session.NewHandler(manager, cfg.Token, log))
	mux.Handle("/plugin", bridge.NewSocket(registry, channel, events, cfg.Token, log))
	rest.NewHandler(client, events, log).Register(mux)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Idle-session sweep. The MCP spec has no client-side lease, so
	// without this, callers that never DELETE would grow the session
	// table forever.
	if cfg.IdleTimeout > 0 {
		go func() {
			ticker := time.NewTicker(cfg.IdleTimeout / 2)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := manager.SweepIdle(cfg.IdleTimeout); n > 0 {
						log.Info("idle sweep", "evicted", n, "live", manager.Len())
					}
				}
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Fprint(os.Stderr, banner)
	log.Info("sp-mcp bridge listening",
		"addr", cfg.Addr(),
		"mcp", fmt.Sprintf("http://localhost:%d/mcp", cfg.Port),
		"plugin", fmt.Sprintf("ws://localhost:%d/plugin", cfg.Port),
		"auth", cfg.Token != "",
	)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
