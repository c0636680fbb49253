// Entry point for the nuage word-cloud service — chi router, slog JSON
// logging, SQLite generation history, optional MCP stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/nuage/cloud"
	"github.com/hazyhaar/nuage/dbopen"
	"github.com/hazyhaar/nuage/docpipe"
	"github.com/hazyhaar/nuage/history"
)

func main() {
	// Logging.
	var lvl slog.Level
	switch env("LOG_LEVEL", "info") {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	cfgPath := os.Getenv("NUAGE_CONFIG")
	if cfgPath == "" && len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// History DB.
	histDB, err := dbopen.Open(cfg.HistoryDB, dbopen.WithMkdirAll())
	if err != nil {
		slog.Error("history db", "error", err)
		os.Exit(1)
	}
	defer histDB.Close()
	hist := history.NewStore(histDB)
	if err := hist.Init(); err != nil {
		slog.Error("history init", "error", err)
		os.Exit(1)
	}

	// Pipeline components.
	pipe := docpipe.New(docpipe.Config{
		MaxFileSize: cfg.MaxUploadBytes(),
		Logger:      logger,
	})
	engine := cloud.New(cloud.Config{
		FontFile: cfg.FontFile,
		Logger:   logger,
	})

	// MCP stdio mode: serve tools over stdin/stdout instead of HTTP.
	if env("MCP_TRANSPORT", "") == "stdio" {
		mcpSrv := mcp.NewServer(&mcp.Implementation{
			Name:    "nuage",
			Version: "1.0.0",
		}, nil)
		pipe.RegisterMCP(mcpSrv)
		engine.RegisterMCP(mcpSrv)

		slog.Info("MCP stdio starting")
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	s := newServer(pipe, engine, hist, logger, cfg.MaxUploadBytes())

	// HTTP server.
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "listen", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
