package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"postgen/config"
	"postgen/generator"
	"postgen/logging"
	"postgen/orchestrator"
	"postgen/recordstore"
	"postgen/server"
	"postgen/tracing"
)

const (
	serviceName    = "postgen"
	serviceVersion = "0.1.0"

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
)

type options struct {
	configPath string
	addr       string
	verbose    bool
	topic      string
	tone       string
	platform   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path or URL of a JSON/YAML config file (optional)")
	flag.StringVar(&opts.addr, "addr", "", "http listen address (overrides config.server_addr)")
	flag.BoolVar(&opts.verbose, "v", false, "enable debug logs")
	flag.StringVar(&opts.topic, "topic", "", "generate a single post for topic, print it and exit")
	flag.StringVar(&opts.tone, "tone", generator.DefaultTone, "post tone for -topic")
	flag.StringVar(&opts.platform, "platform", generator.DefaultPlatform, "target platform for -topic")
	flag.Parse()

	logging.Setup(os.Stderr, opts.verbose)
	if err := run(context.Background(), opts); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(ctx, opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.addr != "" {
		cfg.ServerAddr = opts.addr
	}

	if cfg.Tracing.Enabled {
		if err := tracing.Init(serviceName, serviceVersion, cfg.Tracing.Output); err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			if err := tracing.Shutdown(context.Background()); err != nil {
				slog.Error("Failed to flush traces", "error", err)
			}
		}()
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	if opts.topic != "" {
		return generateOnce(ctx, orch, generator.PostRequest{Topic: opts.topic, Tone: opts.tone, Platform: opts.platform})
	}
	return serve(cfg, orch)
}

func buildOrchestrator(cfg config.Config) (*orchestrator.Orchestrator, error) {
	gen, err := generator.FromConfig(cfg.LLM, cfg.RequestTimeout.Std())
	if err != nil {
		return nil, fmt.Errorf("build text generator: %w", err)
	}
	store, err := recordstore.FromConfig(cfg.Airtable, cfg.RequestTimeout.Std())
	if err != nil {
		return nil, fmt.Errorf("build record store: %w", err)
	}
	slog.Info("Collaborators ready",
		"ai_configured", cfg.LLM.Configured(),
		"model", cfg.LLM.Model,
		"store_configured", cfg.Airtable.Configured(),
		"table", cfg.Airtable.Table,
	)
	return orchestrator.New(gen, store)
}

// generateOnce runs the orchestrator for a single request and prints the reply.
func generateOnce(ctx context.Context, orch *orchestrator.Orchestrator, req generator.PostRequest) error {
	ctx = logging.WithContext(ctx, slog.Default().With("request_id", uuid.NewString()))
	resp, err := orch.Handle(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func serve(cfg config.Config, orch *orchestrator.Orchestrator) error {
	srv, err := server.New(orch)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Starting web server", "addr", cfg.ServerAddr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		slog.Info("Starting graceful shutdown", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Std())
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			slog.Error("Graceful shutdown failed, forcing close", "error", err)
			if closeErr := httpServer.Close(); closeErr != nil {
				return fmt.Errorf("could not stop server: shutdown error: %v, close error: %v", err, closeErr)
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		slog.Info("Server stopped")
	}
	return nil
}
