package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic/api"
	"github.com/athapong/academicworld-mcp/prompts"
	"github.com/athapong/academicworld-mcp/services"
	"github.com/athapong/academicworld-mcp/tools"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	enableSSE := flag.Bool("sse", false, "Enable SSE server")
	sseAddr := flag.String("sse-addr", ":8080", "Address for SSE server to listen on")
	sseBasePath := flag.String("sse-base-path", "/mcp", "Base path for SSE endpoints")
	httpAddr := flag.String("http-addr", "", "Address for the health, metrics and report server (disabled when empty)")
	logLevel := flag.String("log-level", "", "Logging level (debug, info, warn, error); overrides LOG_LEVEL")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	// stdout carries the stdio transport
	logger.SetOutput(os.Stderr)

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}
	if *logLevel != "" {
		os.Setenv("LOG_LEVEL", *logLevel)
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	backends, err := services.Connect(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to start: %v", err)
	}
	defer backends.Close()

	dash := backends.Dashboard(logger)
	if _, err := dash.LoadCatalog(context.Background()); err != nil {
		logger.Warnf("Dashboard options unavailable: %v", err)
	}

	hooks := &server.Hooks{}
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		dash.Sessions().Forget(session.SessionID())
	})

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"academicworld-mcp",
		"1.0.0",
		server.WithLogging(),
		server.WithPromptCapabilities(true),
		server.WithToolCapabilities(false),
		server.WithHooks(hooks),
	)

	if cfg.ToolEnabled("dashboard") {
		tools.RegisterDashboardTools(mcpServer, dash)
		prompts.RegisterExplorePrompts(mcpServer)
	}

	var httpServer *http.Server
	if cfg.HTTPAddr != "" {
		httpServer = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewRouter(dash, logger).Setup(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Infof("Starting HTTP server on %s", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("HTTP server stopped: %v", err)
			}
		}()
	}

	shutdownHTTP := func() {
		if httpServer == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Errorf("Error during HTTP server shutdown: %v", err)
		}
	}

	// Check if SSE server should be enabled
	if *enableSSE || cfg.EnableSSE {
		sseServer := server.NewSSEServer(
			mcpServer,
			server.WithBasePath(*sseBasePath),
			server.WithKeepAlive(true),
		)

		go func() {
			logger.Infof("Starting SSE server on %s with base path %s", *sseAddr, *sseBasePath)
			if err := sseServer.Start(*sseAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatalf("Failed to start SSE server: %v", err)
			}
		}()

		// Set up signal handling for graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		sig := <-sigCh
		logger.Infof("Received signal %v, shutting down...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := sseServer.Shutdown(ctx); err != nil {
			logger.Errorf("Error during SSE server shutdown: %v", err)
		}
		shutdownHTTP()
		logger.Info("SSE server shutdown complete")
		return
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Errorf("Server error: %v", err)
	}
	shutdownHTTP()
}
