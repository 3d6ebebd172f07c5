package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/culstrup/fireflies-raycast/internal/instrumentation"
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind the MCP HTTP server to (e.g., ":8080").
	Addr string

	// DisableStreaming disables streaming responses, for compatibility
	// with certain clients.
	DisableStreaming bool

	// Health provides the health check endpoints. Optional.
	Health *HealthChecker

	// Metrics records request counts and latency per endpoint. Optional.
	Metrics *instrumentation.Metrics
}

// HTTPServer serves the MCP protocol over streamable HTTP alongside the
// health check endpoints.
type HTTPServer struct {
	httpServer *http.Server
	addr       string
}

// NewHTTPServer creates an HTTP server exposing the MCP endpoint at /mcp.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	mux := http.NewServeMux()

	var streamable http.Handler
	if config.DisableStreaming {
		streamable = mcpserver.NewStreamableHTTPServer(mcpSrv,
			mcpserver.WithEndpointPath("/mcp"),
			mcpserver.WithDisableStreaming(true),
		)
	} else {
		streamable = mcpserver.NewStreamableHTTPServer(mcpSrv,
			mcpserver.WithEndpointPath("/mcp"),
		)
	}
	mux.Handle("/mcp", streamable)

	if config.Health != nil {
		config.Health.RegisterHealthEndpoints(mux)
	}

	var handler http.Handler = mux
	if config.Metrics != nil {
		handler = httpMetricsMiddleware(config.Metrics, handler)
	}

	return &HTTPServer{
		addr: config.Addr,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// httpMetricsMiddleware records method, path, status and latency for every
// request the server handles, including the health endpoints.
func httpMetricsMiddleware(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

// statusWriter captures the status code written by the wrapped handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush forwards streaming flushes so the streamable transport keeps working
// behind the middleware.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Start starts the server in a blocking manner.
func (s *HTTPServer) Start() error {
	slog.Info("starting MCP HTTP server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured address.
func (s *HTTPServer) Addr() string {
	return s.addr
}
