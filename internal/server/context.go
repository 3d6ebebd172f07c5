package server

import (
	"context"
	"sync"

	"github.com/culstrup/fireflies-raycast/internal/casestudy"
	"github.com/culstrup/fireflies-raycast/internal/config"
	"github.com/culstrup/fireflies-raycast/internal/fireflies"
	"github.com/culstrup/fireflies-raycast/internal/gemini"
	"github.com/culstrup/fireflies-raycast/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server.
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	cfg             *config.Config
	firefliesClient *fireflies.Client
	geminiClient    *gemini.Client
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context. The Fireflies API key is
// required; the Gemini key is optional and only gates the case study tool.
func NewServerContext(ctx context.Context, cfg *config.Config) (*ServerContext, error) {
	if err := cfg.RequireFireflies(); err != nil {
		return nil, err
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	firefliesClient, err := fireflies.NewClient(cfg.FirefliesAPIKey)
	if err != nil {
		cancel()
		return nil, err
	}

	sc := &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		cfg:             cfg,
		firefliesClient: firefliesClient,
	}

	// The Gemini client is created eagerly when a key is present so the
	// case study tool fails fast on a bad configuration.
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			cancel()
			return nil, err
		}
		sc.geminiClient = geminiClient
	}

	return sc, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// FirefliesClient returns the shared Fireflies API client.
func (sc *ServerContext) FirefliesClient() *fireflies.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.firefliesClient
}

// SetFirefliesClient replaces the Fireflies client. Used by tests.
func (sc *ServerContext) SetFirefliesClient(client *fireflies.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.firefliesClient = client
}

// GeminiClient returns the Gemini client, or nil when no key is configured.
func (sc *ServerContext) GeminiClient() *gemini.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.geminiClient
}

// SetGeminiClient replaces the Gemini client. Used by tests.
func (sc *ServerContext) SetGeminiClient(client *gemini.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.geminiClient = client
}

// CaseStudyGenerator builds a generator from the shared clients. Returns
// nil when Gemini is not configured.
func (sc *ServerContext) CaseStudyGenerator() *casestudy.Generator {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	if sc.geminiClient == nil {
		return nil
	}

	opts := []casestudy.GeneratorOption{}
	if sc.cfg.CharBudget > 0 {
		opts = append(opts, casestudy.WithCharBudget(sc.cfg.CharBudget))
	}
	return casestudy.NewGenerator(sc.firefliesClient, sc.geminiClient, opts...)
}

// SetMetrics sets the metrics recorder for instrumented handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// AuditLogger returns the audit logger, or nil when not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
