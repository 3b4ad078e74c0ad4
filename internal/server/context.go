package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/icu"
	"github.com/teemow/intervals-mcp/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Config
	client   *icu.Client
	metrics  *instrumentation.Provider
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The Intervals.icu client is
// created lazily on first use so the server can start before credentials are
// configured.
func NewServerContext(ctx context.Context, cfg *config.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		cfg:     cfg,
		metrics: instrumentation.NewProvider(),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Metrics returns the instrumentation provider.
func (sc *ServerContext) Metrics() *instrumentation.Provider {
	return sc.metrics
}

// Client returns the Intervals.icu client, creating and caching it on first
// use. It fails when no valid credentials are configured.
func (sc *ServerContext) Client() (*icu.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.client != nil {
		return sc.client, nil
	}

	if !sc.cfg.HasCredentials() {
		return nil, fmt.Errorf("no Intervals.icu credentials configured. Set INTERVALS_ICU_API_KEY and INTERVALS_ICU_ATHLETE_ID, or run 'intervals-mcp auth'")
	}

	opts := []icu.ClientOption{icu.WithMetricsRecorder(sc.metrics)}
	if sc.cfg.BaseURL != "" {
		opts = append(opts, icu.WithBaseURL(sc.cfg.BaseURL))
	}

	sc.client = icu.NewClient(sc.cfg.AthleteID, sc.cfg.APIKey, opts...)
	return sc.client, nil
}

// SetClient sets the Intervals.icu client, mainly for tests.
func (sc *ServerContext) SetClient(client *icu.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
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
