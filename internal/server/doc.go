// Package server provides the MCP server context and the dedicated metrics
// server for the intervals-mcp application.
//
// # Key Components
//
// ServerContext holds the loaded configuration and the Intervals.icu client,
// created lazily on first use so the server can start before credentials are
// configured. It also owns the instrumentation provider shared by all tool
// handlers.
//
// MetricsServer exposes Prometheus metrics and a health check on a dedicated
// port, isolated from the MCP transport.
package server
