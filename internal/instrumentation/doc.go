// Package instrumentation provides Prometheus metrics for the intervals-mcp
// server.
//
// Metrics are registered on a private registry so the /metrics endpoint only
// exposes what this package defines:
//
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations by tool name
//   - icu_api_requests_total: Counter of Intervals.icu API requests by operation and status
//
// Tool names are a closed, registration-time set, so label cardinality stays
// bounded. Athlete IDs and event IDs are never used as labels.
package instrumentation
