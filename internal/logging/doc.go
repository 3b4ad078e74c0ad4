// Package logging provides structured logging utilities for the intervals-mcp server.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog, written to stderr so stdout stays free
//     for the stdio MCP transport
//   - PII sanitization (athlete ID anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "create_event")
//	logger.Info("event created",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("client initialized",
//	    logging.Athlete(athleteID))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Athlete IDs are hashed to prevent PII leakage while allowing correlation
//   - API keys are never logged directly
package logging
