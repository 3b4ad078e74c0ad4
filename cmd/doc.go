// Package cmd implements the command-line interface for intervals-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Intervals.icu calendar tools
//   - auth: Configure and verify Intervals.icu API credentials
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
