// Package settings_tools provides MCP tools for per-sport settings on
// Intervals.icu: FTP, threshold heart rate, and pace thresholds, plus
// applying updated settings to historical activities.
package settings_tools
