// Package event_tools provides MCP tools for managing Intervals.icu calendar
// events: planned workouts, notes, races, and goals.
//
// Agent-supplied input is normalized before it reaches the network (category
// aliases, sport type casing, date forms, field name mistakes). When the API
// still rejects a request, the rejected payload is run through the diagnose
// package so the agent receives every correction in one response instead of
// discovering them one failed call at a time.
//
// All tools return the response package's JSON envelopes. Mutating tools are
// only registered when the server runs with --yolo.
package event_tools
