// Package icu provides a client for the Intervals.icu REST API.
//
// The client covers calendar events (list, create, update, delete, bulk
// operations) and per-sport settings for one athlete. Authentication uses
// HTTP Basic with the literal username "API_KEY" and the athlete's personal
// API key as the password, matching the Intervals.icu API convention.
//
// Write operations accept free-form payload maps rather than structs: the
// callers assemble payloads dynamically from agent input, and a rejected
// payload must be returned verbatim for diagnosis. Upstream failures are
// reported as *APIError carrying the HTTP status, the raw response body, and
// the payload that was sent.
package icu
