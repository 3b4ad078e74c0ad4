// Package diagnose explains why Intervals.icu rejected an event request.
//
// It is invoked only after the upstream service answered a schema/validation
// client error, and is handed the exact outbound payload that was sent. It
// replays the same rules used for pre-submission normalization, in explain
// mode: every check runs, and its findings accumulate into one ordered
// suggestion list, so a single round-trip can surface all problems at once
// rather than one per network call.
//
// The checks are independent pure functions run in a fixed priority order:
// field names, category, start date, sport type, numeric units, workout_doc
// shape, missing required fields. The engine never returns zero actionable
// content; when no check fires it falls back to a generic message carrying
// the raw upstream response and a field cheat sheet.
package diagnose
