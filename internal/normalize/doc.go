// Package normalize canonicalizes loosely-specified event input before it is
// submitted to the Intervals.icu API.
//
// The API accepts a closed set of event categories, activity types, and field
// names, and a single date-time wire format. Agent-authored input routinely
// misses those exact tokens (wrong case, informal aliases, truncated type
// names, deprecated field names). This package maps such input onto the exact
// schema tokens where the mapping is unambiguous, and fails with an
// actionable message where it is not:
//
//   - Category: upper-cased, informal aliases resolved (RACE -> RACE_A),
//     never guessed beyond the static alias table.
//   - Sport type: case-insensitive exact match first, then bidirectional
//     substring matching ("trail" -> TrailRun); ambiguous or unknown input
//     is rejected with candidates or examples.
//   - Start date: YYYY-MM-DD, YYYY-MM-DDTHH:MM and YYYY-MM-DDTHH:MM:SS are
//     all canonicalized to YYYY-MM-DDTHH:MM:SS.
//   - Field names: deprecated keys are renamed to their canonical API field;
//     an already-present canonical key always wins.
//
// All functions are pure and operate on static read-only tables; they may be
// called concurrently without coordination.
package normalize
