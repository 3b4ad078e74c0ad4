package diagnose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suggestionContaining returns the first suggestion containing substr, or "".
func suggestionContaining(r Result, substr string) string {
	for _, s := range r.Suggestions {
		if strings.Contains(s, substr) {
			return s
		}
	}
	return ""
}

func TestEventAccumulatesAllIssues(t *testing.T) {
	// Three independent problems must all surface in a single pass: the
	// misnamed date field, the category alias, and the missing name.
	result := Event(map[string]any{
		"start_date": "2025-12-08",
		"category":   "RACE",
	}, `{"error": "bad request"}`)

	assert.Equal(t, "api_validation_error", result.ErrorType)
	require.GreaterOrEqual(t, len(result.Suggestions), 3)

	assert.Contains(t, suggestionContaining(result, "'start_date'"), "start_date_local")
	assert.Contains(t, suggestionContaining(result, "'RACE'"), "RACE_A")
	assert.NotEmpty(t, suggestionContaining(result, "Missing required field 'name'"))
}

func TestEventNonObjectPayload(t *testing.T) {
	for _, payload := range []any{"a string", []any{1, 2}, 42.0, nil, true} {
		result := Event(payload, "ignored")

		assert.Equal(t, "validation_error", result.ErrorType)
		assert.Contains(t, result.Message, "must be a JSON object")
		assert.Len(t, result.Suggestions, 3)
	}
}

func TestEventNonObjectNamesJSONType(t *testing.T) {
	result := Event([]any{}, "")
	assert.Contains(t, result.Message, "array")

	result = Event("x", "")
	assert.Contains(t, result.Message, "string")
}

func TestEventFieldAliases(t *testing.T) {
	result := Event(map[string]any{
		"duration": 3600,
		"tss":      80,
		"title":    "Morning Ride",
	}, "")

	assert.Contains(t, suggestionContaining(result, "'duration'"), "moving_time")
	assert.Contains(t, suggestionContaining(result, "'tss'"), "icu_training_load")
	assert.Contains(t, suggestionContaining(result, "'title'"), "name")
}

func TestEventUnknownField(t *testing.T) {
	result := Event(map[string]any{"wattage": 250}, "")

	s := suggestionContaining(result, "Unknown field 'wattage'")
	require.NotEmpty(t, s)
	assert.Contains(t, s, "Valid fields:")
	assert.Contains(t, s, "start_date_local")
}

func TestEventFieldSuggestionsSorted(t *testing.T) {
	result := Event(map[string]any{
		"zebra_field": 1,
		"alpha_field": 2,
	}, "")

	alpha := suggestionContaining(result, "alpha_field")
	zebra := suggestionContaining(result, "zebra_field")
	require.NotEmpty(t, alpha)
	require.NotEmpty(t, zebra)

	var alphaIdx, zebraIdx int
	for i, s := range result.Suggestions {
		if s == alpha {
			alphaIdx = i
		}
		if s == zebra {
			zebraIdx = i
		}
	}
	assert.Less(t, alphaIdx, zebraIdx)
}

func TestEventCategoryUnknown(t *testing.T) {
	result := Event(map[string]any{"category": "PARTY"}, "")

	s := suggestionContaining(result, "'PARTY'")
	require.NotEmpty(t, s)
	assert.Contains(t, s, "WORKOUT")
	assert.Contains(t, s, "RACE→RACE_A")
}

func TestEventValidCategoryQuiet(t *testing.T) {
	result := Event(map[string]any{
		"category":         "WORKOUT",
		"start_date_local": "2026-03-01",
		"name":             "Easy Ride",
	}, `{"error": "something else"}`)

	// Nothing specific fires, so the fallback carries the raw response.
	assert.NotEmpty(t, suggestionContaining(result, "something else"))
}

func TestEventBadDate(t *testing.T) {
	result := Event(map[string]any{"start_date_local": "next tuesday"}, "")

	s := suggestionContaining(result, "'next tuesday'")
	require.NotEmpty(t, s)
	assert.Contains(t, s, "YYYY-MM-DD")
}

func TestEventDateWithSpaceSeparator(t *testing.T) {
	// The endpoint wants a "T" between date and time. A space-separated
	// datetime must draw the format correction, not the generic fallback.
	result := Event(map[string]any{
		"start_date_local": "2026-03-01 14:00",
		"name":             "Ride",
		"category":         "WORKOUT",
	}, "")

	s := suggestionContaining(result, "'2026-03-01 14:00'")
	require.NotEmpty(t, s)
	assert.Contains(t, s, "YYYY-MM-DDTHH:MM:SS")
}

func TestEventMissingDateEntirely(t *testing.T) {
	result := Event(map[string]any{"name": "Ride", "category": "WORKOUT"}, "")
	assert.NotEmpty(t, suggestionContaining(result, "Missing required field 'start_date_local'"))
}

func TestEventSportTypeFuzzy(t *testing.T) {
	result := Event(map[string]any{"type": "ride"}, "")

	s := suggestionContaining(result, "'ride'")
	require.NotEmpty(t, s)
	assert.Contains(t, s, "Did you mean")
	assert.Contains(t, s, "Ride")
}

func TestEventSportTypeUnrecognized(t *testing.T) {
	result := Event(map[string]any{"type": "quidditch"}, "")

	s := suggestionContaining(result, "'quidditch'")
	require.NotEmpty(t, s)
	assert.Contains(t, s, "Common types")
}

func TestEventNumericFields(t *testing.T) {
	result := Event(map[string]any{
		"moving_time": "1 hour",
		"distance":    "40km",
	}, "")

	assert.Contains(t, suggestionContaining(result, "'moving_time'"), "integer")
	assert.Contains(t, suggestionContaining(result, "'distance'"), "number")
}

func TestEventNumericFieldsAcceptNumbers(t *testing.T) {
	result := Event(map[string]any{
		"moving_time":      3600.0,
		"distance":         40000,
		"start_date_local": "2026-03-01",
		"name":             "Ride",
		"category":         "WORKOUT",
	}, "whatever")

	assert.Empty(t, suggestionContaining(result, "'moving_time'"))
	assert.Empty(t, suggestionContaining(result, "'distance'"))
}

func TestEventWorkoutDoc(t *testing.T) {
	result := Event(map[string]any{"workout_doc": "just a string"}, "")
	assert.NotEmpty(t, suggestionContaining(result, "'workout_doc' must be a JSON object"))

	result = Event(map[string]any{"workout_doc": map[string]any{"foo": 1}}, "")
	assert.NotEmpty(t, suggestionContaining(result, "'workout_doc' should contain"))

	// A well-formed doc draws no shape complaint. The payload is otherwise
	// valid, so only the generic fallback fires.
	result = Event(map[string]any{
		"workout_doc":      map[string]any{"description": "- 10m ramp", "steps": []any{}},
		"start_date_local": "2026-03-01",
		"name":             "Intervals",
		"category":         "WORKOUT",
	}, "x")
	assert.Empty(t, suggestionContaining(result, "'workout_doc' must"))
	assert.Empty(t, suggestionContaining(result, "'workout_doc' should"))
}

func TestEventFallbackIncludesResponseText(t *testing.T) {
	result := Event(map[string]any{
		"start_date_local": "2026-03-01",
		"name":             "Ride",
		"category":         "WORKOUT",
	}, `{"error": "duplicate external id"}`)

	assert.Equal(t, "api_validation_error", result.ErrorType)
	assert.NotEmpty(t, suggestionContaining(result, "duplicate external id"))
	assert.NotEmpty(t, suggestionContaining(result, "Required fields"))
}

func TestEventMessageCountsIssues(t *testing.T) {
	result := Event(map[string]any{"start_date": "2025-12-08", "category": "RACE"}, "")
	assert.Contains(t, result.Message, "issue(s)")
}
