package diagnose

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teemow/intervals-mcp/internal/normalize"
	"github.com/teemow/intervals-mcp/internal/response"
)

// Result is the outcome of analyzing a rejected event payload: a top-level
// message, an error classification tag, and an ordered list of plain-language
// corrections for the caller to apply. It is produced once per rejected
// request and never merged across requests.
type Result struct {
	Message     string
	ErrorType   string
	Suggestions []string
}

// check inspects one aspect of the payload and returns zero or more
// suggestions. Checks never mutate the payload.
type check func(payload map[string]any) []string

// checks run in this order; all of them run and their findings accumulate.
var checks = []check{
	checkFieldNames,
	checkCategory,
	checkStartDate,
	checkSportType,
	checkMovingTime,
	checkDistance,
	checkWorkoutDoc,
	checkRequiredFields,
}

// Event analyzes the payload of a request the API rejected with a validation
// error. responseText is the raw upstream response body, used verbatim in the
// fallback when no specific issue is found.
func Event(payload any, responseText string) Result {
	obj, ok := payload.(map[string]any)
	if !ok {
		// No field-level check is meaningful on a non-object payload.
		return Result{
			Message: fmt.Sprintf("The event payload must be a JSON object, not a %s. "+
				"Build an object with keys like 'start_date_local', 'name', 'category', 'type'.",
				jsonTypeName(payload)),
			ErrorType: response.TypeValidationError,
			Suggestions: []string{
				"Payload must be a JSON object with string keys.",
				"Required keys: start_date_local, name, category.",
				`Example: {"start_date_local": "2026-03-01", "name": "Easy Ride", "category": "WORKOUT", "type": "Ride"}`,
			},
		}
	}

	var suggestions []string
	for _, c := range checks {
		suggestions = append(suggestions, c(obj)...)
	}

	if len(suggestions) == 0 {
		suggestions = fallbackSuggestions(responseText)
	}

	return Result{
		Message: fmt.Sprintf("Intervals.icu rejected the event request. Found %d issue(s) to fix.",
			len(suggestions)),
		ErrorType:   response.TypeAPIValidationError,
		Suggestions: suggestions,
	}
}

// checkFieldNames flags keys that are known aliases of a canonical field, or
// entirely unknown to the events endpoint. Keys are visited in sorted order
// so the suggestion list is stable.
func checkFieldNames(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var suggestions []string
	for _, key := range keys {
		if correct, ok := normalize.FieldAlias(key); ok {
			suggestions = append(suggestions,
				fmt.Sprintf("Field '%s' is not a valid API field. Use '%s' instead.", key, correct))
		} else if !normalize.IsValidEventField(key) {
			suggestions = append(suggestions,
				fmt.Sprintf("Unknown field '%s'. Valid fields: %s.",
					key, strings.Join(normalize.ValidEventFields(), ", ")))
		}
	}
	return suggestions
}

func checkCategory(payload map[string]any) []string {
	cat, ok := payload["category"].(string)
	if !ok || cat == "" {
		return nil
	}
	if normalize.IsCategory(cat) {
		return nil
	}
	if canonical, ok := normalize.CategoryAlias(cat); ok {
		return []string{fmt.Sprintf("Category '%s' is invalid. Use '%s' instead.", cat, canonical)}
	}
	return []string{fmt.Sprintf("Category '%s' is not valid. Must be one of: %s. "+
		"Common mappings: RACE→RACE_A, GOAL→TARGET, REST→HOLIDAY, INJURY→INJURED, FTP→SET_EFTP.",
		cat, strings.Join(normalize.Categories, ", "))}
}

// startDateLayouts are the exact forms the events endpoint accepts for
// start_date_local. The check replays these rather than the lenient tool-side
// parser, so input like "2026-03-01 14:00" still draws a format correction.
var startDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func isAcceptedStartDate(s string) bool {
	for _, layout := range startDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func checkStartDate(payload map[string]any) []string {
	if dateVal, ok := payload["start_date_local"].(string); ok && dateVal != "" {
		if !isAcceptedStartDate(dateVal) {
			return []string{fmt.Sprintf("Date '%s' has invalid format. Use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS. "+
				"Example: '2026-03-01' or '2026-03-01T14:00:00'.", dateVal)}
		}
		return nil
	}

	_, hasLocal := payload["start_date_local"]
	_, hasBare := payload["start_date"]
	switch {
	case hasBare && !hasLocal:
		return []string{"Missing 'start_date_local'. The API requires 'start_date_local', not 'start_date'. Rename the field."}
	case !hasLocal:
		return []string{"Missing required field 'start_date_local'. Every event needs a date in YYYY-MM-DD format."}
	}
	return nil
}

func checkSportType(payload map[string]any) []string {
	typeVal, ok := payload["type"].(string)
	if !ok || typeVal == "" {
		return nil
	}
	if normalize.IsSportType(typeVal) {
		return nil
	}
	if candidates := normalize.SportTypeCandidates(typeVal); len(candidates) > 0 {
		return []string{fmt.Sprintf("Activity type '%s' may not be valid. Did you mean: %s?",
			typeVal, strings.Join(candidates, ", "))}
	}
	return []string{fmt.Sprintf("Activity type '%s' is not recognized. "+
		"Common types: Ride, Run, Swim, VirtualRide, GravelRide, TrailRun, WeightTraining, Hike.", typeVal)}
}

func checkMovingTime(payload map[string]any) []string {
	mt, ok := payload["moving_time"]
	if !ok || mt == nil || isNumeric(mt) {
		return nil
	}
	return []string{fmt.Sprintf("'moving_time' must be an integer (seconds), got %s. "+
		"Examples: 3600=1h, 5400=1.5h, 7200=2h.", jsonTypeName(mt))}
}

func checkDistance(payload map[string]any) []string {
	dist, ok := payload["distance"]
	if !ok || dist == nil || isNumeric(dist) {
		return nil
	}
	return []string{fmt.Sprintf("'distance' must be a number (meters), got %s. "+
		"Examples: 40000=40km, 100000=100km.", jsonTypeName(dist))}
}

func checkWorkoutDoc(payload map[string]any) []string {
	wd, ok := payload["workout_doc"]
	if !ok || wd == nil {
		return nil
	}
	doc, isObject := wd.(map[string]any)
	if !isObject {
		return []string{`'workout_doc' must be a JSON object. Example: {"description": "Warmup\n- 10m ramp 45-55%", "steps": []}`}
	}
	_, hasDescription := doc["description"]
	_, hasSteps := doc["steps"]
	if !hasDescription && !hasSteps {
		return []string{"'workout_doc' should contain 'description' (text format) and/or 'steps' (array). " +
			`For text-based workouts, use: {"description": "workout text here", "steps": []}`}
	}
	return nil
}

func checkRequiredFields(payload map[string]any) []string {
	var suggestions []string
	if _, ok := payload["name"]; !ok {
		suggestions = append(suggestions, "Missing required field 'name'. Every event needs a name.")
	}
	if _, ok := payload["category"]; !ok {
		suggestions = append(suggestions,
			"Missing required field 'category'. Use WORKOUT for training, NOTE for notes, RACE_A for races, etc.")
	}
	return suggestions
}

// fallbackSuggestions is the generic guidance returned when every specific
// check passed yet the API still said no. The raw upstream response is
// included verbatim so the caller sees what the server actually objected to.
func fallbackSuggestions(responseText string) []string {
	return []string{
		"The Intervals.icu API rejected this request. Check that all field names and values match the expected format.",
		fmt.Sprintf("Required fields: start_date_local (YYYY-MM-DD), name (string), category (%s...).",
			strings.Join(normalize.Categories[:5], ", ")),
		"Optional fields: type (Ride/Run/Swim), moving_time (seconds), distance (meters), description (string), workout_doc (object).",
		fmt.Sprintf("API response: %s", responseText),
	}
}

// isNumeric reports whether v is a JSON-compatible numeric value. Payloads
// decoded from JSON carry float64, while payloads built in process may carry
// any Go integer type.
func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// jsonTypeName names a value's type in JSON vocabulary, for messages read by
// an agent that thinks in JSON rather than Go types.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		if isNumeric(v) {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}
