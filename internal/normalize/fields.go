package normalize

import "sort"

// fieldAliases maps commonly-mistaken event field names to the canonical API
// field name. Order matters: when a payload carries several aliases of the
// same canonical key, the earliest listed alias supplies the value.
var fieldAliases = []struct {
	wrong   string
	correct string
}{
	{"start_date", "start_date_local"},
	{"date", "start_date_local"},
	{"duration", "moving_time"},
	{"duration_seconds", "moving_time"},
	{"time", "moving_time"},
	{"load", "icu_training_load"},
	{"training_load", "icu_training_load"},
	{"tss", "icu_training_load"},
	{"sport_type", "type"},
	{"activity_type", "type"},
	{"event_type", "type"},
	{"workout_type", "type"},
	{"distance_meters", "distance"},
	{"title", "name"},
}

// validEventFields is the closed set of field names the events endpoint
// accepts. Keys outside this set and outside fieldAliases are unknown.
var validEventFields = map[string]bool{
	"start_date_local": true, "end_date_local": true, "name": true,
	"category": true, "type": true, "description": true,
	"moving_time": true, "distance": true, "icu_training_load": true,
	"indoor": true, "color": true, "external_id": true, "tags": true,
	"workout_doc": true, "athlete_cannot_edit": true,
	"hide_from_athlete": true, "target": true, "carbs_per_hour": true,
	"sub_type": true, "not_on_fitness_chart": true,
}

// CorrectFieldAliases rewrites known-wrong field names in the payload to
// their canonical API names, in place. When the canonical key is already
// present it wins and the deprecated key's value is dropped; either way the
// deprecated key is removed. Aliases are applied in declaration order, so the
// result is the same for every invocation. This is advisory normalization and
// never fails.
func CorrectFieldAliases(payload map[string]any) {
	for _, a := range fieldAliases {
		v, ok := payload[a.wrong]
		if !ok {
			continue
		}
		if _, exists := payload[a.correct]; !exists {
			payload[a.correct] = v
		}
		delete(payload, a.wrong)
	}
}

// FieldAlias reports the canonical replacement for a deprecated field name.
func FieldAlias(key string) (string, bool) {
	for _, a := range fieldAliases {
		if a.wrong == key {
			return a.correct, true
		}
	}
	return "", false
}

// IsValidEventField reports whether the events endpoint accepts the field.
func IsValidEventField(key string) bool {
	return validEventFields[key]
}

// ValidEventFields returns the accepted field names in sorted order, for
// inclusion in diagnostic messages.
func ValidEventFields() []string {
	fields := make([]string, 0, len(validEventFields))
	for f := range validEventFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
