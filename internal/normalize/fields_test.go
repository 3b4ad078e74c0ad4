package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectFieldAliasesRenames(t *testing.T) {
	payload := map[string]any{"duration": 3600}
	CorrectFieldAliases(payload)

	assert.Equal(t, map[string]any{"moving_time": 3600}, payload)
}

func TestCorrectFieldAliasesCanonicalWins(t *testing.T) {
	payload := map[string]any{"duration": 3600, "moving_time": 1800}
	CorrectFieldAliases(payload)

	// the canonical key keeps its value; the deprecated key is dropped
	assert.Equal(t, map[string]any{"moving_time": 1800}, payload)
}

func TestCorrectFieldAliasesMultiple(t *testing.T) {
	payload := map[string]any{
		"start_date": "2026-03-01",
		"title":      "Easy Ride",
		"tss":        55,
		"sport_type": "Ride",
		"name":       "Keep me",
	}
	CorrectFieldAliases(payload)

	assert.Equal(t, map[string]any{
		"start_date_local":  "2026-03-01",
		"icu_training_load": 55,
		"type":              "Ride",
		"name":              "Keep me", // canonical key wins over title alias
	}, payload)
}

func TestCorrectFieldAliasesNoAliases(t *testing.T) {
	payload := map[string]any{
		"start_date_local": "2026-03-01",
		"name":             "Race day",
		"category":         "RACE_A",
	}
	CorrectFieldAliases(payload)

	assert.Len(t, payload, 3)
}

func TestCorrectFieldAliasesDeterministic(t *testing.T) {
	// Two aliases of moving_time compete; the earlier declared alias must
	// supply the value on every run, regardless of map iteration order.
	for i := 0; i < 100; i++ {
		payload := map[string]any{"duration": 3600, "time": 1800}
		CorrectFieldAliases(payload)

		assert.Equal(t, map[string]any{"moving_time": 3600}, payload)
	}
}

func TestFieldAliasTargetsAreValid(t *testing.T) {
	for _, a := range fieldAliases {
		assert.True(t, IsValidEventField(a.correct),
			"alias %s maps to invalid field %s", a.wrong, a.correct)
		assert.False(t, IsValidEventField(a.wrong),
			"alias key %s must not itself be a valid field", a.wrong)
	}
}

func TestValidEventFieldsSorted(t *testing.T) {
	fields := ValidEventFields()
	assert.Len(t, fields, len(validEventFields))
	assert.IsIncreasing(t, fields)
}
