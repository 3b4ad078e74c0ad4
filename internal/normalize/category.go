package normalize

import (
	"slices"
	"strings"
)

// Categories is the closed set of event categories the Intervals.icu API
// accepts. Every event carries exactly one of these.
var Categories = []string{
	"WORKOUT", "RACE_A", "RACE_B", "RACE_C", "NOTE", "PLAN",
	"HOLIDAY", "SICK", "INJURED", "SET_EFTP", "FITNESS_DAYS",
	"SEASON_START", "TARGET", "SET_FITNESS",
}

// categoryAliases maps common informal category tokens to the canonical
// category the API requires. Targets must be members of Categories.
var categoryAliases = map[string]string{
	"RACE":   "RACE_A",
	"GOAL":   "TARGET",
	"REST":   "HOLIDAY",
	"INJURY": "INJURED",
	"FTP":    "SET_EFTP",
}

const categoryAliasHint = "Common aliases: RACE→RACE_A, GOAL→TARGET, REST→HOLIDAY, INJURY→INJURED, FTP→SET_EFTP."

// Category normalizes an event category, auto-correcting the known informal
// aliases. It returns the canonical upper-cased category, or a
// *ValidationError enumerating the valid set when the input is unknown.
// Unknown categories are never guessed.
func Category(category string) (string, error) {
	upper := strings.ToUpper(category)
	if canonical, ok := categoryAliases[upper]; ok {
		return canonical, nil
	}
	if slices.Contains(Categories, upper) {
		return upper, nil
	}
	return "", validationErrorf("invalid category %q. Must be one of: %s. %s",
		category, strings.Join(Categories, ", "), categoryAliasHint)
}

// CategoryAlias reports the canonical category for a known informal token.
// The lookup is case-insensitive.
func CategoryAlias(category string) (string, bool) {
	canonical, ok := categoryAliases[strings.ToUpper(category)]
	return canonical, ok
}

// IsCategory reports whether the upper-cased input is a canonical category.
func IsCategory(category string) bool {
	return slices.Contains(Categories, strings.ToUpper(category))
}
