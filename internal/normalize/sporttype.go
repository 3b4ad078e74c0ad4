package normalize

import (
	"slices"
	"strings"
)

// SportTypes is the closed set of activity types the API accepts, in the
// exact casing the API requires.
var SportTypes = []string{
	"Ride", "Run", "Swim", "WeightTraining", "Hike", "Walk",
	"AlpineSki", "BackcountrySki", "Canoeing", "Crossfit",
	"EBikeRide", "Elliptical", "Golf", "GravelRide",
	"Handcycle", "IceSkate", "InlineSkate", "Kayaking",
	"Kitesurf", "MountainBikeRide", "NordicSki", "RockClimbing",
	"RollerSki", "Rowing", "Snowboard", "Snowshoe",
	"StairStepper", "StandUpPaddling", "Surfing",
	"TrailRun", "VirtualRide", "VirtualRun", "Wheelchair",
	"Windsurf", "Workout", "Yoga", "Other",
}

// commonSportTypes is the curated subset shown in "unknown type" errors.
const commonSportTypes = "Ride, Run, Swim, VirtualRide, GravelRide, TrailRun, WeightTraining, Hike, Walk, Yoga, Other"

// MatchKind classifies the outcome of sport-type resolution.
type MatchKind int

const (
	// MatchResolved means the input maps to exactly one canonical type.
	MatchResolved MatchKind = iota
	// MatchAmbiguous means fuzzy matching produced multiple candidates.
	MatchAmbiguous
	// MatchUnknown means no canonical type matched at all.
	MatchUnknown
)

// Match is the outcome of resolving an activity-type string.
type Match struct {
	Kind       MatchKind
	Value      string   // canonical type, set when Kind is MatchResolved
	Candidates []string // fuzzy candidates, set when Kind is MatchAmbiguous
}

// SportTypeCandidates returns the canonical types related to the input by
// bidirectional substring containment: the lower-cased input is contained in
// the type, or the lower-cased type is contained in the input. This tolerates
// both truncated ("trail") and over-qualified ("indoor ride") input.
func SportTypeCandidates(input string) []string {
	lower := strings.ToLower(input)
	var candidates []string
	for _, t := range SportTypes {
		tl := strings.ToLower(t)
		if strings.Contains(tl, lower) || strings.Contains(lower, tl) {
			candidates = append(candidates, t)
		}
	}
	return candidates
}

// MatchSportType resolves an arbitrary activity-type string against the
// canonical set. A case-insensitive exact match always wins; only then are
// fuzzy substring candidates considered. A single fuzzy candidate resolves,
// several are reported as ambiguous, none as unknown.
func MatchSportType(input string) Match {
	lower := strings.ToLower(input)
	for _, t := range SportTypes {
		if strings.ToLower(t) == lower {
			return Match{Kind: MatchResolved, Value: t}
		}
	}

	candidates := SportTypeCandidates(input)
	switch len(candidates) {
	case 0:
		return Match{Kind: MatchUnknown}
	case 1:
		return Match{Kind: MatchResolved, Value: candidates[0]}
	default:
		return Match{Kind: MatchAmbiguous, Candidates: candidates}
	}
}

// SportType normalizes an activity type to its canonical casing, applying
// fuzzy matching for unrecognized input. Ambiguous and unknown input fail
// with a *ValidationError listing candidates or common examples.
func SportType(input string) (string, error) {
	switch m := MatchSportType(input); m.Kind {
	case MatchResolved:
		return m.Value, nil
	case MatchAmbiguous:
		return "", validationErrorf("ambiguous activity type %q. Did you mean one of: %s?",
			input, strings.Join(m.Candidates, ", "))
	default:
		return "", validationErrorf("unknown activity type %q. Valid types: %s. Use exact casing (e.g. 'Ride' not 'ride').",
			input, commonSportTypes)
	}
}

// IsSportType reports whether the input is a canonical type in its exact
// casing.
func IsSportType(input string) bool {
	return slices.Contains(SportTypes, input)
}
