package normalize

import (
	"strings"
	"time"
)

// WireDateTime is the date-time layout the events endpoint requires for
// start_date_local. It carries no timezone: Intervals.icu interprets it in
// the athlete's local time.
const WireDateTime = "2006-01-02T15:04:05"

// dateTimeLayouts are tried in priority order when the input carries a time
// component: full layout first, then the seconds-less form.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// StartDateLocal canonicalizes a date or date-time string to the WireDateTime
// form. Accepted inputs are YYYY-MM-DD (time defaults to midnight),
// YYYY-MM-DDTHH:MM:SS, and YYYY-MM-DDTHH:MM (seconds default to zero).
// Anything else fails with a *ValidationError naming the offending string;
// malformed time components are never truncated to a bare date.
func StartDateLocal(s string) (string, error) {
	if strings.Contains(s, "T") {
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(WireDateTime), nil
			}
		}
	} else {
		d := s
		if len(d) > 10 {
			d = d[:10]
		}
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return t.Format(WireDateTime), nil
		}
	}
	return "", validationErrorf("invalid date format %q. Use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS.", s)
}

// BareDate validates a plain YYYY-MM-DD string, as required by operations
// that address a calendar day rather than a point in time.
func BareDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return validationErrorf("invalid date format %q. Use YYYY-MM-DD (e.g. '2026-03-01').", s)
	}
	return nil
}
