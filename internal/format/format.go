// Package format renders Intervals.icu metrics as human-readable strings.
//
// Values come from API responses where any field can be absent, so the
// formatters take pointers and render "N/A" for nil. Unit-carrying
// formatters accept a Unit to switch between metric and imperial output.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Unit selects the measurement system for unit-carrying formatters.
type Unit string

const (
	Metric   Unit = "metric"
	Imperial Unit = "imperial"
)

const notAvailable = "N/A"

// now is swapped out in tests for deterministic relative dates.
var now = time.Now

// Duration renders seconds as "2h 15m 30s", dropping zero components.
// Nil or negative input renders as "0s".
func Duration(seconds *int) string {
	if seconds == nil || *seconds < 0 {
		return "0s"
	}

	hours := *seconds / 3600
	minutes := (*seconds % 3600) / 60
	secs := *seconds % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

// Distance renders meters as kilometers or miles.
func Distance(meters *float64, unit Unit) string {
	if meters == nil {
		return notAvailable
	}
	if unit == Imperial {
		return fmt.Sprintf("%.2f mi", *meters/1609.344)
	}
	return fmt.Sprintf("%.2f km", *meters/1000)
}

// Elevation renders meters as meters or feet.
func Elevation(meters *float64, unit Unit) string {
	if meters == nil {
		return notAvailable
	}
	if unit == Imperial {
		return fmt.Sprintf("%.0f ft", *meters*3.28084)
	}
	return fmt.Sprintf("%.0f m", *meters)
}

// Speed renders meters per second as km/h or mph.
func Speed(metersPerSecond *float64, unit Unit) string {
	if metersPerSecond == nil {
		return notAvailable
	}
	if unit == Imperial {
		return fmt.Sprintf("%.1f mph", *metersPerSecond*2.23694)
	}
	return fmt.Sprintf("%.1f km/h", *metersPerSecond*3.6)
}

// Pace renders meters per second as minutes per kilometer or per mile,
// e.g. "4:30 /km". Zero speed has no finite pace and renders as "N/A".
func Pace(metersPerSecond *float64, unit Unit) string {
	if metersPerSecond == nil || *metersPerSecond == 0 {
		return notAvailable
	}
	if unit == Imperial {
		secondsPerMile := 1609.344 / *metersPerSecond
		return fmt.Sprintf("%d:%02d /mi", int(secondsPerMile)/60, int(secondsPerMile)%60)
	}
	secondsPerKm := 1000 / *metersPerSecond
	return fmt.Sprintf("%d:%02d /km", int(secondsPerKm)/60, int(secondsPerKm)%60)
}

// PaceFromMinutes renders a threshold pace stored as fractional minutes per
// unit, e.g. 4.5 with suffix "/km" becomes "4:30 /km". Sport settings store
// pace thresholds this way rather than as a speed.
func PaceFromMinutes(minutesPerUnit float64, suffix string) string {
	totalSeconds := int(minutesPerUnit * 60)
	return fmt.Sprintf("%d:%02d %s", totalSeconds/60, totalSeconds%60, suffix)
}

// Power renders watts as "250 W".
func Power(watts *int) string {
	if watts == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d W", *watts)
}

// HeartRate renders beats per minute as "142 bpm".
func HeartRate(bpm *int) string {
	if bpm == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d bpm", *bpm)
}

// Cadence renders revolutions per minute, switching to steps per minute for
// running activity types.
func Cadence(rpm *float64, activityType string) string {
	if rpm == nil {
		return notAvailable
	}
	if strings.Contains(activityType, "Run") {
		return fmt.Sprintf("%.0f spm", *rpm)
	}
	return fmt.Sprintf("%.0f rpm", *rpm)
}

// TrainingLoad renders a training load value.
func TrainingLoad(load *int) string {
	if load == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *load)
}

// Intensity renders an intensity factor such as 0.85.
func Intensity(intensity *float64) string {
	if intensity == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", *intensity)
}

// TSB renders Training Stress Balance with a freshness interpretation,
// e.g. "-12.5 (Fatigued)".
func TSB(tsb *float64) string {
	if tsb == nil {
		return notAvailable
	}

	var status string
	switch {
	case *tsb > 20:
		status = "Fresh"
	case *tsb > 5:
		status = "Recovered"
	case *tsb > -10:
		status = "Optimal"
	case *tsb > -30:
		status = "Fatigued"
	default:
		status = "Very Fatigued"
	}
	return fmt.Sprintf("%+.1f (%s)", *tsb, status)
}

// Weight renders kilograms as kg or lbs.
func Weight(kg *float64, unit Unit) string {
	if kg == nil {
		return notAvailable
	}
	if unit == Imperial {
		return fmt.Sprintf("%.1f lbs", *kg*2.20462)
	}
	return fmt.Sprintf("%.1f kg", *kg)
}

// dateLayouts are the forms timestamps appear in across API responses.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses a timestamp in any of the accepted layouts.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders a timestamp string as "2026-03-01", or "2026-03-01 14:00"
// when includeTime is set. Unparsable input is returned unchanged.
func Date(s string, includeTime bool) string {
	if s == "" {
		return notAvailable
	}
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	if includeTime {
		return t.Format("2006-01-02 15:04")
	}
	return t.Format("2006-01-02")
}

// RelativeDate renders a past timestamp relative to now, e.g. "2 days ago".
// Unparsable input is returned unchanged.
func RelativeDate(s string) string {
	if s == "" {
		return notAvailable
	}
	t, ok := parseDate(s)
	if !ok {
		return s
	}

	days := int(now().Sub(t).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// Average returns the mean of values, or 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// FitnessTrends summarizes fitness (CTL), fatigue (ATL), and ramp rate into
// one human-readable line.
func FitnessTrends(ctl, atl, rampRate *float64) string {
	var parts []string

	if ctl != nil {
		parts = append(parts, fmt.Sprintf("Fitness (CTL): %.1f", *ctl))
	}
	if atl != nil {
		parts = append(parts, fmt.Sprintf("Fatigue (ATL): %.1f", *atl))
	}
	if rampRate != nil {
		switch {
		case *rampRate > 8:
			parts = append(parts, "Ramp rate high - risk of overtraining")
		case *rampRate > 5:
			parts = append(parts, "Ramp rate moderate - monitor fatigue")
		case *rampRate < -5:
			parts = append(parts, "Fitness declining")
		default:
			parts = append(parts, "Sustainable training load")
		}
	}

	if len(parts) == 0 {
		return "No fitness data available"
	}
	return strings.Join(parts, " | ")
}
