package format

import (
	"testing"
	"time"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds *int
		want    string
	}{
		{"nil", nil, "0s"},
		{"negative", intPtr(-5), "0s"},
		{"zero", intPtr(0), "0s"},
		{"seconds only", intPtr(45), "45s"},
		{"minutes", intPtr(90), "1m 30s"},
		{"whole hour", intPtr(3600), "1h"},
		{"mixed", intPtr(8130), "2h 15m 30s"},
		{"hour and seconds", intPtr(3605), "1h 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.seconds); got != tt.want {
				t.Errorf("Duration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(floatPtr(40000), Metric); got != "40.00 km" {
		t.Errorf("metric = %q", got)
	}
	if got := Distance(floatPtr(1609.344), Imperial); got != "1.00 mi" {
		t.Errorf("imperial = %q", got)
	}
	if got := Distance(nil, Metric); got != "N/A" {
		t.Errorf("nil = %q", got)
	}
}

func TestElevationAndSpeed(t *testing.T) {
	if got := Elevation(floatPtr(1200), Metric); got != "1200 m" {
		t.Errorf("elevation metric = %q", got)
	}
	if got := Speed(floatPtr(10), Metric); got != "36.0 km/h" {
		t.Errorf("speed metric = %q", got)
	}
	if got := Speed(floatPtr(10), Imperial); got != "22.4 mph" {
		t.Errorf("speed imperial = %q", got)
	}
}

func TestPace(t *testing.T) {
	// 1000m in 270s is 4:30 /km
	mps := 1000.0 / 270.0
	if got := Pace(&mps, Metric); got != "4:30 /km" {
		t.Errorf("metric = %q", got)
	}
	if got := Pace(floatPtr(0), Metric); got != "N/A" {
		t.Errorf("zero speed = %q", got)
	}
	if got := Pace(nil, Imperial); got != "N/A" {
		t.Errorf("nil = %q", got)
	}
}

func TestPaceFromMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		suffix  string
		want    string
	}{
		{4.5, "/km", "4:30 /km"},
		{4.0, "/km", "4:00 /km"},
		{5.25, "/km", "5:15 /km"},
		{1.5, "/100m", "1:30 /100m"},
		{0.95, "/100m", "0:57 /100m"},
	}

	for _, tt := range tests {
		if got := PaceFromMinutes(tt.minutes, tt.suffix); got != tt.want {
			t.Errorf("PaceFromMinutes(%v, %q) = %q, want %q", tt.minutes, tt.suffix, got, tt.want)
		}
	}
}

func TestPowerHeartRateCadence(t *testing.T) {
	if got := Power(intPtr(250)); got != "250 W" {
		t.Errorf("power = %q", got)
	}
	if got := HeartRate(intPtr(142)); got != "142 bpm" {
		t.Errorf("heart rate = %q", got)
	}
	if got := Cadence(floatPtr(90), "Ride"); got != "90 rpm" {
		t.Errorf("ride cadence = %q", got)
	}
	if got := Cadence(floatPtr(172), "TrailRun"); got != "172 spm" {
		t.Errorf("run cadence = %q", got)
	}
}

func TestTSB(t *testing.T) {
	tests := []struct {
		tsb  float64
		want string
	}{
		{25, "+25.0 (Fresh)"},
		{10, "+10.0 (Recovered)"},
		{-5, "-5.0 (Optimal)"},
		{-20, "-20.0 (Fatigued)"},
		{-40, "-40.0 (Very Fatigued)"},
	}

	for _, tt := range tests {
		if got := TSB(&tt.tsb); got != tt.want {
			t.Errorf("TSB(%v) = %q, want %q", tt.tsb, got, tt.want)
		}
	}

	if got := TSB(nil); got != "N/A" {
		t.Errorf("nil = %q", got)
	}
}

func TestDate(t *testing.T) {
	if got := Date("2026-03-01T14:00:00", false); got != "2026-03-01" {
		t.Errorf("date only = %q", got)
	}
	if got := Date("2026-03-01T14:00:00", true); got != "2026-03-01 14:00" {
		t.Errorf("with time = %q", got)
	}
	if got := Date("2026-03-01T14:00:00Z", true); got != "2026-03-01 14:00" {
		t.Errorf("rfc3339 = %q", got)
	}
	if got := Date("not a date", false); got != "not a date" {
		t.Errorf("unparsable = %q", got)
	}
	if got := Date("", false); got != "N/A" {
		t.Errorf("empty = %q", got)
	}
}

func TestRelativeDate(t *testing.T) {
	restore := now
	defer func() { now = restore }()
	now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"2026-03-15T08:00:00Z", "Today"},
		{"2026-03-14T12:00:00Z", "Yesterday"},
		{"2026-03-12T12:00:00Z", "3 days ago"},
		{"2026-03-01T12:00:00Z", "2 weeks ago"},
		{"2026-01-15T12:00:00Z", "1 month ago"},
		{"2024-03-15T12:00:00Z", "2 years ago"},
	}

	for _, tt := range tests {
		if got := RelativeDate(tt.input); got != tt.want {
			t.Errorf("RelativeDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWeight(t *testing.T) {
	if got := Weight(floatPtr(70), Metric); got != "70.0 kg" {
		t.Errorf("metric = %q", got)
	}
	if got := Weight(floatPtr(70), Imperial); got != "154.3 lbs" {
		t.Errorf("imperial = %q", got)
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Errorf("empty = %v", got)
	}
	if got := Average([]float64{1, 2, 3}); got != 2 {
		t.Errorf("avg = %v", got)
	}
}

func TestFitnessTrends(t *testing.T) {
	got := FitnessTrends(floatPtr(65.2), floatPtr(72.1), floatPtr(9.5))
	want := "Fitness (CTL): 65.2 | Fatigue (ATL): 72.1 | Ramp rate high - risk of overtraining"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := FitnessTrends(nil, nil, nil); got != "No fitness data available" {
		t.Errorf("empty = %q", got)
	}

	if got := FitnessTrends(nil, nil, floatPtr(2)); got != "Sustainable training load" {
		t.Errorf("ramp only = %q", got)
	}
}
