package icu

import "fmt"

// Event represents a calendar event on the Intervals.icu athlete calendar.
// Optional numeric fields are pointers so a zero value can be told apart
// from an absent one.
type Event struct {
	ID              int            `json:"id,omitempty"`
	StartDateLocal  string         `json:"start_date_local,omitempty"`
	EndDateLocal    string         `json:"end_date_local,omitempty"`
	Name            string         `json:"name,omitempty"`
	Category        string         `json:"category,omitempty"`
	Type            string         `json:"type,omitempty"`
	Description     string         `json:"description,omitempty"`
	MovingTime      *int           `json:"moving_time,omitempty"`
	Distance        *float64       `json:"distance,omitempty"`
	TrainingLoad    *int           `json:"icu_training_load,omitempty"`
	Indoor          *bool          `json:"indoor,omitempty"`
	Color           string         `json:"color,omitempty"`
	ExternalID      string         `json:"external_id,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	WorkoutDoc      map[string]any `json:"workout_doc,omitempty"`
	Target          string         `json:"target,omitempty"`
	SubType         string         `json:"sub_type,omitempty"`
	CarbsPerHour    *float64       `json:"carbs_per_hour,omitempty"`
	HideFromAthlete *bool          `json:"hide_from_athlete,omitempty"`
	PairedActivity  string         `json:"paired_activity_id,omitempty"`
}

// Activity is the subset of an Intervals.icu activity the client creates or
// returns when marking a planned event as done.
type Activity struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name,omitempty"`
	Type           string   `json:"type,omitempty"`
	StartDateLocal string   `json:"start_date_local,omitempty"`
	MovingTime     *int     `json:"moving_time,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	TrainingLoad   *int     `json:"icu_training_load,omitempty"`
}

// SportSettings holds the per-sport threshold configuration for an athlete.
// PaceThreshold is minutes per kilometer, SwimThreshold minutes per 100m.
type SportSettings struct {
	ID            int      `json:"id,omitempty"`
	Type          string   `json:"type,omitempty"`
	FTP           *int     `json:"ftp,omitempty"`
	FTHR          *int     `json:"fthr,omitempty"`
	PaceThreshold *float64 `json:"pace_threshold,omitempty"`
	SwimThreshold *float64 `json:"swim_threshold,omitempty"`
}

// BulkDeleteResult reports the outcome of deleting several events in one
// call. Failures do not abort the remaining deletions.
type BulkDeleteResult struct {
	Deleted []int               `json:"deleted"`
	Failed  []BulkDeleteFailure `json:"failed,omitempty"`
}

// BulkDeleteFailure records one event that could not be deleted.
type BulkDeleteFailure struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// APIError is returned when Intervals.icu answers with a non-success status.
// ResponseText is the raw body, and RequestPayload (when the request carried
// one) is the exact payload that was sent, kept for diagnosis.
type APIError struct {
	StatusCode     int
	Message        string
	ResponseText   string
	RequestPayload any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intervals.icu API error (status %d): %s", e.StatusCode, e.Message)
}

// IsClientValidation reports whether the error is a request-validation
// rejection worth running through the diagnostic engine.
func (e *APIError) IsClientValidation() bool {
	return e.StatusCode == 400
}
