package icu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://intervals.icu"

// basicAuthUser is the fixed username the API expects alongside the key.
const basicAuthUser = "API_KEY"

// Client talks to the Intervals.icu API for a single athlete.
type Client struct {
	baseURL    string
	athleteID  string
	apiKey     string
	httpClient *http.Client
	metrics    MetricsRecorder
}

// MetricsRecorder receives the outcome of every API request. Satisfied by
// *instrumentation.Provider.
type MetricsRecorder interface {
	RecordAPIRequest(operation, status string)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetricsRecorder wires per-request outcome recording.
func WithMetricsRecorder(r MetricsRecorder) ClientOption {
	return func(c *Client) { c.metrics = r }
}

// NewClient creates a client for the given athlete and API key.
func NewClient(athleteID, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		athleteID: athleteID,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AthleteID returns the athlete this client is associated with.
func (c *Client) AthleteID() string {
	return c.athleteID
}

// do performs one API request and records its outcome under op. path is
// relative to /api/v1/athlete/{id}. payload (when non-nil) is sent as JSON
// and attached to any resulting *APIError; out (when non-nil) receives the
// decoded response body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any, out any) error {
	err := c.send(ctx, method, path, query, payload, out)
	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordAPIRequest(op, status)
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	u := fmt.Sprintf("%s/api/v1/athlete/%s%s", c.baseURL, url.PathEscape(c.athleteID), path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to intervals.icu failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode:     resp.StatusCode,
			Message:        apiMessage(resp.StatusCode, respBody),
			ResponseText:   string(respBody),
			RequestPayload: payload,
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// apiMessage extracts a human-readable message from an error response body,
// falling back to the HTTP status text.
func apiMessage(status int, body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if len(body) > 0 && len(body) <= 200 {
		return string(body)
	}
	return http.StatusText(status)
}

// ListEventsOptions filters a calendar listing. Oldest and Newest are
// local dates in YYYY-MM-DD form.
type ListEventsOptions struct {
	Oldest   string
	Newest   string
	Category string
	Limit    int
}

// ListEvents lists calendar events in a date range.
func (c *Client) ListEvents(ctx context.Context, opts ListEventsOptions) ([]Event, error) {
	query := url.Values{}
	if opts.Oldest != "" {
		query.Set("oldest", opts.Oldest)
	}
	if opts.Newest != "" {
		query.Set("newest", opts.Newest)
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var events []Event
	if err := c.do(ctx, "list_events", http.MethodGet, "/events", query, nil, &events); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// GetEvent retrieves a single calendar event by ID.
func (c *Client) GetEvent(ctx context.Context, eventID int) (*Event, error) {
	var event Event
	if err := c.do(ctx, "get_event", http.MethodGet, fmt.Sprintf("/events/%d", eventID), nil, nil, &event); err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	return &event, nil
}

// CreateEvent creates a calendar event from an already-normalized payload.
func (c *Client) CreateEvent(ctx context.Context, payload map[string]any) (*Event, error) {
	var event Event
	if err := c.do(ctx, "create_event", http.MethodPost, "/events", nil, payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent applies a partial update to an existing event.
func (c *Client) UpdateEvent(ctx context.Context, eventID int, payload map[string]any) (*Event, error) {
	var event Event
	if err := c.do(ctx, "update_event", http.MethodPut, fmt.Sprintf("/events/%d", eventID), nil, payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes a calendar event.
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	if err := c.do(ctx, "delete_event", http.MethodDelete, fmt.Sprintf("/events/%d", eventID), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	return nil
}

// BulkCreateEvents creates several events in one request.
func (c *Client) BulkCreateEvents(ctx context.Context, payloads []map[string]any) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, "bulk_create_events", http.MethodPost, "/events/bulk", nil, payloads, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// BulkDeleteEvents deletes several events, continuing past individual
// failures. The result records which IDs were deleted and which failed.
func (c *Client) BulkDeleteEvents(ctx context.Context, eventIDs []int) (*BulkDeleteResult, error) {
	result := &BulkDeleteResult{Deleted: []int{}}
	for _, id := range eventIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.DeleteEvent(ctx, id); err != nil {
			result.Failed = append(result.Failed, BulkDeleteFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}
	return result, nil
}

// DuplicateEvent copies an existing event to a new local date. All other
// properties carry over; the copy gets its own ID.
func (c *Client) DuplicateEvent(ctx context.Context, eventID int, newDate string) (*Event, error) {
	original, err := c.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"start_date_local": newDate + "T00:00:00",
		"name":             original.Name,
		"category":         original.Category,
	}
	if original.Type != "" {
		payload["type"] = original.Type
	}
	if original.Description != "" {
		payload["description"] = original.Description
	}
	if original.MovingTime != nil {
		payload["moving_time"] = *original.MovingTime
	}
	if original.Distance != nil {
		payload["distance"] = *original.Distance
	}
	if original.TrainingLoad != nil {
		payload["icu_training_load"] = *original.TrainingLoad
	}
	if original.WorkoutDoc != nil {
		payload["workout_doc"] = original.WorkoutDoc
	}
	if len(original.Tags) > 0 {
		payload["tags"] = original.Tags
	}

	return c.CreateEvent(ctx, payload)
}

// MarkEventDone marks a planned event as completed by creating a matching
// manual activity. The returned activity pairs with the event on the
// calendar.
func (c *Client) MarkEventDone(ctx context.Context, eventID int) (*Activity, error) {
	event, err := c.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":             event.Name,
		"start_date_local": event.StartDateLocal,
	}
	if event.Type != "" {
		payload["type"] = event.Type
	}
	if event.MovingTime != nil {
		payload["moving_time"] = *event.MovingTime
	}
	if event.Distance != nil {
		payload["distance"] = *event.Distance
	}
	if event.TrainingLoad != nil {
		payload["icu_training_load"] = *event.TrainingLoad
	}

	var activity Activity
	if err := c.do(ctx, "create_activity", http.MethodPost, "/activities/manual", nil, payload, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListSportSettings lists all per-sport settings groups for the athlete.
func (c *Client) ListSportSettings(ctx context.Context) ([]SportSettings, error) {
	var settings []SportSettings
	if err := c.do(ctx, "list_sport_settings", http.MethodGet, "/sport-settings", nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("failed to list sport settings: %w", err)
	}
	return settings, nil
}

// GetSportSettings retrieves one settings group by ID.
func (c *Client) GetSportSettings(ctx context.Context, settingsID int) (*SportSettings, error) {
	var settings SportSettings
	if err := c.do(ctx, "get_sport_settings", http.MethodGet, fmt.Sprintf("/sport-settings/%d", settingsID), nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("failed to get sport settings %d: %w", settingsID, err)
	}
	return &settings, nil
}

// CreateSportSettings creates a settings group from a payload of threshold
// and zone fields.
func (c *Client) CreateSportSettings(ctx context.Context, payload map[string]any) (*SportSettings, error) {
	var settings SportSettings
	if err := c.do(ctx, "create_sport_settings", http.MethodPost, "/sport-settings", nil, payload, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSportSettings applies a partial update to a settings group.
func (c *Client) UpdateSportSettings(ctx context.Context, settingsID int, payload map[string]any) (*SportSettings, error) {
	var settings SportSettings
	if err := c.do(ctx, "update_sport_settings", http.MethodPut, fmt.Sprintf("/sport-settings/%d", settingsID), nil, payload, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// DeleteSportSettings removes a settings group.
func (c *Client) DeleteSportSettings(ctx context.Context, settingsID int) error {
	if err := c.do(ctx, "delete_sport_settings", http.MethodDelete, fmt.Sprintf("/sport-settings/%d", settingsID), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete sport settings %d: %w", settingsID, err)
	}
	return nil
}

// ApplySportSettings recalculates zones and training load for historical
// activities using the settings group, from the given local date forward.
func (c *Client) ApplySportSettings(ctx context.Context, settingsID int, oldestDate string) error {
	query := url.Values{}
	if oldestDate != "" {
		query.Set("oldest", oldestDate)
	}
	if err := c.do(ctx, "apply_sport_settings", http.MethodPut, fmt.Sprintf("/sport-settings/%d/apply", settingsID), query, nil, nil); err != nil {
		return fmt.Errorf("failed to apply sport settings %d: %w", settingsID, err)
	}
	return nil
}
