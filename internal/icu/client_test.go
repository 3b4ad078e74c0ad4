package icu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("i12345", "test-key", WithBaseURL(srv.URL))
}

func TestClientAuthAndPath(t *testing.T) {
	var gotPath, gotUser, gotPass string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`[]`))
	})

	_, err := c.ListEvents(context.Background(), ListEventsOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/athlete/i12345/events", gotPath)
	assert.Equal(t, "API_KEY", gotUser)
	assert.Equal(t, "test-key", gotPass)
}

func TestListEventsQueryParams(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id": 1, "name": "Easy Ride", "category": "WORKOUT"}]`))
	})

	events, err := c.ListEvents(context.Background(), ListEventsOptions{
		Oldest:   "2026-03-01",
		Newest:   "2026-03-31",
		Category: "WORKOUT",
		Limit:    50,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].ID)
	assert.Equal(t, "Easy Ride", events[0].Name)
	assert.Contains(t, gotQuery, "oldest=2026-03-01")
	assert.Contains(t, gotQuery, "newest=2026-03-31")
	assert.Contains(t, gotQuery, "category=WORKOUT")
	assert.Contains(t, gotQuery, "limit=50")
}

func TestCreateEventSendsPayload(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id": 42, "name": "Intervals", "category": "WORKOUT"}`))
	})

	event, err := c.CreateEvent(context.Background(), map[string]any{
		"start_date_local": "2026-03-01T00:00:00",
		"name":             "Intervals",
		"category":         "WORKOUT",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, event.ID)
	assert.Equal(t, "Intervals", gotBody["name"])
}

func TestCreateEventValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "start_date_local is required"}`))
	})

	payload := map[string]any{"name": "Ride"}
	_, err := c.CreateEvent(context.Background(), payload)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.True(t, apiErr.IsClientValidation())
	assert.Equal(t, "start_date_local is required", apiErr.Message)
	assert.Contains(t, apiErr.ResponseText, "start_date_local")
	assert.Equal(t, payload, apiErr.RequestPayload)
}

func TestServerErrorNotClientValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})

	_, err := c.GetEvent(context.Background(), 7)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.False(t, apiErr.IsClientValidation())
	assert.Equal(t, "oops", apiErr.Message)
}

func TestUpdateEventUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/athlete/i12345/events/99", r.URL.Path)
		w.Write([]byte(`{"id": 99, "name": "Renamed"}`))
	})

	event, err := c.UpdateEvent(context.Background(), 99, map[string]any{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", event.Name)
}

func TestDeleteEvent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/athlete/i12345/events/5", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.DeleteEvent(context.Background(), 5))
}

func TestBulkCreateEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/athlete/i12345/events/bulk", r.URL.Path)
		var payloads []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payloads))
		assert.Len(t, payloads, 2)
		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	})

	events, err := c.BulkCreateEvents(context.Background(), []map[string]any{
		{"name": "A", "category": "WORKOUT", "start_date_local": "2026-03-01T00:00:00"},
		{"name": "B", "category": "WORKOUT", "start_date_local": "2026-03-02T00:00:00"},
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[1].ID)
}

func TestBulkDeleteEventsContinuesPastFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/athlete/i12345/events/2" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	result, err := c.BulkDeleteEvents(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, result.Deleted)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 2, result.Failed[0].ID)
	assert.Contains(t, result.Failed[0].Reason, "not found")
}

func TestDuplicateEventCopiesProperties(t *testing.T) {
	movingTime := 3600
	var created map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(Event{
				ID:             10,
				StartDateLocal: "2026-03-01T00:00:00",
				Name:           "Tempo Run",
				Category:       "WORKOUT",
				Type:           "Run",
				MovingTime:     &movingTime,
			})
		case r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.Write([]byte(`{"id": 11, "name": "Tempo Run"}`))
		}
	})

	event, err := c.DuplicateEvent(context.Background(), 10, "2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, 11, event.ID)
	assert.Equal(t, "2026-03-08T00:00:00", created["start_date_local"])
	assert.Equal(t, "Tempo Run", created["name"])
	assert.Equal(t, "Run", created["type"])
	assert.EqualValues(t, 3600, created["moving_time"])
}

func TestMarkEventDoneCreatesActivity(t *testing.T) {
	var activityPayload map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/athlete/i12345/events/20":
			w.Write([]byte(`{"id": 20, "name": "Long Ride", "type": "Ride", "start_date_local": "2026-03-01T09:00:00", "moving_time": 7200}`))
		case "/api/v1/athlete/i12345/activities/manual":
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&activityPayload))
			w.Write([]byte(`{"id": "a1", "name": "Long Ride", "type": "Ride"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	activity, err := c.MarkEventDone(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, "a1", activity.ID)
	assert.Equal(t, "Long Ride", activityPayload["name"])
	assert.EqualValues(t, 7200, activityPayload["moving_time"])
}

type recordedRequest struct {
	operation string
	status    string
}

// requestRecorder captures RecordAPIRequest calls for assertions.
type requestRecorder struct {
	requests []recordedRequest
}

func (r *requestRecorder) RecordAPIRequest(operation, status string) {
	r.requests = append(r.requests, recordedRequest{operation, status})
}

func TestClientRecordsRequestOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/v1/athlete/i12345/events/404" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	recorder := &requestRecorder{}
	c := NewClient("i12345", "test-key", WithBaseURL(srv.URL), WithMetricsRecorder(recorder))

	_, err := c.ListEvents(context.Background(), ListEventsOptions{})
	require.NoError(t, err)

	_, err = c.GetEvent(context.Background(), 404)
	require.Error(t, err)

	assert.Equal(t, []recordedRequest{
		{"list_events", "success"},
		{"get_event", "error"},
	}, recorder.requests)
}

func TestSportSettingsRoundTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/athlete/i12345/sport-settings" && r.Method == http.MethodGet:
			w.Write([]byte(`[{"id": 1, "type": "Ride", "ftp": 250}]`))
		case r.URL.Path == "/api/v1/athlete/i12345/sport-settings/1" && r.Method == http.MethodPut:
			w.Write([]byte(`{"id": 1, "type": "Ride", "ftp": 260}`))
		case r.URL.Path == "/api/v1/athlete/i12345/sport-settings/1/apply":
			assert.Equal(t, "oldest=2026-01-01", r.URL.RawQuery)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()

	all, err := c.ListSportSettings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].FTP)
	assert.Equal(t, 250, *all[0].FTP)

	updated, err := c.UpdateSportSettings(ctx, 1, map[string]any{"ftp": 260})
	require.NoError(t, err)
	assert.Equal(t, 260, *updated.FTP)

	require.NoError(t, c.ApplySportSettings(ctx, 1, "2026-01-01"))
}
