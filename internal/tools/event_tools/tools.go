package event_tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/diagnose"
	"github.com/teemow/intervals-mcp/internal/format"
	"github.com/teemow/intervals-mcp/internal/icu"
	"github.com/teemow/intervals-mcp/internal/normalize"
	"github.com/teemow/intervals-mcp/internal/response"
	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/tools/common"
)

// getClient retrieves the Intervals.icu client from the server context.
func getClient(sc *server.ServerContext) (*icu.Client, *mcp.CallToolResult) {
	client, err := sc.Client()
	if err != nil {
		return nil, mcp.NewToolResultError(response.BuildError(err.Error(), response.TypeInternalError))
	}
	return client, nil
}

// toolError converts an upstream failure into an error envelope. Validation
// rejections are run through the diagnostic engine so the agent gets every
// correction at once.
func toolError(err error) *mcp.CallToolResult {
	var apiErr *icu.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsClientValidation() {
			d := diagnose.Event(apiErr.RequestPayload, apiErr.ResponseText)
			return mcp.NewToolResultError(response.BuildError(d.Message, d.ErrorType, d.Suggestions...))
		}
		return mcp.NewToolResultError(response.BuildError(apiErr.Message, response.TypeAPIError))
	}
	return mcp.NewToolResultError(response.BuildError(
		fmt.Sprintf("Unexpected error: %v", err), response.TypeInternalError))
}

// validationError wraps a local normalization failure in an error envelope.
func validationError(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError(response.BuildError(msg, response.TypeValidationError))
}

// eventResult flattens an event into the agent-facing shape. Only fields
// carrying a value are included.
func eventResult(e *icu.Event) map[string]any {
	result := map[string]any{
		"id":         e.ID,
		"start_date": e.StartDateLocal,
		"name":       e.Name,
		"category":   e.Category,
	}
	if e.Description != "" {
		result["description"] = e.Description
	}
	if e.Type != "" {
		result["type"] = e.Type
	}
	if e.MovingTime != nil {
		result["duration_seconds"] = *e.MovingTime
		result["duration"] = format.Duration(e.MovingTime)
	}
	if e.Distance != nil {
		result["distance_meters"] = *e.Distance
		result["distance"] = format.Distance(e.Distance, format.Metric)
	}
	if e.TrainingLoad != nil {
		result["training_load"] = *e.TrainingLoad
	}
	return result
}

// intArg extracts an integer argument. JSON numbers decode as float64.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// RegisterEventTools registers all calendar event tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerListEventTools(s, sc)
	if !readOnly {
		registerEventWriteTools(s, sc)
		registerBulkEventTools(s, sc)
	}
	return nil
}

// registerListEventTools registers the read-only calendar tools.
func registerListEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listEventsTool := mcp.NewTool("list_events",
		mcp.WithDescription("List calendar events (planned workouts, notes, races, goals) in a date range"),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start of the date range (YYYY-MM-DD)"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End of the date range (YYYY-MM-DD)"),
		),
		mcp.WithString("category",
			mcp.Description("Filter by category, e.g. WORKOUT, NOTE, RACE_A. Common aliases like RACE are corrected automatically."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of events to return"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandler("list_events", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		startDate, _ := args["start_date"].(string)
		endDate, _ := args["end_date"].(string)
		if err := normalize.BareDate(startDate); err != nil {
			return validationError(err.Error()), nil
		}
		if err := normalize.BareDate(endDate); err != nil {
			return validationError(err.Error()), nil
		}

		category := ""
		if raw, ok := args["category"].(string); ok && raw != "" {
			normalized, err := normalize.Category(raw)
			if err != nil {
				return validationError(err.Error()), nil
			}
			category = normalized
		}

		limit, _ := intArg(args, "limit")

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		events, err := client.ListEvents(ctx, icu.ListEventsOptions{
			Oldest:   startDate,
			Newest:   endDate,
			Category: category,
			Limit:    limit,
		})
		if err != nil {
			return toolError(err), nil
		}

		results := make([]map[string]any, 0, len(events))
		for i := range events {
			results = append(results, eventResult(&events[i]))
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"events": results},
			response.WithQueryType("list_events"),
			response.WithMetadata(map[string]any{"count": len(results)}),
		)), nil
	}))

	getEventTool := mcp.NewTool("get_event",
		mcp.WithDescription("Get a single calendar event by ID"),
		mcp.WithNumber("event_id",
			mcp.Required(),
			mcp.Description("Event ID to retrieve"),
		),
	)

	s.AddTool(getEventTool, common.InstrumentedToolHandler("get_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		eventID, ok := intArg(args, "event_id")
		if !ok {
			return validationError("event_id is required and must be a number"), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		event, err := client.GetEvent(ctx, eventID)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			eventResult(event),
			response.WithQueryType("get_event"),
		)), nil
	}))
}

// registerEventWriteTools registers create, update, and delete.
func registerEventWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createEventTool := mcp.NewTool("create_event",
		mcp.WithDescription("Create a calendar event (planned workout, note, race, or goal)"),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start date/time. Accepts YYYY-MM-DD (defaults to midnight), YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DDTHH:MM"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Event name"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Event category: WORKOUT, NOTE, RACE_A, RACE_B, RACE_C, TARGET, PLAN, HOLIDAY, SICK, INJURED, SET_EFTP, FITNESS_DAYS, SEASON_START, SET_FITNESS"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("event_type",
			mcp.Description("Activity type (e.g., Ride, Run, Swim). Casing is corrected automatically."),
		),
		mcp.WithNumber("duration_seconds",
			mcp.Description("Planned duration in seconds"),
		),
		mcp.WithNumber("distance_meters",
			mcp.Description("Planned distance in meters"),
		),
		mcp.WithNumber("training_load",
			mcp.Description("Planned training load"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandler("create_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		rawCategory, _ := args["category"].(string)
		category, err := normalize.Category(rawCategory)
		if err != nil {
			return validationError(err.Error()), nil
		}

		eventType := ""
		if raw, ok := args["event_type"].(string); ok && raw != "" {
			eventType, err = normalize.SportType(raw)
			if err != nil {
				return validationError(err.Error()), nil
			}
		}

		rawDate, _ := args["start_date"].(string)
		startDateLocal, err := normalize.StartDateLocal(rawDate)
		if err != nil {
			return validationError(err.Error()), nil
		}

		name, _ := args["name"].(string)
		payload := map[string]any{
			"start_date_local": startDateLocal,
			"name":             name,
			"category":         category,
		}
		if description, ok := args["description"].(string); ok && description != "" {
			payload["description"] = description
		}
		if eventType != "" {
			payload["type"] = eventType
		}
		if duration, ok := intArg(args, "duration_seconds"); ok && duration != 0 {
			payload["moving_time"] = duration
		}
		if distance, ok := args["distance_meters"].(float64); ok && distance != 0 {
			payload["distance"] = distance
		}
		if load, ok := intArg(args, "training_load"); ok && load != 0 {
			payload["icu_training_load"] = load
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		event, err := client.CreateEvent(ctx, payload)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			eventResult(event),
			response.WithQueryType("create_event"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Successfully created %s: %s", strings.ToLower(category), name),
			}),
		)), nil
	}))

	updateEventTool := mcp.NewTool("update_event",
		mcp.WithDescription("Update an existing calendar event. Only provided fields are changed."),
		mcp.WithNumber("event_id",
			mcp.Required(),
			mcp.Description("Event ID to update"),
		),
		mcp.WithString("name",
			mcp.Description("Updated event name"),
		),
		mcp.WithString("description",
			mcp.Description("Updated description"),
		),
		mcp.WithString("start_date",
			mcp.Description("Updated start date/time. Accepts YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DDTHH:MM"),
		),
		mcp.WithString("event_type",
			mcp.Description("Updated activity type"),
		),
		mcp.WithNumber("duration_seconds",
			mcp.Description("Updated duration in seconds"),
		),
		mcp.WithNumber("distance_meters",
			mcp.Description("Updated distance in meters"),
		),
		mcp.WithNumber("training_load",
			mcp.Description("Updated training load"),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandler("update_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		eventID, ok := intArg(args, "event_id")
		if !ok {
			return validationError("event_id is required and must be a number"), nil
		}

		payload := map[string]any{}
		if name, ok := args["name"].(string); ok && name != "" {
			payload["name"] = name
		}
		if description, ok := args["description"].(string); ok && description != "" {
			payload["description"] = description
		}
		if rawDate, ok := args["start_date"].(string); ok && rawDate != "" {
			startDateLocal, err := normalize.StartDateLocal(rawDate)
			if err != nil {
				return validationError(err.Error()), nil
			}
			payload["start_date_local"] = startDateLocal
		}
		if rawType, ok := args["event_type"].(string); ok && rawType != "" {
			eventType, err := normalize.SportType(rawType)
			if err != nil {
				return validationError(err.Error()), nil
			}
			payload["type"] = eventType
		}
		if duration, ok := intArg(args, "duration_seconds"); ok {
			payload["moving_time"] = duration
		}
		if distance, ok := args["distance_meters"].(float64); ok {
			payload["distance"] = distance
		}
		if load, ok := intArg(args, "training_load"); ok {
			payload["icu_training_load"] = load
		}

		if len(payload) == 0 {
			return validationError("No fields provided to update. Please specify at least one field to change."), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		event, err := client.UpdateEvent(ctx, eventID, payload)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			eventResult(event),
			response.WithQueryType("update_event"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Successfully updated event %d", eventID),
			}),
		)), nil
	}))

	deleteEventTool := mcp.NewTool("delete_event",
		mcp.WithDescription("Delete a calendar event. This action cannot be undone."),
		mcp.WithNumber("event_id",
			mcp.Required(),
			mcp.Description("Event ID to delete"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandler("delete_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		eventID, ok := intArg(args, "event_id")
		if !ok {
			return validationError("event_id is required and must be a number"), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		if err := client.DeleteEvent(ctx, eventID); err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"event_id": eventID, "deleted": true},
			response.WithQueryType("delete_event"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Successfully deleted event %d", eventID),
			}),
		)), nil
	}))
}
