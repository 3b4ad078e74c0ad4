package event_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/normalize"
	"github.com/teemow/intervals-mcp/internal/response"
	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/tools/common"
)

// normalizeBulkEvent validates one event of a bulk create request in place.
// Field aliases are corrected before the required-field checks so that an
// event carrying e.g. "title" and "date" still passes.
func normalizeBulkEvent(i int, event map[string]any) error {
	normalize.CorrectFieldAliases(event)

	if _, ok := event["start_date_local"]; !ok {
		return fmt.Errorf("Event %d: Missing required field 'start_date_local'", i)
	}
	if _, ok := event["name"]; !ok {
		return fmt.Errorf("Event %d: Missing required field 'name'", i)
	}
	if _, ok := event["category"]; !ok {
		return fmt.Errorf("Event %d: Missing required field 'category'", i)
	}

	rawCategory, _ := event["category"].(string)
	category, err := normalize.Category(rawCategory)
	if err != nil {
		return fmt.Errorf("Event %d: %s", i, err)
	}
	event["category"] = category

	if rawType, ok := event["type"].(string); ok && rawType != "" {
		eventType, err := normalize.SportType(rawType)
		if err != nil {
			return fmt.Errorf("Event %d: %s", i, err)
		}
		event["type"] = eventType
	}

	rawDate, _ := event["start_date_local"].(string)
	startDateLocal, err := normalize.StartDateLocal(rawDate)
	if err != nil {
		return fmt.Errorf("Event %d: %s", i, err)
	}
	event["start_date_local"] = startDateLocal

	return nil
}

// registerBulkEventTools registers bulk operations plus the duplicate and
// mark-done conveniences.
func registerBulkEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	bulkCreateTool := mcp.NewTool("bulk_create_events",
		mcp.WithDescription("Create multiple calendar events in a single operation. More efficient than creating events one at a time."),
		mcp.WithString("events",
			mcp.Required(),
			mcp.Description("JSON array of event objects. Each event needs start_date_local, name, category, and may carry description, type, moving_time, distance, icu_training_load."),
		),
	)

	s.AddTool(bulkCreateTool, common.InstrumentedToolHandler("bulk_create_events", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		raw, _ := args["events"].(string)
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return validationError(fmt.Sprintf("Invalid JSON format: %v", err)), nil
		}

		list, ok := parsed.([]any)
		if !ok {
			return validationError("Events must be a JSON array"), nil
		}

		events := make([]map[string]any, 0, len(list))
		for i, item := range list {
			event, ok := item.(map[string]any)
			if !ok {
				return validationError(fmt.Sprintf("Event %d: must be a JSON object", i)), nil
			}
			if err := normalizeBulkEvent(i, event); err != nil {
				return validationError(err.Error()), nil
			}
			events = append(events, event)
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		created, err := client.BulkCreateEvents(ctx, events)
		if err != nil {
			return toolError(err), nil
		}

		results := make([]map[string]any, 0, len(created))
		for i := range created {
			results = append(results, eventResult(&created[i]))
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"events": results},
			response.WithQueryType("bulk_create_events"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Successfully created %d events", len(created)),
				"count":   len(created),
			}),
		)), nil
	}))

	bulkDeleteTool := mcp.NewTool("bulk_delete_events",
		mcp.WithDescription("Delete multiple calendar events in a single operation"),
		mcp.WithString("event_ids",
			mcp.Required(),
			mcp.Description("JSON array of event IDs to delete (e.g., '[123, 456, 789]')"),
		),
	)

	s.AddTool(bulkDeleteTool, common.InstrumentedToolHandler("bulk_delete_events", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		raw, _ := args["event_ids"].(string)
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return validationError(fmt.Sprintf("Invalid JSON format: %v", err)), nil
		}

		list, ok := parsed.([]any)
		if !ok {
			return validationError("Event IDs must be a JSON array"), nil
		}

		ids := make([]int, 0, len(list))
		for i, item := range list {
			id, ok := item.(float64)
			if !ok || id != float64(int(id)) {
				return validationError(fmt.Sprintf("Event ID %d: must be an integer", i)), nil
			}
			ids = append(ids, int(id))
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		result, err := client.BulkDeleteEvents(ctx, ids)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			result,
			response.WithQueryType("bulk_delete_events"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Deleted %d of %d events", len(result.Deleted), len(ids)),
				"count":   len(result.Deleted),
			}),
		)), nil
	}))

	duplicateTool := mcp.NewTool("duplicate_event",
		mcp.WithDescription("Duplicate an existing event to a new date, keeping all its properties. Useful for repeating workouts."),
		mcp.WithNumber("event_id",
			mcp.Required(),
			mcp.Description("Event ID to duplicate"),
		),
		mcp.WithString("new_date",
			mcp.Required(),
			mcp.Description("New date for the duplicated event (YYYY-MM-DD format)"),
		),
	)

	s.AddTool(duplicateTool, common.InstrumentedToolHandler("duplicate_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		eventID, ok := intArg(args, "event_id")
		if !ok {
			return validationError("event_id is required and must be a number"), nil
		}

		newDate, _ := args["new_date"].(string)
		if err := normalize.BareDate(newDate); err != nil {
			return validationError("Invalid date format. Please use YYYY-MM-DD format."), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		event, err := client.DuplicateEvent(ctx, eventID, newDate)
		if err != nil {
			return toolError(err), nil
		}

		result := eventResult(event)
		result["original_event_id"] = eventID

		return mcp.NewToolResultText(response.Build(
			result,
			response.WithQueryType("duplicate_event"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Successfully duplicated event %d to %s", eventID, newDate),
			}),
		)), nil
	}))

	markDoneTool := mcp.NewTool("mark_event_done",
		mcp.WithDescription("Mark a planned workout/event as done by creating a matching manual activity. Converts an incomplete event (red/0%) to completed (green/100%)."),
		mcp.WithNumber("event_id",
			mcp.Required(),
			mcp.Description("Event ID to mark as done"),
		),
	)

	s.AddTool(markDoneTool, common.InstrumentedToolHandler("mark_event_done", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		eventID, ok := intArg(args, "event_id")
		if !ok {
			return validationError("event_id is required and must be a number"), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		activity, err := client.MarkEventDone(ctx, eventID)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"event_id": eventID, "activity": activity},
			response.WithQueryType("mark_event_done"),
			response.WithMetadata(map[string]any{
				"message": fmt.Sprintf("Successfully marked event %d as done", eventID),
			}),
		)), nil
	}))
}
