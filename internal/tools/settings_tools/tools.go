package settings_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/format"
	"github.com/teemow/intervals-mcp/internal/icu"
	"github.com/teemow/intervals-mcp/internal/normalize"
	"github.com/teemow/intervals-mcp/internal/response"
	"github.com/teemow/intervals-mcp/internal/server"
	"github.com/teemow/intervals-mcp/internal/tools/common"
)

// settingsResult flattens a settings group into the agent-facing shape.
func settingsResult(s *icu.SportSettings) map[string]any {
	result := map[string]any{
		"id":   s.ID,
		"type": s.Type,
	}
	if s.FTP != nil {
		result["ftp_watts"] = *s.FTP
	}
	if s.FTHR != nil {
		result["fthr_bpm"] = *s.FTHR
	}
	if s.PaceThreshold != nil {
		result["pace_threshold"] = format.PaceFromMinutes(*s.PaceThreshold, "/km")
	}
	if s.SwimThreshold != nil {
		result["swim_threshold"] = format.PaceFromMinutes(*s.SwimThreshold, "/100m")
	}
	return result
}

// thresholdPayload collects the optional threshold arguments into an update
// payload.
func thresholdPayload(args map[string]any) map[string]any {
	payload := map[string]any{}
	if ftp, ok := args["ftp"].(float64); ok {
		payload["ftp"] = int(ftp)
	}
	if fthr, ok := args["fthr"].(float64); ok {
		payload["fthr"] = int(fthr)
	}
	if pace, ok := args["pace_threshold"].(float64); ok {
		payload["pace_threshold"] = pace
	}
	if swim, ok := args["swim_threshold"].(float64); ok {
		payload["swim_threshold"] = swim
	}
	return payload
}

func getClient(sc *server.ServerContext) (*icu.Client, *mcp.CallToolResult) {
	client, err := sc.Client()
	if err != nil {
		return nil, mcp.NewToolResultError(response.BuildError(err.Error(), response.TypeInternalError))
	}
	return client, nil
}

func toolError(err error) *mcp.CallToolResult {
	var apiErr *icu.APIError
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError(response.BuildError(apiErr.Message, response.TypeAPIError))
	}
	return mcp.NewToolResultError(response.BuildError(
		fmt.Sprintf("Unexpected error: %v", err), response.TypeInternalError))
}

// RegisterSettingsTools registers sport settings tools with the MCP server.
// Mutating tools are skipped in read-only mode.
func RegisterSettingsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getSettingsTool := mcp.NewTool("get_sport_settings",
		mcp.WithDescription("Get all sport-specific settings (FTP, FTHR, pace thresholds)"),
	)

	s.AddTool(getSettingsTool, common.InstrumentedToolHandler("get_sport_settings", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		settings, err := client.ListSportSettings(ctx)
		if err != nil {
			return toolError(err), nil
		}

		results := make([]map[string]any, 0, len(settings))
		for i := range settings {
			results = append(results, settingsResult(&settings[i]))
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"sport_settings": results},
			response.WithQueryType("get_sport_settings"),
			response.WithMetadata(map[string]any{"count": len(results)}),
		)), nil
	}))

	if readOnly {
		return nil
	}

	createSettingsTool := mcp.NewTool("create_sport_settings",
		mcp.WithDescription("Create new sport-specific settings"),
		mcp.WithString("sport_type",
			mcp.Required(),
			mcp.Description("Type of sport (e.g., 'Ride', 'Run', 'Swim'). Casing is corrected automatically."),
		),
		mcp.WithNumber("ftp",
			mcp.Description("Functional Threshold Power in watts (for cycling)"),
		),
		mcp.WithNumber("fthr",
			mcp.Description("Functional Threshold Heart Rate in bpm"),
		),
		mcp.WithNumber("pace_threshold",
			mcp.Description("Threshold pace in min/km (e.g., 4.5 for 4:30/km)"),
		),
		mcp.WithNumber("swim_threshold",
			mcp.Description("Swim threshold in min/100m (e.g., 1.5 for 1:30/100m)"),
		),
	)

	s.AddTool(createSettingsTool, common.InstrumentedToolHandler("create_sport_settings", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		rawType, _ := args["sport_type"].(string)
		sportType, err := normalize.SportType(rawType)
		if err != nil {
			return mcp.NewToolResultError(response.BuildError(err.Error(), response.TypeValidationError)), nil
		}

		payload := thresholdPayload(args)
		payload["type"] = sportType

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		settings, err := client.CreateSportSettings(ctx, payload)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			settingsResult(settings),
			response.WithQueryType("create_sport_settings"),
			response.WithMetadata(map[string]any{"message": "Sport settings created successfully"}),
		)), nil
	}))

	updateSettingsTool := mcp.NewTool("update_sport_settings",
		mcp.WithDescription("Update sport-specific settings (FTP, FTHR, pace thresholds)"),
		mcp.WithNumber("sport_id",
			mcp.Required(),
			mcp.Description("ID of the sport settings to update"),
		),
		mcp.WithNumber("ftp",
			mcp.Description("Functional Threshold Power in watts (for cycling)"),
		),
		mcp.WithNumber("fthr",
			mcp.Description("Functional Threshold Heart Rate in bpm"),
		),
		mcp.WithNumber("pace_threshold",
			mcp.Description("Threshold pace in min/km (e.g., 4.5 for 4:30/km)"),
		),
		mcp.WithNumber("swim_threshold",
			mcp.Description("Swim threshold in min/100m (e.g., 1.5 for 1:30/100m)"),
		),
	)

	s.AddTool(updateSettingsTool, common.InstrumentedToolHandler("update_sport_settings", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		sportID, ok := args["sport_id"].(float64)
		if !ok {
			return mcp.NewToolResultError(response.BuildError(
				"sport_id is required and must be a number", response.TypeValidationError)), nil
		}

		payload := thresholdPayload(args)
		if len(payload) == 0 {
			return mcp.NewToolResultError(response.BuildError(
				"No fields provided to update", response.TypeValidationError)), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		settings, err := client.UpdateSportSettings(ctx, int(sportID), payload)
		if err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			settingsResult(settings),
			response.WithQueryType("update_sport_settings"),
			response.WithMetadata(map[string]any{"message": "Sport settings updated successfully"}),
		)), nil
	}))

	applySettingsTool := mcp.NewTool("apply_sport_settings",
		mcp.WithDescription("Apply sport settings (zones, thresholds) to historical activities, recalculating training load and derived metrics"),
		mcp.WithNumber("sport_id",
			mcp.Required(),
			mcp.Description("ID of the sport settings to apply"),
		),
		mcp.WithString("oldest_date",
			mcp.Description("Oldest date to apply settings to (YYYY-MM-DD format, defaults to all)"),
		),
	)

	s.AddTool(applySettingsTool, common.InstrumentedToolHandler("apply_sport_settings", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		sportID, ok := args["sport_id"].(float64)
		if !ok {
			return mcp.NewToolResultError(response.BuildError(
				"sport_id is required and must be a number", response.TypeValidationError)), nil
		}

		oldestDate := ""
		if raw, ok := args["oldest_date"].(string); ok && raw != "" {
			if err := normalize.BareDate(raw); err != nil {
				return mcp.NewToolResultError(response.BuildError(err.Error(), response.TypeValidationError)), nil
			}
			oldestDate = raw
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		if err := client.ApplySportSettings(ctx, int(sportID), oldestDate); err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"sport_id": int(sportID), "applied": true},
			response.WithQueryType("apply_sport_settings"),
			response.WithMetadata(map[string]any{"message": "Sport settings applied to activities successfully"}),
		)), nil
	}))

	deleteSettingsTool := mcp.NewTool("delete_sport_settings",
		mcp.WithDescription("Delete sport-specific settings"),
		mcp.WithNumber("sport_id",
			mcp.Required(),
			mcp.Description("ID of the sport settings to delete"),
		),
	)

	s.AddTool(deleteSettingsTool, common.InstrumentedToolHandler("delete_sport_settings", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		sportID, ok := args["sport_id"].(float64)
		if !ok {
			return mcp.NewToolResultError(response.BuildError(
				"sport_id is required and must be a number", response.TypeValidationError)), nil
		}

		client, errResult := getClient(sc)
		if errResult != nil {
			return errResult, nil
		}

		if err := client.DeleteSportSettings(ctx, int(sportID)); err != nil {
			return toolError(err), nil
		}

		return mcp.NewToolResultText(response.Build(
			map[string]any{"sport_id": int(sportID), "deleted": true},
			response.WithQueryType("delete_sport_settings"),
			response.WithMetadata(map[string]any{"message": "Sport settings deleted successfully"}),
		)), nil
	}))

	return nil
}
