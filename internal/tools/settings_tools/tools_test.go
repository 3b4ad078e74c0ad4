package settings_tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/intervals-mcp/internal/icu"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func errorEnvelope(t *testing.T, text string) map[string]any {
	t.Helper()
	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &parsed))
	errObj, ok := parsed["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", text)
	return errObj
}

func TestSettingsResult(t *testing.T) {
	ftp := 250
	fthr := 165
	pace := 4.5
	swim := 1.5

	full := settingsResult(&icu.SportSettings{
		ID:            3,
		Type:          "Ride",
		FTP:           &ftp,
		FTHR:          &fthr,
		PaceThreshold: &pace,
		SwimThreshold: &swim,
	})
	assert.Equal(t, 3, full["id"])
	assert.Equal(t, "Ride", full["type"])
	assert.Equal(t, 250, full["ftp_watts"])
	assert.Equal(t, 165, full["fthr_bpm"])
	assert.Equal(t, "4:30 /km", full["pace_threshold"])
	assert.Equal(t, "1:30 /100m", full["swim_threshold"])

	minimal := settingsResult(&icu.SportSettings{ID: 4, Type: "Yoga"})
	_, hasFTP := minimal["ftp_watts"]
	assert.False(t, hasFTP)
	_, hasPace := minimal["pace_threshold"]
	assert.False(t, hasPace)
}

func TestThresholdPayload(t *testing.T) {
	payload := thresholdPayload(map[string]any{
		"sport_id":       1.0,
		"ftp":            260.0,
		"pace_threshold": 4.25,
	})

	assert.Equal(t, map[string]any{
		"ftp":            260,
		"pace_threshold": 4.25,
	}, payload)

	assert.Empty(t, thresholdPayload(map[string]any{"sport_id": 1.0}))
}

func TestToolErrorAPIError(t *testing.T) {
	err := &icu.APIError{StatusCode: 404, Message: "settings not found"}

	result := toolError(err)
	require.True(t, result.IsError)

	errObj := errorEnvelope(t, resultText(t, result))
	assert.Equal(t, "api_error", errObj["type"])
	assert.Equal(t, "settings not found", errObj["message"])
}

func TestToolErrorUnexpected(t *testing.T) {
	result := toolError(errors.New("connection refused"))
	errObj := errorEnvelope(t, resultText(t, result))
	assert.Equal(t, "internal_error", errObj["type"])
	assert.Contains(t, errObj["message"], "connection refused")
}
