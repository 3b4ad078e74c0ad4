package response

import (
	"encoding/json"
	"time"
)

// Error classification tags shared by every tool. See the package comment
// for the envelope shapes they appear in.
const (
	// TypeValidationError marks a local normalization failure; the request
	// never reached the network.
	TypeValidationError = "validation_error"
	// TypeAPIValidationError marks an upstream rejection that the
	// diagnostic engine has explained with suggestions.
	TypeAPIValidationError = "api_validation_error"
	// TypeAPIError marks an upstream failure that is not specifically
	// diagnosable (not found, rate limited, server error).
	TypeAPIError = "api_error"
	// TypeInternalError marks an unexpected failure in the handler chain.
	TypeInternalError = "internal_error"
)

// now is swapped out in tests for deterministic timestamps.
var now = time.Now

// Option customizes a success envelope.
type Option func(*options)

type options struct {
	analysis  any
	metadata  map[string]any
	queryType string
}

// WithAnalysis attaches an analysis section. Empty analysis (nil, empty map
// or slice) is omitted from the envelope.
func WithAnalysis(analysis any) Option {
	return func(o *options) { o.analysis = analysis }
}

// WithMetadata seeds the metadata section. The builder still stamps
// fetched_at on top of the provided map.
func WithMetadata(metadata map[string]any) Option {
	return func(o *options) { o.metadata = metadata }
}

// WithQueryType sets metadata.query_type, identifying the operation that
// produced the envelope.
func WithQueryType(queryType string) Option {
	return func(o *options) { o.queryType = queryType }
}

// Build produces a success envelope around data. Timestamps anywhere in
// data, analysis, or metadata are converted to ISO-8601 strings, and
// metadata.fetched_at is stamped with the current time. The output is
// deterministic for identical inputs except for that timestamp.
func Build(data any, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	envelope := map[string]any{
		"data": convertTimestamps(data),
	}

	if analysis := convertTimestamps(o.analysis); !isEmpty(analysis) {
		envelope["analysis"] = analysis
	}

	metadata := map[string]any{}
	if converted, ok := convertTimestamps(o.metadata).(map[string]any); ok {
		metadata = converted
	}
	metadata["fetched_at"] = now().Format(time.RFC3339)
	if o.queryType != "" {
		metadata["query_type"] = o.queryType
	}
	envelope["metadata"] = metadata

	return marshal(envelope)
}

// BuildError produces an error envelope. Suggestions are included only when
// at least one is given.
func BuildError(message, errorType string, suggestions ...string) string {
	errObj := map[string]any{
		"message":   message,
		"type":      errorType,
		"timestamp": now().Format(time.RFC3339),
	}
	if len(suggestions) > 0 {
		errObj["suggestions"] = suggestions
	}
	return marshal(map[string]any{"error": errObj})
}

// convertTimestamps walks maps and slices structurally, converting any
// time.Time to its ISO-8601 string form. All other values pass through
// unchanged.
func convertTimestamps(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.Format(time.RFC3339)
	case map[string]any:
		converted := make(map[string]any, len(val))
		for k, item := range val {
			converted[k] = convertTimestamps(item)
		}
		return converted
	case []any:
		converted := make([]any, len(val))
		for i, item := range val {
			converted[i] = convertTimestamps(item)
		}
		return converted
	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// marshal encodes the envelope compactly. Envelopes are built from plain
// maps, strings, and numbers; encoding them cannot fail, and map keys are
// emitted in sorted order which keeps output deterministic.
func marshal(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
