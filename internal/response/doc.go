// Package response builds the uniform JSON envelopes every tool returns.
//
// Successful calls produce:
//
//	{
//	    "data": {...},        // main payload
//	    "analysis": {...},    // optional insights, omitted when empty
//	    "metadata": {...}     // always carries fetched_at, optionally query_type
//	}
//
// Failures produce:
//
//	{
//	    "error": {
//	        "message": "...",
//	        "type": "validation_error|api_validation_error|api_error|internal_error",
//	        "timestamp": "...",
//	        "suggestions": [...]   // omitted when empty
//	    }
//	}
//
// The caller is an automated agent: it must always receive exactly one of
// these two shapes, never a raw error string or stack trace. time.Time
// values anywhere in data, analysis, or metadata are converted to their
// ISO-8601 string form recursively.
package response
