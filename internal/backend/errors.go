package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Fallback strings for errors that carry no usable backend detail.
const (
	ErrMsgConnection = "unable to reach the LocaTrack server"
	ErrMsgGeneric    = "an unexpected error occurred"
)

// ConnectionError wraps transport-level failures where no HTTP response was
// received at all (DNS failure, refused connection, timeout).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMsgConnection, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx backend response. Detail keeps the decoded shape of
// the response's "detail" field, which the API emits in three forms: a plain
// string, a list of {loc, msg} validation entries, or an object with "msg".
type APIError struct {
	StatusCode int
	Detail     any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, formatDetail(e.Detail))
}

func newAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Detail any `json:"detail"`
	}

	// A non-JSON error body is kept as-is so the raw text still surfaces.
	if err := json.Unmarshal(body, &envelope); err != nil {
		trimmed := strings.TrimSpace(string(body))
		if trimmed != "" {
			envelope.Detail = trimmed
		}
	}

	return &APIError{StatusCode: status, Detail: envelope.Detail}
}

// FormatError normalizes any error from this package into a single string
// suitable for direct display. Connection failures map to a fixed fallback,
// API errors go through detail normalization, and anything else keeps its
// own message.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return ErrMsgConnection
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return formatDetail(apiErr.Detail)
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return ErrMsgGeneric
}

// formatDetail flattens the three detail shapes into one display string.
// Validation entries are joined as "field.path: message", comma-separated.
func formatDetail(detail any) string {
	switch d := detail.(type) {
	case string:
		if d != "" {
			return d
		}

	case []any:
		parts := make([]string, 0, len(d))
		for _, entry := range d {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			parts = append(parts, formatValidationEntry(m))
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}

	case map[string]any:
		if msg, ok := d["msg"].(string); ok && msg != "" {
			return msg
		}
		if raw, err := json.Marshal(d); err == nil {
			return string(raw)
		}
	}

	return ErrMsgGeneric
}

func formatValidationEntry(entry map[string]any) string {
	field := "field"
	if loc, ok := entry["loc"].([]any); ok && len(loc) > 0 {
		segments := make([]string, 0, len(loc))
		for _, seg := range loc {
			segments = append(segments, fmt.Sprintf("%v", seg))
		}
		field = strings.Join(segments, ".")
	}

	msg := "validation error"
	if m, ok := entry["msg"].(string); ok && m != "" {
		msg = m
	}

	return field + ": " + msg
}
