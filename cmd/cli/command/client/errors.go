package client

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response reduced to a single human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// decodeAPIError normalizes the server's error shapes in priority order:
// a non-field error array, then named-field validation arrays, then the
// generic message fields, then a raw JSON string, then the HTTP status text.
func decodeAPIError(status int, body []byte) *APIError {
	if msg, ok := normalizeErrorBody(body); ok {
		return &APIError{Status: status, Message: msg}
	}
	return &APIError{Status: status, Message: http.StatusText(status)}
}

func normalizeErrorBody(body []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		if msg, ok := firstStringOf(obj["non_field_errors"]); ok {
			return msg, true
		}
		// Named-field validation arrays surface the bare message, without
		// the field key. Keys are walked in sorted order so a body carrying
		// several field arrays reduces to the same message every time.
		fields := make([]string, 0, len(obj))
		for field := range obj {
			if field != "non_field_errors" {
				fields = append(fields, field)
			}
		}
		sort.Strings(fields)
		for _, field := range fields {
			if msg, ok := firstStringOf(obj[field]); ok {
				return msg, true
			}
		}
		for _, field := range []string{"detail", "message", "error"} {
			var msg string
			if raw, ok := obj[field]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
				return msg, true
			}
		}
		return "", false
	}

	var raw string
	if err := json.Unmarshal(body, &raw); err == nil && raw != "" {
		return raw, true
	}

	return "", false
}

// firstStringOf pulls the first entry out of a JSON array of strings.
func firstStringOf(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return "", false
	}
	return list[0], true
}
