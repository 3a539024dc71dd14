package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNotAuthenticated indicates an operation that needs a signed-in session
// was called while anonymous.
var ErrNotAuthenticated = errors.New("not authenticated")

// rawTextLimit caps how much of a non-JSON error body ends up in the
// normalized message.
const rawTextLimit = 100

// APIError is the normalized failure descriptor for any request the server
// answered with a non-success status. Status is always the transport status
// code; Message follows a fixed extraction precedence over the response
// body (see normalizeError).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ConnectivityError indicates the request never produced a response: there
// is no status code to normalize, so it is deliberately not an APIError.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ValidationError is a client-local input failure detected before any
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// normalizeError builds the APIError for a non-success response. Message
// extraction precedence, first applicable wins:
//
//  1. body is a JSON object with a string "detail" key: its value.
//  2. body is any other JSON object: "key: value" pairs joined with ", "
//     (field-level validation maps flatten to readable text).
//  3. body is not valid JSON: the numeric status, a colon, and up to the
//     first 100 characters of the raw text.
//  4. body is empty or unreadable: the standard reason phrase.
func normalizeError(status int, body []byte) *APIError {
	msg := statusReason(status)

	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			msg = messageFromObject(obj, status)
		} else {
			if len(trimmed) > rawTextLimit {
				trimmed = trimmed[:rawTextLimit]
			}
			msg = fmt.Sprintf("%d: %s", status, trimmed)
		}
	}

	return &APIError{Status: status, Message: msg}
}

func messageFromObject(obj map[string]any, status int) string {
	if detail, ok := obj["detail"].(string); ok {
		return detail
	}
	if len(obj) == 0 {
		return statusReason(status)
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, flattenValue(obj[k])))
	}
	return strings.Join(parts, ", ")
}

// flattenValue renders a field-error value: DRF reports each field as a list
// of message strings.
func flattenValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, flattenValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

func statusReason(status int) string {
	if reason := http.StatusText(status); reason != "" {
		return reason
	}
	return fmt.Sprintf("HTTP %d", status)
}
