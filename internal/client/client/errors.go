package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid id")
)

// APIError is a server-reported failure: a non-2xx status with an optional
// JSON body {"message": "...", "errors": [...]}.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Message, e.StatusCode, strings.Join(e.Errors, "; "))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// errorBody is the error envelope the API sends. Older endpoints use
// "error" instead of "message".
type errorBody struct {
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Errors  fieldErrors `json:"errors"`
}

// fieldErrors flattens the shapes validation errors arrive in: a list of
// strings, a list of {"msg"|"message": "..."} objects, a field→message map
// (flattened in field name order) or a single string.
type fieldErrors []string

func (f *fieldErrors) UnmarshalJSON(b []byte) error {
	var list []json.RawMessage
	if err := json.Unmarshal(b, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, raw := range list {
			if s := fieldErrorText(raw); s != "" {
				out = append(out, s)
			}
		}
		*f = out
		return nil
	}

	var byField map[string]string
	if err := json.Unmarshal(b, &byField); err == nil {
		out := make([]string, 0, len(byField))
		for _, field := range slices.Sorted(maps.Keys(byField)) {
			out = append(out, byField[field])
		}
		*f = out
		return nil
	}

	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		if single != "" {
			*f = []string{single}
		}
		return nil
	}

	// Unknown shape: keep the message, drop the details.
	*f = nil
	return nil
}

func fieldErrorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Msg != "" {
			return obj.Msg
		}
		return obj.Message
	}
	return ""
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
		if len(eb.Errors) > 0 {
			apiErr.Errors = []string(eb.Errors)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
