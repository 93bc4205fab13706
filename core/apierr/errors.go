package apierr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error represents a failed API call with enough context for
// classification: the HTTP status (zero for transport failures), the
// server-provided message, and optional field-level validation errors.
type Error struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`

	// cause retains the underlying transport error for network failures.
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsNetwork reports whether the error occurred before any HTTP response
// arrived (no status code at all).
func (e *Error) IsNetwork() bool {
	return e.Status == 0
}

// HasFields reports whether the backend returned field-level validation
// errors that should be surfaced verbatim.
func (e *Error) HasFields() bool {
	return len(e.Fields) > 0
}

// FieldMessages flattens validation errors into "Field: message" lines in
// no particular order, for inline presentation.
func (e *Error) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		out = append(out, fmt.Sprintf("%s: %s", titleField(field), strings.Join(msgs, ", ")))
	}
	return out
}

// envelope mirrors the backend error body {success, message, error, errors}.
type envelope struct {
	Message string              `json:"message"`
	Err     string              `json:"error"`
	Fields  map[string][]string `json:"errors"`
}

// FromResponse builds an Error from a non-2xx response body. JSON bodies
// contribute their message (or error) field and any validation errors.
// Non-JSON bodies are carried as raw text, except HTML error pages, which
// are replaced with a synthesized endpoint-not-found message so raw markup
// never reaches the user.
func FromResponse(status int, body []byte) *Error {
	text := strings.TrimSpace(string(body))

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		msg := env.Message
		if msg == "" {
			msg = env.Err
		}
		if msg == "" {
			msg = fmt.Sprintf("server error (%d)", status)
		}
		if isHTMLPage(msg) {
			msg = endpointNotFoundMessage(status)
		}
		return &Error{Status: status, Message: msg, Fields: env.Fields}
	}

	if isHTMLPage(text) {
		return &Error{Status: status, Message: endpointNotFoundMessage(status)}
	}
	if text == "" {
		text = fmt.Sprintf("server error (%d)", status)
	}
	return &Error{Status: status, Message: text}
}

// Network wraps a transport-level failure (DNS, TLS, timeout) that never
// produced an HTTP response.
func Network(err error) *Error {
	msg := "network error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Message: msg, cause: err}
}

func endpointNotFoundMessage(status int) string {
	return fmt.Sprintf("endpoint not found (%d): the backend route may not exist", status)
}

// isHTMLPage detects an HTML error page masquerading as an API response.
func isHTMLPage(s string) bool {
	return strings.Contains(s, "<!DOCTYPE") || strings.Contains(s, "<!doctype")
}

// titleField converts a camelCase field name into a readable label,
// e.g. "phoneNumber" -> "Phone Number".
func titleField(field string) string {
	if field == "" {
		return field
	}
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(toUpper(r))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
