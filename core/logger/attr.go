package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Kind creates an attribute for the classified error outcome.
func Kind(kind string) slog.Attr {
	if kind == "" {
		return slog.Attr{}
	}
	return slog.String("kind", kind)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Endpoint creates an attribute for API endpoint paths.
func Endpoint(path string) slog.Attr {
	return slog.String("endpoint", path)
}

// Status creates an attribute for HTTP status codes. A zero status means
// no response arrived; the attribute is omitted.
func Status(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status", code)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// PostID creates an attribute for post identifiers.
func PostID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("post_id", id)
}

// IntentID creates an attribute for mutation intent identifiers.
func IntentID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("intent_id", id)
}

// Page creates an attribute for pagination page numbers.
func Page(page int) slog.Attr {
	return slog.Int("page", page)
}
