// Package logger provides slog attribute helpers for the SDK's structured
// logging. Helpers use the empty Attr pattern for nil safety, so call
// sites never need explicit nil or empty checks:
//
//	log.Warn("request failed",
//		logger.Method(http.MethodPost),
//		logger.Endpoint("/content/posts"),
//		logger.Status(resp.StatusCode),
//		logger.Error(err),
//	)
//
// SDK components accept an optional *slog.Logger; a nil logger disables
// logging entirely.
package logger
