package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neyborhuud/huud-go/core/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})

	t.Run("non-nil error is keyed under error", func(t *testing.T) {
		t.Parallel()
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Status(0))

	attr := logger.Status(404)
	assert.Equal(t, "status", attr.Key)
	assert.Equal(t, int64(404), attr.Value.Int64())
}

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Kind(""))
	assert.Equal(t, "kind", logger.Kind("server_error").Key)
	assert.Equal(t, "endpoint", logger.Endpoint("/feed").Key)
	assert.Equal(t, "method", logger.Method("GET").Key)
	assert.Equal(t, slog.Attr{}, logger.PostID(""))
	assert.Equal(t, "post_id", logger.PostID("p1").Key)
	assert.Equal(t, slog.Attr{}, logger.IntentID(""))
}

func TestDuration(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(time.Second)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, time.Second, attr.Value.Duration())
}
