package apierr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neyborhuud/huud-go/core/apierr"
)

func TestFromResponse(t *testing.T) {
	t.Parallel()

	t.Run("extracts message from JSON body", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(400, []byte(`{"success":false,"message":"bad payload"}`))
		assert.Equal(t, 400, err.Status)
		assert.Equal(t, "bad payload", err.Message)
	})

	t.Run("falls back to error field", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(400, []byte(`{"error":"something broke"}`))
		assert.Equal(t, "something broke", err.Message)
	})

	t.Run("falls back to raw text for non-JSON bodies", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(502, []byte("Bad Gateway"))
		assert.Equal(t, "Bad Gateway", err.Message)
		assert.Equal(t, 502, err.Status)
	})

	t.Run("synthesizes message for HTML error pages", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(404, []byte("<!DOCTYPE html><html><body>Cannot POST /api/v1/nope</body></html>"))
		assert.Equal(t, "endpoint not found (404): the backend route may not exist", err.Message)
	})

	t.Run("synthesizes message for HTML wrapped in JSON", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(404, []byte(`{"message":"<!DOCTYPE html><html>not here</html>"}`))
		assert.Contains(t, err.Message, "endpoint not found (404)")
	})

	t.Run("captures validation errors", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(422, []byte(`{"message":"invalid","errors":{"userName":["already taken","too short"]}}`))
		require.True(t, err.HasFields())

		msgs := err.FieldMessages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "User Name: already taken, too short", msgs[0])
	})

	t.Run("empty body produces a generic message", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(500, nil)
		assert.Equal(t, "server error (500)", err.Message)
	})
}

func TestNetwork(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp 10.0.0.1:443: i/o timeout")
	err := apierr.Network(cause)

	assert.True(t, err.IsNetwork())
	assert.Zero(t, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Error())
}
