package sanitizer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neyborhuud/huud-go/core/sanitizer"
)

func TestClean_StripsDeniedKeys(t *testing.T) {
	t.Parallel()

	t.Run("removes keys at top level", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"email":               "amaka@example.com",
			"assignedCommunityId": "64f0c2",
			"communityId":         "64f0c3",
			"communityName":       "Surulere",
		}

		out := sanitizer.Clean(in).(map[string]any)

		assert.Equal(t, "amaka@example.com", out["email"])
		assert.NotContains(t, out, "assignedCommunityId")
		assert.NotContains(t, out, "communityId")
		assert.NotContains(t, out, "communityName")
	})

	t.Run("removes keys at any nesting depth", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"profile": map[string]any{
				"communityId": "abc",
				"location": map[string]any{
					"state":               "Lagos",
					"assignedCommunityId": "def",
				},
			},
		}

		out := sanitizer.Clean(in).(map[string]any)
		profile := out["profile"].(map[string]any)
		location := profile["location"].(map[string]any)

		assert.NotContains(t, profile, "communityId")
		assert.NotContains(t, location, "assignedCommunityId")
		assert.Equal(t, "Lagos", location["state"])
	})

	t.Run("maps arrays element-wise", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"posts": []any{
				map[string]any{"id": "1", "communityName": "Yaba"},
				map[string]any{"id": "2"},
				"plain string",
			},
		}

		out := sanitizer.Clean(in).(map[string]any)
		posts := out["posts"].([]any)

		require.Len(t, posts, 3)
		assert.NotContains(t, posts[0].(map[string]any), "communityName")
		assert.Equal(t, "2", posts[1].(map[string]any)["id"])
		assert.Equal(t, "plain string", posts[2])
	})

	t.Run("preserves unknown keys", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"someFutureField": map[string]any{"nested": true},
			"count":           float64(3),
		}

		out := sanitizer.Clean(in).(map[string]any)

		assert.Equal(t, in, out)
	})

	t.Run("scalars pass through unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello", sanitizer.Clean("hello"))
		assert.Equal(t, float64(42), sanitizer.Clean(float64(42)))
		assert.Equal(t, true, sanitizer.Clean(true))
		assert.Nil(t, sanitizer.Clean(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"communityId": "x", "keep": "y"}
		_ = sanitizer.Clean(in)

		assert.Contains(t, in, "communityId")
	})
}

func TestClean_Idempotent(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"content":     "street cleanup on Saturday",
		"communityId": "123",
		"tags":        []any{"safety", map[string]any{"communityName": "Ikeja"}},
		"location":    map[string]any{"lat": 6.5244, "lng": 3.3792, "assignedCommunityId": "z"},
	}

	once := sanitizer.Clean(in)
	twice := sanitizer.Clean(once)

	assert.Equal(t, once, twice)
}

func TestCleanJSON(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes encoded payload", func(t *testing.T) {
		t.Parallel()

		payload := []byte(`{"email":"a@b.c","assignedCommunityId":"x","nested":{"communityId":"y"}}`)

		out := sanitizer.CleanJSON(payload)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(out, &parsed))
		assert.NotContains(t, parsed, "assignedCommunityId")
		assert.NotContains(t, parsed["nested"].(map[string]any), "communityId")
		assert.Equal(t, "a@b.c", parsed["email"])
	})

	t.Run("returns non-JSON payloads unchanged", func(t *testing.T) {
		t.Parallel()

		payload := []byte("not json at all")
		assert.Equal(t, payload, sanitizer.CleanJSON(payload))
	})

	t.Run("returns empty payloads unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sanitizer.CleanJSON(nil))
	})
}

func TestCleanValue(t *testing.T) {
	t.Parallel()

	type registration struct {
		Email       string `json:"email"`
		CommunityID string `json:"communityId"`
	}

	s := sanitizer.Default()
	out, err := s.CleanValue(registration{Email: "a@b.c", CommunityID: "x"})
	require.NoError(t, err)

	m := out.(map[string]any)
	assert.Equal(t, "a@b.c", m["email"])
	assert.NotContains(t, m, "communityId")
}

func TestNew_CustomDenyList(t *testing.T) {
	t.Parallel()

	s := sanitizer.New("secret")

	out := s.Clean(map[string]any{
		"secret":      "hidden",
		"communityId": "kept with custom list",
	}).(map[string]any)

	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "communityId")
}
