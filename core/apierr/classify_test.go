package apierr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neyborhuud/huud-go/core/apierr"
)

func TestClassifyStatus_Precedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		message string
		opts    []apierr.Option
		want    apierr.Kind
	}{
		{
			name:    "403 with verification message",
			status:  403,
			message: "Please verify your email",
			want:    apierr.KindVerificationRequired,
		},
		{
			name:    "403 without verification message still requires verification",
			status:  403,
			message: "Forbidden",
			want:    apierr.KindVerificationRequired,
		},
		{
			name:    "verification message without status",
			status:  400,
			message: "email not verified",
			want:    apierr.KindVerificationRequired,
		},
		{
			name:    "user not active with verified account and 401 is a session problem",
			status:  401,
			message: "User not active",
			opts:    []apierr.Option{apierr.WithVerifiedAccount(true)},
			want:    apierr.KindSessionInvalid,
		},
		{
			name:    "user not active without verification context is ambiguous",
			status:  400,
			message: "account isn't active",
			want:    apierr.KindAccountNotActive,
		},
		{
			name:    "user not active with unverified account stays ambiguous",
			status:  401,
			message: "account is not active",
			opts:    []apierr.Option{apierr.WithVerifiedAccount(false)},
			want:    apierr.KindAccountNotActive,
		},
		{
			name:    "401 permissions message is not a session problem",
			status:  401,
			message: "You are not authorized to perform this action",
			want:    apierr.KindNotAuthorized,
		},
		{
			name:    "401 access denied is a permissions problem",
			status:  401,
			message: "Access denied",
			want:    apierr.KindNotAuthorized,
		},
		{
			name:    "plain 401 invalidates the session",
			status:  401,
			message: "",
			want:    apierr.KindSessionInvalid,
		},
		{
			name:    "invalid token invalidates the session",
			status:  401,
			message: "invalid token",
			want:    apierr.KindSessionInvalid,
		},
		{
			name:    "expired message without 401 still invalidates",
			status:  400,
			message: "Your session has expired",
			want:    apierr.KindSessionInvalid,
		},
		{
			name:   "404 maps to endpoint not found",
			status: 404,
			want:   apierr.KindEndpointNotFound,
		},
		{
			name:   "429 maps to rate limited",
			status: 429,
			want:   apierr.KindRateLimited,
		},
		{
			name:   "500 maps to server error",
			status: 500,
			want:   apierr.KindServerError,
		},
		{
			name:   "503 maps to server error",
			status: 503,
			want:   apierr.KindServerError,
		},
		{
			name:    "no status at all is a network failure",
			status:  0,
			message: "connection refused",
			want:    apierr.KindNetworkError,
		},
		{
			name:    "unrecognized error is generic",
			status:  400,
			message: "post content too long",
			want:    apierr.KindGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, apierr.ClassifyStatus(tt.status, tt.message, tt.opts...))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("classifies structured API errors", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(401, []byte(`{"message":"token expired"}`))
		assert.Equal(t, apierr.KindSessionInvalid, apierr.Classify(err))
	})

	t.Run("validation errors take the validation kind", func(t *testing.T) {
		t.Parallel()

		err := apierr.FromResponse(422, []byte(`{"message":"invalid input","errors":{"email":["taken"]}}`))
		assert.Equal(t, apierr.KindValidation, apierr.Classify(err))
	})

	t.Run("plain errors classify as network failures", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, apierr.KindNetworkError, apierr.Classify(errors.New("dial tcp: timeout")))
	})

	t.Run("nil error is generic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, apierr.KindGeneric, apierr.Classify(nil))
	})
}

func TestKind_ClearsSession(t *testing.T) {
	t.Parallel()

	assert.True(t, apierr.KindSessionInvalid.ClearsSession())
	assert.False(t, apierr.KindVerificationRequired.ClearsSession())
	assert.False(t, apierr.KindNotAuthorized.ClearsSession())
	assert.False(t, apierr.KindAccountNotActive.ClearsSession())
	assert.False(t, apierr.KindServerError.ClearsSession())
}
