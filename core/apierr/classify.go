package apierr

import (
	"errors"
	"net/http"
	"strings"
)

// classifyInput carries everything a rule may inspect: the HTTP status
// (zero for transport failures), the lowercased message, whether a
// response arrived at all, and caller-supplied context.
type classifyInput struct {
	status          int
	message         string
	hasResponse     bool
	hasFields       bool
	accountVerified bool
}

// Option supplies caller context to Classify.
type Option func(*classifyInput)

// WithVerifiedAccount tells the classifier the locally stored user profile
// is marked email-verified. A verified account receiving "user not active"
// with a 401 is a token problem masquerading as an activation problem.
func WithVerifiedAccount(verified bool) Option {
	return func(in *classifyInput) {
		in.accountVerified = verified
	}
}

// rule is one step of the ordered classification sequence.
type rule struct {
	name  string
	match func(classifyInput) bool
	kind  Kind
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom; the first match wins. Order is the
// contract: verification signals outrank activation ambiguity, which
// outranks generic authentication failure, which outranks the
// status-keyed presentation kinds.
var rules = []rule{
	{
		name: "network failure",
		match: func(in classifyInput) bool {
			return !in.hasResponse
		},
		kind: KindNetworkError,
	},
	{
		name: "email verification required",
		match: func(in classifyInput) bool {
			return in.status == http.StatusForbidden ||
				containsAny(in.message, "verify your email", "verification", "email not verified")
		},
		kind: KindVerificationRequired,
	},
	{
		name: "inactive account, verified user with 401 token",
		match: func(in classifyInput) bool {
			return isNotActiveMessage(in.message) &&
				in.accountVerified && in.status == http.StatusUnauthorized
		},
		kind: KindSessionInvalid,
	},
	{
		name: "inactive account",
		match: func(in classifyInput) bool {
			return isNotActiveMessage(in.message)
		},
		kind: KindAccountNotActive,
	},
	{
		name: "401 permissions issue",
		match: func(in classifyInput) bool {
			return in.status == http.StatusUnauthorized &&
				containsAny(in.message, "not authorized", "unauthorized", "access denied", "permission")
		},
		kind: KindNotAuthorized,
	},
	{
		name: "invalid or expired session",
		match: func(in classifyInput) bool {
			return in.status == http.StatusUnauthorized ||
				containsAny(in.message, "authentication required", "session is invalid", "expired", "invalid token")
		},
		kind: KindSessionInvalid,
	},
	{
		name: "endpoint not found",
		match: func(in classifyInput) bool {
			return in.status == http.StatusNotFound
		},
		kind: KindEndpointNotFound,
	},
	{
		name: "rate limited",
		match: func(in classifyInput) bool {
			return in.status == http.StatusTooManyRequests
		},
		kind: KindRateLimited,
	},
	{
		name: "server error",
		match: func(in classifyInput) bool {
			return in.status >= http.StatusInternalServerError
		},
		kind: KindServerError,
	},
	{
		name: "field validation errors",
		match: func(in classifyInput) bool {
			return in.hasFields
		},
		kind: KindValidation,
	},
}

func isNotActiveMessage(msg string) bool {
	return containsAny(msg, "user not active", "account isn't active", "account is not active")
}

// ClassifyStatus maps a raw status/message pair to an outcome kind. A zero
// status means no HTTP response arrived (transport failure).
func ClassifyStatus(status int, message string, opts ...Option) Kind {
	in := classifyInput{
		status:      status,
		message:     strings.ToLower(message),
		hasResponse: status != 0,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return walk(in)
}

// Classify maps any error from the HTTP client to an outcome kind.
// Errors that are not *Error classify as network failures.
func Classify(err error, opts ...Option) Kind {
	if err == nil {
		return KindGeneric
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return KindNetworkError
	}

	in := classifyInput{
		status:      apiErr.Status,
		message:     strings.ToLower(apiErr.Message),
		hasResponse: apiErr.Status != 0,
		hasFields:   apiErr.HasFields(),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return walk(in)
}

func walk(in classifyInput) Kind {
	for _, r := range rules {
		if r.match(in) {
			return r.kind
		}
	}
	return KindGeneric
}
