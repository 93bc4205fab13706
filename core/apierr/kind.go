package apierr

// Kind is the user-facing outcome of a failed API call. The UI layer maps
// each kind to presentation (toast copy, navigation); the session layer
// uses ClearsSession to decide whether to destroy stored credentials.
type Kind int

const (
	// KindGeneric surfaces the raw backend message without navigation.
	KindGeneric Kind = iota

	// KindVerificationRequired means the account's email must be verified
	// before the action is allowed. The UI redirects to verification.
	KindVerificationRequired

	// KindAccountNotActive is the ambiguous activation state: the backend
	// reported an inactive account without enough signal to tell email
	// verification apart from account activation.
	KindAccountNotActive

	// KindSessionInvalid means the token is expired or invalid. Stored
	// credentials are cleared and the user is sent to login.
	KindSessionInvalid

	// KindNotAuthorized is a permissions failure for an authenticated
	// user. The session stays intact.
	KindNotAuthorized

	// KindEndpointNotFound is a 404 for a route the client expected.
	KindEndpointNotFound

	// KindRateLimited is a 429.
	KindRateLimited

	// KindServerError is a 5xx.
	KindServerError

	// KindNetworkError is a transport failure with no HTTP status.
	KindNetworkError

	// KindValidation carries field-level errors to surface verbatim.
	KindValidation
)

var kindNames = map[Kind]string{
	KindGeneric:              "generic",
	KindVerificationRequired: "verification_required",
	KindAccountNotActive:     "account_not_active",
	KindSessionInvalid:       "session_invalid",
	KindNotAuthorized:        "not_authorized",
	KindEndpointNotFound:     "endpoint_not_found",
	KindRateLimited:          "rate_limited",
	KindServerError:          "server_error",
	KindNetworkError:         "network_error",
	KindValidation:           "validation",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ClearsSession reports whether this outcome requires destroying the
// stored session. Only an invalid/expired token does; permissions and
// verification failures leave credentials intact.
func (k Kind) ClearsSession() bool {
	return k == KindSessionInvalid
}
