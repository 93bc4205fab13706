// Package apierr defines the structured error type returned by the HTTP
// client and the classifier that maps raw transport failures onto
// user-facing outcome kinds.
//
// Classification is an explicit ordered list of (predicate, kind) rules
// evaluated in sequence; the first match wins. This keeps the precedence
// between overlapping backend signals (a 403 verification error versus a
// 401 expired token versus an ambiguous "user not active" message)
// auditable and directly testable instead of buried in nested
// conditionals.
//
//	kind := apierr.Classify(err, apierr.WithVerifiedAccount(user.EmailVerified))
//	if kind.ClearsSession() {
//		sessions.Invalidate(ctx, kind.String())
//	}
package apierr
