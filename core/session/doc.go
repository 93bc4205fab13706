// Package session manages the client's authenticated session: the access
// and refresh tokens plus the cached user profile, persisted through a
// pluggable Store and rehydrated at process start.
//
// A Manager holds exactly one active session. Login and registration call
// Set; explicit logout calls Clear; a fatal authentication failure from
// the HTTP client calls Invalidate, which destroys stored credentials and
// fires registered hooks after a short delay so the UI can show the
// failure message before navigating to login:
//
//	store, _ := sqlite.Open(path)
//	mgr, _ := session.NewManager(ctx, store,
//		session.WithOnInvalidate(func(reason string) { nav.To("/login") }),
//	)
//
// Token expiry can be inspected locally without a round trip:
// TokenExpiresAt parses the access token's exp claim without verifying the
// signature (the backend remains the authority on validity).
package session
