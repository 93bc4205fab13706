// Package auth implements the account lifecycle against /auth/*:
// login, registration, email verification, password recovery, profile
// completion, and availability checks.
//
// Successful login and registration persist the returned token pair and
// user profile through the session manager, so the HTTP client starts
// attaching the bearer token immediately.
//
//	svc, err := auth.NewService(api, sessions)
//	if err := svc.Login(ctx, email, password); err != nil { ... }
//
// Availability checks (CheckEmail, CheckUsername) are cheap single
// requests; pair them with pkg/debounce when driving them from
// keystrokes.
package auth
