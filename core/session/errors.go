package session

import "errors"

var (
	// ErrNotFound is returned by a Store when no session is persisted.
	ErrNotFound = errors.New("no stored session")
	// ErrNoSession is returned when an operation requires an
	// authenticated session and none is active.
	ErrNoSession = errors.New("no active session")
	// ErrMalformedToken is returned when the access token cannot be
	// parsed as a JWT for local expiry inspection.
	ErrMalformedToken = errors.New("malformed access token")
	// ErrSaveSession is returned when persisting a session fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrClearSession is returned when removing a persisted session fails.
	ErrClearSession = errors.New("failed to clear session")
)
