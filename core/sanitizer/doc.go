// Package sanitizer scrubs outgoing request payloads before transmission.
//
// The NeyborHuud backend rejects certain client-inferred identifier fields
// with a type-cast failure, so the SDK guarantees they never leave the
// client regardless of how a payload was assembled upstream. The sanitizer
// walks any JSON-like value (maps, slices, scalars) and returns a deep copy
// with a fixed deny list of key names removed at every nesting level.
//
// # Usage
//
//	payload := map[string]any{
//		"content":     "hello",
//		"communityId": "abc123", // stripped
//	}
//	clean := sanitizer.Clean(payload)
//
// Package-level functions use the default deny list. Construct a Sanitizer
// with New to scrub a custom key set:
//
//	s := sanitizer.New("internalId", "debugInfo")
//	clean := s.Clean(payload)
//
// Sanitization is pure and idempotent: Clean(Clean(x)) == Clean(x), unknown
// keys are preserved, and non-object scalars pass through unchanged.
package sanitizer
