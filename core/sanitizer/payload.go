package sanitizer

import (
	"bytes"
	"encoding/json"
)

// Default deny list. These community identifiers are inferred on the client
// and cause BSON cast errors when the backend receives them.
var defaultDenyList = []string{
	"assignedCommunityId",
	"communityId",
	"communityName",
}

// Sanitizer removes a fixed set of keys from JSON-like values at every
// nesting depth. The zero value strips nothing; use New for a custom deny
// list or the package-level functions for the default one.
type Sanitizer struct {
	deny map[string]struct{}
}

// New creates a Sanitizer that strips the given key names.
func New(keys ...string) *Sanitizer {
	deny := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		deny[k] = struct{}{}
	}
	return &Sanitizer{deny: deny}
}

// Default returns a Sanitizer with the standard deny list.
func Default() *Sanitizer {
	return New(defaultDenyList...)
}

// Denied reports whether key is on the deny list.
func (s *Sanitizer) Denied(key string) bool {
	_, denied := s.deny[key]
	return denied
}

// Clean returns a deep copy of v with deny-listed keys removed at every
// nesting level. Maps and slices are copied; scalars pass through
// unchanged. Clean never fails and never mutates its input.
func (s *Sanitizer) Clean(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if _, denied := s.deny[k]; denied {
				continue
			}
			out[k] = s.Clean(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.Clean(item)
		}
		return out
	default:
		return v
	}
}

// CleanJSON sanitizes an encoded JSON document. Payloads that do not parse
// as JSON are returned unchanged so the transport can send them as-is.
func (s *Sanitizer) CleanJSON(payload []byte) []byte {
	if len(bytes.TrimSpace(payload)) == 0 {
		return payload
	}

	var parsed any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return payload
	}

	clean, err := json.Marshal(s.Clean(parsed))
	if err != nil {
		return payload
	}
	return clean
}

// CleanValue sanitizes an arbitrary Go value (typically a request struct)
// by round-tripping it through its JSON representation. Returns the
// sanitized value as generic JSON types (map[string]any, []any, scalars).
func (s *Sanitizer) CleanValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return s.Clean(parsed), nil
}

// Clean sanitizes v with the default deny list.
func Clean(v any) any {
	return Default().Clean(v)
}

// CleanJSON sanitizes an encoded JSON document with the default deny list.
func CleanJSON(payload []byte) []byte {
	return Default().CleanJSON(payload)
}
