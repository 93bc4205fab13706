package cache

import "strings"

// Key identifies one cached query result: a resource type plus the
// parameters that distinguish concurrent views of it (a single post, a
// feed at a location, a page filter).
type Key struct {
	Resource string
	Params   string
}

// K builds a Key from a resource and optional parameters.
func K(resource string, params ...string) Key {
	return Key{Resource: resource, Params: strings.Join(params, ":")}
}

// FirstParam returns the first parameter segment, or the empty string
// for a parameterless key. Useful for matching every view of one entity
// across page-suffixed keys.
func (k Key) FirstParam() string {
	if i := strings.IndexByte(k.Params, ':'); i >= 0 {
		return k.Params[:i]
	}
	return k.Params
}

// String renders the key for logs.
func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + ":" + k.Params
}
