package geocode

import (
	"context"
	"errors"
	"strings"
)

// ErrNoResult is returned when no provider could resolve the location.
var ErrNoResult = errors.New("geocode: no result for location")

// Address is a resolved location, most specific field first.
type Address struct {
	Neighborhood string `json:"neighborhood"`
	LGA          string `json:"lga"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Formatted    string `json:"formatted"`
	Source       string `json:"source"`
}

// Label returns the shortest human label: the neighborhood when known,
// otherwise the formatted address.
func (a Address) Label() string {
	if a.Neighborhood != "" {
		return a.Neighborhood
	}
	return a.Formatted
}

// format joins the non-empty parts into a display string.
func format(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// Provider resolves coordinates to an address.
type Provider interface {
	Reverse(ctx context.Context, lat, lng float64) (*Address, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, lat, lng float64) (*Address, error)

// Reverse implements Provider.
func (f ProviderFunc) Reverse(ctx context.Context, lat, lng float64) (*Address, error) {
	return f(ctx, lat, lng)
}

type chain []Provider

// Chain combines providers, querying each in order and returning the
// first resolved address. When every provider fails, the last error is
// returned, or ErrNoResult if none produced one.
func Chain(providers ...Provider) Provider {
	return chain(providers)
}

func (c chain) Reverse(ctx context.Context, lat, lng float64) (*Address, error) {
	var lastErr error
	for _, p := range c {
		addr, err := p.Reverse(ctx, lat, lng)
		if err != nil {
			lastErr = err
			continue
		}
		if addr != nil {
			return addr, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoResult
}
