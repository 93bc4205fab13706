package geocode

import (
	"context"

	"github.com/neyborhuud/huud-go/core/client"
)

// Backend resolves locations through the NeyborHuud geo preview
// endpoint, which knows the app's own neighborhood boundaries.
type Backend struct {
	api *client.Client
}

// NewBackend creates a Backend provider over api.
func NewBackend(api *client.Client) *Backend {
	return &Backend{api: api}
}

// Reverse implements Provider.
func (b *Backend) Reverse(ctx context.Context, lat, lng float64) (*Address, error) {
	resp, err := b.api.Post(ctx, "/geo/preview", map[string]any{
		"lat": lat,
		"lng": lng,
	})
	if err != nil {
		return nil, err
	}

	var body struct {
		Neighborhood string `json:"neighborhood"`
		LGA          string `json:"lga"`
		State        string `json:"state"`
		Country      string `json:"country"`
		Formatted    string `json:"formatted"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Neighborhood == "" && body.Formatted == "" {
		return nil, ErrNoResult
	}

	addr := &Address{
		Neighborhood: body.Neighborhood,
		LGA:          body.LGA,
		State:        body.State,
		Country:      body.Country,
		Formatted:    body.Formatted,
		Source:       "backend",
	}
	if addr.Formatted == "" {
		addr.Formatted = format(addr.Neighborhood, addr.LGA, addr.State, addr.Country)
	}
	return addr, nil
}
