package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	nominatimURL = "https://nominatim.openstreetmap.org/reverse"

	// Nominatim's usage policy requires an identifying User-Agent and at
	// most one request per second.
	nominatimUserAgent = "NeyborHuud/1.0 (contact@neyborhuud.com)"
)

// OSMOption configures the OSM provider.
type OSMOption func(*OSM)

// WithHTTPClient replaces the HTTP client used for Nominatim calls.
func WithHTTPClient(httpClient *http.Client) OSMOption {
	return func(o *OSM) {
		o.http = httpClient
	}
}

// WithBaseURL points the provider at a different Nominatim instance.
// Self-hosted instances are not bound by the public rate limit, but the
// limiter stays in place unless replaced.
func WithBaseURL(base string) OSMOption {
	return func(o *OSM) {
		o.base = base
	}
}

// WithLimiter replaces the request limiter.
func WithLimiter(limiter *rate.Limiter) OSMOption {
	return func(o *OSM) {
		o.limiter = limiter
	}
}

// OSM resolves locations via OpenStreetMap Nominatim.
type OSM struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
}

// NewOSM creates a Nominatim provider with the public endpoint and the
// policy-mandated one request per second limit.
func NewOSM(opts ...OSMOption) *OSM {
	o := &OSM{
		http:    &http.Client{Timeout: 10 * time.Second},
		base:    nominatimURL,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// nominatimResult is the jsonv2 reverse geocoding response, reduced to
// the fields the app shows.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		Quarter       string `json:"quarter"`
		County        string `json:"county"`
		City          string `json:"city"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"address"`
}

// Reverse implements Provider.
func (o *OSM) Reverse(ctx context.Context, lat, lng float64) (*Address, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{
		"format": {"jsonv2"},
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lng, 'f', -1, 64)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.base+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := o.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: nominatim returned %d", resp.StatusCode)
	}

	var result nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.DisplayName == "" {
		return nil, ErrNoResult
	}

	neighborhood := result.Address.Neighbourhood
	if neighborhood == "" {
		neighborhood = result.Address.Suburb
	}
	if neighborhood == "" {
		neighborhood = result.Address.Quarter
	}
	lga := result.Address.County
	if lga == "" {
		lga = result.Address.City
	}

	return &Address{
		Neighborhood: neighborhood,
		LGA:          lga,
		State:        result.Address.State,
		Country:      result.Address.Country,
		Formatted:    result.DisplayName,
		Source:       "osm",
	}, nil
}
