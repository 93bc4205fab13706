// Package geocode resolves coordinates into human-readable neighborhood
// addresses.
//
// Two providers are included: Backend asks the NeyborHuud API, and OSM
// queries OpenStreetMap Nominatim directly (respecting its one request
// per second policy and mandatory User-Agent). Chain tries providers in
// order and returns the first hit, so the backend stays primary with
// Nominatim as the offline fallback:
//
//	provider := geocode.Chain(
//		geocode.NewBackend(api),
//		geocode.NewOSM(),
//	)
//	addr, err := provider.Reverse(ctx, 6.5244, 3.3792)
package geocode
