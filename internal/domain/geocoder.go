package domain

import "context"

// GeocodeResult is the best match for a free-text place query.
type GeocodeResult struct {
	Lat   float64
	Lon   float64
	Title string
}

// Geocoder resolves free-text place queries to coordinates.
type Geocoder interface {
	// Geocode returns the top-ranked match among at most limit results.
	Geocode(ctx context.Context, query string, limit int) (GeocodeResult, error)
}
