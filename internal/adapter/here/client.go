// Package here is an HTTP client for the HERE geocoding and isoline
// routing APIs.
package here

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
)

const (
	defaultGeocodeBaseURL = "https://discover.search.hereapi.com/v1/geocode"
	defaultIsolineBaseURL = "https://isoline.router.hereapi.com/v8/isolines"
)

// Client implements domain.Geocoder and fetches isoline responses.
type Client struct {
	apiKey         string
	httpClient     *http.Client
	geocodeBaseURL string
	isolineBaseURL string
	logger         *slog.Logger
}

// NewClient creates a HERE API client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		geocodeBaseURL: defaultGeocodeBaseURL,
		isolineBaseURL: defaultIsolineBaseURL,
		logger:         logger,
	}
}

// Geocode resolves a free-text search to its best matching coordinates.
func (c *Client) Geocode(ctx context.Context, query string, limit int) (domain.GeocodeResult, error) {
	if limit <= 0 {
		limit = 1
	}
	params := url.Values{
		"apiKey": {c.apiKey},
		"limit":  {strconv.Itoa(limit)},
		"q":      {query},
	}

	var resp geocodeResponse
	if err := c.get(ctx, c.geocodeBaseURL+"?"+params.Encode(), "geocode", &resp); err != nil {
		return domain.GeocodeResult{}, err
	}
	if len(resp.Items) == 0 {
		return domain.GeocodeResult{}, fmt.Errorf("geocode %q: no results", query)
	}

	item := resp.Items[0]
	return domain.GeocodeResult{
		Lat:   item.Position.Lat,
		Lon:   item.Position.Lng,
		Title: item.Title,
	}, nil
}

// FetchIsolines requests isolines around the request origin. A reversed
// request routes toward the point instead, swapping origin for destination
// and departure time for arrival time.
func (c *Client) FetchIsolines(ctx context.Context, req domain.IsolineRequest) (domain.IsolineResponse, error) {
	if req.Ranges.IsEmpty() {
		return domain.IsolineResponse{}, fmt.Errorf("isoline request: no range values")
	}

	originKey, timeKey := "origin", "departureTime"
	if req.Reverse {
		originKey, timeKey = "destination", "arrivalTime"
	}

	params := url.Values{
		"apiKey":        {c.apiKey},
		"transportMode": {req.TransportMode},
		originKey:       {formatCoord(req.OriginLat, req.OriginLon)},
		"range[type]":   {req.RangeType},
		"range[values]": {req.Ranges.Encode()},
	}
	if req.DepartureTime != "" {
		params.Set(timeKey, req.DepartureTime)
	}

	var resp domain.IsolineResponse
	if err := c.get(ctx, c.isolineBaseURL+"?"+params.Encode(), "isoline", &resp); err != nil {
		return domain.IsolineResponse{}, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, fullURL, source string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("here API request failed",
			slog.String("source", source),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("here API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", source, err)
	}
	return nil
}

func formatCoord(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}

// HERE geocoding API response types.

type geocodeResponse struct {
	Items []geocodeItem `json:"items"`
}

type geocodeItem struct {
	Title    string   `json:"title"`
	Position position `json:"position"`
}

type position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
