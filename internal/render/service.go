// Package render orchestrates a full isochrone render: geocode the
// origin, fetch isolines, decode them into rings, build the annulus
// plan, and draw it.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/projection"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/observability"
)

// IsolineSource provides raw isoline responses for a request.
type IsolineSource interface {
	FetchIsolines(ctx context.Context, req domain.IsolineRequest) (domain.IsolineResponse, error)
}

// Canvas draws a finished plan, with an optional scale bar, into an
// image document.
type Canvas interface {
	Render(plan *domain.RenderPlan, bar *domain.ScaleBarSpec) ([]byte, error)
}

// Request describes one render. Either Query or the Lat/Lon pair names
// the origin; a non-empty Query wins.
type Request struct {
	Query         string
	Lat, Lon      float64
	TransportMode string
	RangeType     string
	Ranges        domain.RangeSpec
	Departure     string
	Reverse       bool
	Opts          domain.PlanOptions
	ScaleBarKm    float64 // 0 selects the length automatically
}

// Service wires the pipeline stages together.
type Service struct {
	geocoder domain.Geocoder
	source   IsolineSource
	canvas   Canvas
	decoder  domain.PolylineDecoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a render service. Metrics may be nil.
func New(
	geocoder domain.Geocoder,
	source IsolineSource,
	canvas Canvas,
	decoder domain.PolylineDecoder,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		geocoder: geocoder,
		source:   source,
		canvas:   canvas,
		decoder:  decoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Render runs the full pipeline and returns the SVG document alongside
// the plan it drew.
func (s *Service) Render(ctx context.Context, req Request) ([]byte, *domain.RenderPlan, error) {
	start := time.Now()

	doc, plan, err := s.render(ctx, req)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if s.metrics != nil {
		s.metrics.RendersTotal.WithLabelValues(outcome).Inc()
		s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	}
	return doc, plan, err
}

func (s *Service) render(ctx context.Context, req Request) ([]byte, *domain.RenderPlan, error) {
	lat, lon := req.Lat, req.Lon
	if req.Query != "" {
		result, err := s.geocoder.Geocode(ctx, req.Query, 1)
		if err != nil {
			return nil, nil, fmt.Errorf("geocode origin: %w", err)
		}
		lat, lon = result.Lat, result.Lon
		s.logger.Info("origin resolved",
			slog.String("query", req.Query),
			slog.String("title", result.Title),
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
		)
	}

	resp, err := s.source.FetchIsolines(ctx, domain.IsolineRequest{
		OriginLat:     lat,
		OriginLon:     lon,
		TransportMode: req.TransportMode,
		RangeType:     req.RangeType,
		Ranges:        req.Ranges,
		DepartureTime: req.Departure,
		Reverse:       req.Reverse,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch isolines: %w", err)
	}

	set, err := domain.DecodeIsolines(resp, s.decoder)
	if err != nil {
		return nil, nil, err
	}

	plan, err := domain.BuildPlan(set, req.Opts)
	if err != nil {
		return nil, nil, err
	}

	bar := s.buildScaleBar(plan.Extent, req.ScaleBarKm)

	doc, err := s.canvas.Render(plan, bar)
	if err != nil {
		return nil, nil, fmt.Errorf("draw plan: %w", err)
	}

	s.logger.Info("render complete",
		slog.Int("regions", len(plan.Regions)),
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
	)
	if s.metrics != nil {
		s.metrics.RegionsRendered.Observe(float64(len(plan.Regions)))
		spanKm := projection.Distance(
			plan.Extent.Bottom, plan.Extent.Left,
			plan.Extent.Top, plan.Extent.Left,
		) / 1000
		s.metrics.ViewportSpanKm.Observe(spanKm)
	}
	return doc, plan, nil
}

// buildScaleBar anchors a locally flat frame at the viewport center and
// places the bar at bottom-center. A viewport too degenerate to carry a
// bar renders without one.
func (s *Service) buildScaleBar(extent domain.Extent, explicitKm float64) *domain.ScaleBarSpec {
	centerLon := (extent.Bottom + extent.Top) / 2
	barLat := extent.Left + extent.LatSpan()*0.05
	proj := projection.NewLocal(centerLon, barLat)

	bar, err := domain.ComputeScaleBar(extent, proj, domain.ScaleBarLocation{X: 0.5, Y: 0.05}, explicitKm)
	if err != nil {
		var degenerate *domain.DegenerateSpanError
		if errors.As(err, &degenerate) {
			s.logger.Warn("viewport too small for a scale bar",
				slog.Float64("span_meters", degenerate.SpanMeters))
			return nil
		}
		s.logger.Warn("scale bar skipped", slog.String("error", err.Error()))
		return nil
	}
	return &bar
}

// CheckReadiness reports whether the service can reach its isoline
// source. It satisfies the HTTP server's readiness hook.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.source == nil {
		return errors.New("isoline source not configured")
	}
	return nil
}
