// Package http exposes the render service over HTTP alongside health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/config"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/render"
)

// Renderer runs a full isochrone render for a request.
type Renderer interface {
	Render(ctx context.Context, req render.Request) ([]byte, *domain.RenderPlan, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the render route plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	renderer   Renderer
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /render, /healthz, /readyz, and
// /metrics routes.
func NewServer(cfg *config.Config, renderer Renderer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}

	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(renderer))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleRender parses the query parameters, falling back to configured
// defaults, and responds with an SVG document.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc, plan, err := s.renderer.Render(r.Context(), req)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}

	s.logger.Info("render served",
		"regions", len(plan.Regions),
		"axis_unit", plan.AxisUnit.Token,
	)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(doc) //nolint:errcheck // client gone, nothing to do
}

func (s *Server) parseRenderRequest(r *http.Request) (render.Request, error) {
	q := r.URL.Query()

	req := render.Request{
		Query:         q.Get("q"),
		TransportMode: stringParam(q.Get("mode"), s.cfg.TransportMode),
		RangeType:     stringParam(q.Get("rangeType"), s.cfg.RangeType),
		Departure:     q.Get("departure"),
		Opts: domain.PlanOptions{
			Units:         stringParam(q.Get("units"), s.cfg.DefaultUnits),
			AxisUnits:     stringParam(q.Get("axisUnits"), s.cfg.DefaultAxisUnits),
			LabelRounding: s.cfg.LabelRounding,
			ContourWidth:  s.cfg.ContourWidth,
			Alpha:         s.cfg.DefaultAlpha,
			BufferRatio:   s.cfg.ExtentBuffer,
		},
	}

	if req.Query == "" {
		lat, latErr := floatParam(q.Get("lat"))
		lon, lonErr := floatParam(q.Get("lon"))
		if latErr != nil || lonErr != nil || q.Get("lat") == "" || q.Get("lon") == "" {
			return render.Request{}, errors.New("either q or numeric lat and lon are required")
		}
		req.Lat, req.Lon = lat, lon
	}

	ranges, err := parseRanges(q.Get("ranges"), s.cfg.DefaultRanges)
	if err != nil {
		return render.Request{}, err
	}
	req.Ranges = ranges

	if v := q.Get("rounding"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return render.Request{}, errors.New("rounding must be a non-negative integer")
		}
		req.Opts.LabelRounding = n
	}
	if v := q.Get("contour"); v != "" {
		f, err := floatParam(v)
		if err != nil || f < 0 {
			return render.Request{}, errors.New("contour must be a non-negative number")
		}
		req.Opts.ContourWidth = f
	}
	if v := q.Get("alpha"); v != "" {
		f, err := floatParam(v)
		if err != nil || f < 0 || f > 1 {
			return render.Request{}, errors.New("alpha must be in [0, 1]")
		}
		req.Opts.Alpha = f
	}
	if v := q.Get("scaleKm"); v != "" {
		f, err := floatParam(v)
		if err != nil || f <= 0 {
			return render.Request{}, errors.New("scaleKm must be a positive number")
		}
		req.ScaleBarKm = f
	}
	if v := q.Get("reverse"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return render.Request{}, errors.New("reverse must be a boolean")
		}
		req.Reverse = b
	}

	return req, nil
}

func parseRanges(raw string, defaults []float64) (domain.RangeSpec, error) {
	if raw == "" {
		return domain.MultiRange(defaults...), nil
	}
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := floatParam(strings.TrimSpace(part))
		if err != nil || f <= 0 {
			return domain.RangeSpec{}, errors.New("ranges must be comma-separated positive numbers")
		}
		values = append(values, f)
	}
	return domain.MultiRange(values...), nil
}

func stringParam(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func floatParam(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

// statusForError distinguishes caller mistakes from upstream data the
// service could not turn into a drawing.
func statusForError(err error) int {
	var (
		unrecognized *domain.UnrecognizedUnitError
		incompatible *domain.IncompatibleUnitsError
		empty        *domain.EmptyInputError
		duplicate    *domain.DuplicateRangeValueError
		insufficient *domain.InsufficientRingsError
		nonNested    *domain.NonNestedRingsError
	)
	switch {
	case errors.As(err, &unrecognized),
		errors.As(err, &incompatible),
		errors.As(err, &duplicate):
		return http.StatusBadRequest
	case errors.As(err, &empty),
		errors.As(err, &insufficient),
		errors.As(err, &nonNested):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
