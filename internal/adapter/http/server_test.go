package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/http"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/config"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/render"
)

type mockRenderer struct {
	doc      []byte
	plan     *domain.RenderPlan
	err      error
	readyErr error
	gotReq   render.Request
	calls    int
}

func (m *mockRenderer) Render(_ context.Context, req render.Request) ([]byte, *domain.RenderPlan, error) {
	m.calls++
	m.gotReq = req
	return m.doc, m.plan, m.err
}

func (m *mockRenderer) CheckReadiness(_ context.Context) error { return m.readyErr }

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:         ":0",
		TransportMode:    "car",
		RangeType:        "time",
		DefaultRanges:    []float64{600, 1200, 1800},
		DefaultUnits:     "seconds",
		DefaultAxisUnits: "minutes",
		DefaultAlpha:     0.3,
		LabelRounding:    1,
		ExtentBuffer:     0.1,
	}
}

func okRenderer() *mockRenderer {
	return &mockRenderer{
		doc:  []byte("<svg/>"),
		plan: &domain.RenderPlan{AxisUnit: domain.Minutes},
	}
}

func newTestServer(renderer *mockRenderer) *httpadapter.Server {
	return httpadapter.NewServer(testConfig(), renderer, slog.Default())
}

func TestRenderDefaults(t *testing.T) {
	renderer := okRenderer()
	srv := newTestServer(renderer)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/render?q=Berlin", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<svg/>", rec.Body.String())

	got := renderer.gotReq
	assert.Equal(t, "Berlin", got.Query)
	assert.Equal(t, "car", got.TransportMode)
	assert.Equal(t, "time", got.RangeType)
	assert.Equal(t, []float64{600, 1200, 1800}, got.Ranges.Values())
	assert.Equal(t, "seconds", got.Opts.Units)
	assert.Equal(t, "minutes", got.Opts.AxisUnits)
	assert.Equal(t, 0.3, got.Opts.Alpha)
}

func TestRenderParamOverrides(t *testing.T) {
	renderer := okRenderer()
	srv := newTestServer(renderer)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/render?lat=52.52&lon=13.405&ranges=5,10&mode=pedestrian&rangeType=distance"+
			"&units=km&axisUnits=miles&rounding=2&contour=1.5&alpha=0.7"+
			"&departure=2026-08-29T09:00:00&reverse=true&scaleKm=25", nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := renderer.gotReq
	assert.Empty(t, got.Query)
	assert.Equal(t, 52.52, got.Lat)
	assert.Equal(t, 13.405, got.Lon)
	assert.Equal(t, []float64{5, 10}, got.Ranges.Values())
	assert.Equal(t, "pedestrian", got.TransportMode)
	assert.Equal(t, "distance", got.RangeType)
	assert.Equal(t, "km", got.Opts.Units)
	assert.Equal(t, "miles", got.Opts.AxisUnits)
	assert.Equal(t, 2, got.Opts.LabelRounding)
	assert.Equal(t, 1.5, got.Opts.ContourWidth)
	assert.Equal(t, 0.7, got.Opts.Alpha)
	assert.Equal(t, "2026-08-29T09:00:00", got.Departure)
	assert.True(t, got.Reverse)
	assert.Equal(t, 25.0, got.ScaleBarKm)
}

func TestRenderRequiresOrigin(t *testing.T) {
	renderer := okRenderer()
	srv := newTestServer(renderer)

	for _, target := range []string{
		"/render",
		"/render?lat=52.52",
		"/render?lat=abc&lon=13.4",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Zero(t, renderer.calls)
}

func TestRenderBadParams(t *testing.T) {
	srv := newTestServer(okRenderer())

	for _, target := range []string{
		"/render?q=Berlin&ranges=600,abc",
		"/render?q=Berlin&ranges=-5",
		"/render?q=Berlin&alpha=1.5",
		"/render?q=Berlin&rounding=-1",
		"/render?q=Berlin&contour=-2",
		"/render?q=Berlin&scaleKm=0",
		"/render?q=Berlin&reverse=maybe",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestRenderUnitErrorMapsTo400(t *testing.T) {
	renderer := &mockRenderer{
		err: &domain.IncompatibleUnitsError{Source: domain.Seconds, Target: domain.Kilometers},
	}
	srv := newTestServer(renderer)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/render?q=Berlin", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestRenderUpstreamErrorMapsTo502(t *testing.T) {
	renderer := &mockRenderer{err: errors.New("here API error: status 500")}
	srv := newTestServer(renderer)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/render?q=Berlin", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(okRenderer())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(okRenderer())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	renderer := okRenderer()
	renderer.readyErr = errors.New("not ready yet")
	srv := newTestServer(renderer)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(okRenderer())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
