// Command isomap renders a single isochrone map to an SVG file.
//
// Usage:
//
//	go run ./cmd/isomap -q "Berlin, Germany" -ranges 600,1200,1800 -o berlin.svg
//	go run ./cmd/isomap -lat 52.52 -lon 13.405 -mode pedestrian -o walk.svg
//
// The HERE API key comes from the environment (HERE_API_KEY), optionally
// via a .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/flexpolyline"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/here"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/adapter/svg"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/config"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/observability"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	query := flag.String("q", "", "free-text origin query, geocoded via HERE")
	lat := flag.Float64("lat", 0, "origin latitude; used when -q is empty")
	lon := flag.Float64("lon", 0, "origin longitude; used when -q is empty")
	ranges := flag.String("ranges", encodeRanges(cfg.DefaultRanges), "comma-separated range values")
	mode := flag.String("mode", cfg.TransportMode, "transport mode (car, pedestrian, truck)")
	rangeType := flag.String("range-type", cfg.RangeType, "range type (time or distance)")
	units := flag.String("units", cfg.DefaultUnits, "unit of the range values")
	axisUnits := flag.String("axis-units", cfg.DefaultAxisUnits, "unit used in region labels")
	rounding := flag.Int("rounding", cfg.LabelRounding, "decimal places in labels")
	contour := flag.Float64("contour", cfg.ContourWidth, "outline width; 0 disables outlines")
	alpha := flag.Float64("alpha", cfg.DefaultAlpha, "fill opacity in [0, 1]")
	departure := flag.String("departure", "", "departure (or arrival, with -reverse) time")
	reverse := flag.Bool("reverse", false, "route toward the origin instead of away from it")
	scaleKm := flag.Float64("scale-km", 0, "scale bar length; 0 selects automatically")
	out := flag.String("o", "isochrone.svg", "output SVG path")
	flag.Parse()

	if *query == "" && (*lat == 0 && *lon == 0) {
		flag.Usage()
		return fmt.Errorf("either -q or -lat/-lon is required")
	}

	rangeValues, err := parseRanges(*ranges)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, "text")

	client := here.NewClient(cfg.HereAPIKey, cfg.HereTimeout, logger)
	canvas := svg.NewCanvas(cfg.RenderWidth, cfg.RenderHeight, svg.Viridis())
	service := render.New(client, client, canvas, flexpolyline.Decoder{}, logger, nil)

	doc, plan, err := service.Render(context.Background(), render.Request{
		Query:         *query,
		Lat:           *lat,
		Lon:           *lon,
		TransportMode: *mode,
		RangeType:     *rangeType,
		Ranges:        domain.MultiRange(rangeValues...),
		Departure:     *departure,
		Reverse:       *reverse,
		ScaleBarKm:    *scaleKm,
		Opts: domain.PlanOptions{
			Units:         *units,
			AxisUnits:     *axisUnits,
			LabelRounding: *rounding,
			ContourWidth:  *contour,
			Alpha:         *alpha,
			BufferRatio:   cfg.ExtentBuffer,
		},
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Printf("wrote %s (%d regions, labels in %s)\n", *out, len(plan.Regions), plan.AxisUnit.Token)
	return nil
}

func parseRanges(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid range value %q", part)
		}
		values = append(values, f)
	}
	return values, nil
}

func encodeRanges(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
