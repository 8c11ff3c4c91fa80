package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// HERE API configuration.
	HereAPIKey    string
	HereTimeout   time.Duration
	HereCacheSize int

	// Rendering defaults, overridable per request.
	RenderWidth      int
	RenderHeight     int
	TransportMode    string
	RangeType        string
	DefaultRanges    []float64
	DefaultUnits     string
	DefaultAxisUnits string
	DefaultAlpha     float64
	ContourWidth     float64
	LabelRounding    int
	ExtentBuffer     float64
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	hereTimeout, err := parseDurationEnv("HERE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	defaultRanges, err := parseFloatsEnv("DEFAULT_RANGES", []float64{600, 1200, 1800})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		HereAPIKey:    os.Getenv("HERE_API_KEY"),
		HereTimeout:   hereTimeout,
		HereCacheSize: parseIntEnv("HERE_CACHE_SIZE", 256),

		RenderWidth:      parseIntEnv("RENDER_WIDTH", 1024),
		RenderHeight:     parseIntEnv("RENDER_HEIGHT", 768),
		TransportMode:    envOrDefault("TRANSPORT_MODE", "car"),
		RangeType:        envOrDefault("RANGE_TYPE", "time"),
		DefaultRanges:    defaultRanges,
		DefaultUnits:     envOrDefault("DEFAULT_UNITS", "seconds"),
		DefaultAxisUnits: envOrDefault("DEFAULT_AXIS_UNITS", "minutes"),
		DefaultAlpha:     parseFloatEnv("DEFAULT_ALPHA", 0.3),
		ContourWidth:     parseFloatEnv("CONTOUR_WIDTH", 0),
		LabelRounding:    parseIntEnv("LABEL_ROUNDING", 1),
		ExtentBuffer:     parseFloatEnv("EXTENT_BUFFER", 0.1),
	}

	if cfg.HereAPIKey == "" {
		return nil, errors.New("HERE_API_KEY is required")
	}
	if cfg.RenderWidth <= 0 || cfg.RenderHeight <= 0 {
		return nil, errors.New("RENDER_WIDTH and RENDER_HEIGHT must be positive")
	}
	if cfg.DefaultAlpha < 0 || cfg.DefaultAlpha > 1 {
		return nil, errors.New("DEFAULT_ALPHA must be in [0, 1]")
	}
	if cfg.ExtentBuffer < 0 {
		return nil, errors.New("EXTENT_BUFFER must not be negative")
	}
	if _, _, err := domain.ValidatePair(cfg.DefaultUnits, cfg.DefaultAxisUnits); err != nil {
		return nil, fmt.Errorf("default units: %w", err)
	}
	if cfg.RangeType != "time" && cfg.RangeType != "distance" {
		return nil, errors.New("RANGE_TYPE must be \"time\" or \"distance\"")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntEnv(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func parseFloatEnv(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseFloatsEnv(key string, fallback []float64) ([]float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q is not a number", key, p)
		}
		out = append(out, f)
	}
	return out, nil
}
