package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-here-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HERE_API_KEY", testAPIKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testAPIKey, cfg.HereAPIKey)
	assert.Equal(t, 10*time.Second, cfg.HereTimeout)
	assert.Equal(t, 256, cfg.HereCacheSize)
	assert.Equal(t, 1024, cfg.RenderWidth)
	assert.Equal(t, 768, cfg.RenderHeight)
	assert.Equal(t, "car", cfg.TransportMode)
	assert.Equal(t, "time", cfg.RangeType)
	assert.Equal(t, []float64{600, 1200, 1800}, cfg.DefaultRanges)
	assert.Equal(t, "seconds", cfg.DefaultUnits)
	assert.Equal(t, "minutes", cfg.DefaultAxisUnits)
	assert.Equal(t, 0.3, cfg.DefaultAlpha)
	assert.Equal(t, 0.0, cfg.ContourWidth)
	assert.Equal(t, 1, cfg.LabelRounding)
	assert.Equal(t, 0.1, cfg.ExtentBuffer)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HERE_API_KEY", testAPIKey)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("HERE_TIMEOUT", "5s")
	t.Setenv("HERE_CACHE_SIZE", "64")
	t.Setenv("RENDER_WIDTH", "800")
	t.Setenv("RENDER_HEIGHT", "600")
	t.Setenv("TRANSPORT_MODE", "pedestrian")
	t.Setenv("RANGE_TYPE", "distance")
	t.Setenv("DEFAULT_RANGES", "1000, 2000, 5000")
	t.Setenv("DEFAULT_UNITS", "meters")
	t.Setenv("DEFAULT_AXIS_UNITS", "km")
	t.Setenv("DEFAULT_ALPHA", "0.5")
	t.Setenv("CONTOUR_WIDTH", "0.75")
	t.Setenv("LABEL_ROUNDING", "2")
	t.Setenv("EXTENT_BUFFER", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.HereTimeout)
	assert.Equal(t, 64, cfg.HereCacheSize)
	assert.Equal(t, 800, cfg.RenderWidth)
	assert.Equal(t, 600, cfg.RenderHeight)
	assert.Equal(t, "pedestrian", cfg.TransportMode)
	assert.Equal(t, "distance", cfg.RangeType)
	assert.Equal(t, []float64{1000, 2000, 5000}, cfg.DefaultRanges)
	assert.Equal(t, "meters", cfg.DefaultUnits)
	assert.Equal(t, "km", cfg.DefaultAxisUnits)
	assert.Equal(t, 0.5, cfg.DefaultAlpha)
	assert.Equal(t, 0.75, cfg.ContourWidth)
	assert.Equal(t, 2, cfg.LabelRounding)
	assert.Equal(t, 0.2, cfg.ExtentBuffer)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HERE_API_KEY")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon", "SHUTDOWN_TIMEOUT"},
		{"negative here timeout", "HERE_TIMEOUT", "-5s", "HERE_TIMEOUT"},
		{"bad range list", "DEFAULT_RANGES", "10,abc", "DEFAULT_RANGES"},
		{"alpha out of range", "DEFAULT_ALPHA", "1.5", "DEFAULT_ALPHA"},
		{"negative buffer", "EXTENT_BUFFER", "-0.1", "EXTENT_BUFFER"},
		{"bad range type", "RANGE_TYPE", "banana", "RANGE_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HERE_API_KEY", testAPIKey)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_IncompatibleDefaultUnits(t *testing.T) {
	t.Setenv("HERE_API_KEY", testAPIKey)
	t.Setenv("DEFAULT_UNITS", "seconds")
	t.Setenv("DEFAULT_AXIS_UNITS", "km")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default units")
}
