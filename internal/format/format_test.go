package format

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
)

func testResponse() *analysis.Response {
	zAttractor := 3.2
	zVoid := -2.8
	isAttractor := true
	return &analysis.Response{
		ID: "gen-test",
		Request: analysis.Request{
			Lat: 40.7128, Lng: -74.0060, Radius: 1000, Points: 10000,
			Backend: "pseudo", Mode: analysis.ModeStandard,
		},
		Circles: []analysis.CircleResult{{ID: "center", Radius: 1000}},
		Winners: map[analysis.AnomalyType]analysis.WinnerResult{
			analysis.BlindSpot: {CircleID: "center", Result: analysis.NewPoint(analysis.Coordinates{Lat: 40.713, Lng: -74.005})},
			analysis.Attractor: {CircleID: "center", Result: analysis.NewScoredPoint(analysis.Coordinates{Lat: 40.714, Lng: -74.004}, zAttractor)},
			analysis.Void:      {CircleID: "center", Result: analysis.NewScoredPoint(analysis.Coordinates{Lat: 40.715, Lng: -74.003}, zVoid)},
			analysis.Power:     {CircleID: "center", Result: analysis.NewPowerPoint(analysis.Coordinates{Lat: 40.714, Lng: -74.004}, zAttractor, isAttractor)},
		},
		Metadata: analysis.Metadata{Timestamp: "2026-08-28T12:00:00Z"},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return cfg
}

func TestGet(t *testing.T) {
	for _, name := range []string{"json", "text", "gpx", "url", "JSON"} {
		assert.NotNil(t, Get(name), name)
	}
	assert.Nil(t, Get("yaml"))
	assert.Nil(t, Get(""))
}

func TestTextFormatter(t *testing.T) {
	out, err := TextFormatter{}.Format(testResponse(), analysis.Attractor, testConfig(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Generation gen-test")
	assert.Contains(t, out, "blind_spot")
	assert.Contains(t, out, "attractor")
	assert.Contains(t, out, "void")
	assert.Contains(t, out, "power")
	assert.Contains(t, out, "z=+3.20")
	assert.Contains(t, out, "z=-2.80")
	assert.Contains(t, out, "(attractor)")
	assert.NotContains(t, out, "[center]", "single-circle output omits circle labels")

	// Winner lines come out in canonical type order
	assert.Less(t, strings.Index(out, "blind_spot"), strings.Index(out, "attractor"))
	assert.Less(t, strings.Index(out, "void"), strings.Index(out, "power"))
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(testResponse(), analysis.Attractor, testConfig(t))
	require.NoError(t, err)

	var decoded analysis.Response
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "gen-test", decoded.ID)
	assert.Len(t, decoded.Winners, 4)
}

func TestGPXFormatter(t *testing.T) {
	out, err := GPXFormatter{}.Format(testResponse(), analysis.Attractor, testConfig(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<gpx version="1.1"`)
	assert.Contains(t, out, "<name>Center</name>")
	assert.Contains(t, out, "<name>Attractor</name>")
	assert.Contains(t, out, "<name>Blind_spot</name>")
	assert.Contains(t, out, "<sym>attraction</sym>")
	assert.Contains(t, out, "<sym>void</sym>")
	assert.Contains(t, out, "<sym>star</sym>")
	assert.Contains(t, out, "</gpx>")
}

func TestURLFormatter(t *testing.T) {
	cfg := testConfig(t)

	out, err := URLFormatter{}.Format(testResponse(), analysis.Attractor, cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/@40.714,-74.004,15z", out)

	out, err = URLFormatter{}.Format(testResponse(), analysis.Void, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "40.715")
}

func TestURLFormatter_MissingWinner(t *testing.T) {
	resp := testResponse()
	delete(resp.Winners, analysis.Void)

	_, err := URLFormatter{}.Format(resp, analysis.Void, testConfig(t))
	assert.Error(t, err)
}
