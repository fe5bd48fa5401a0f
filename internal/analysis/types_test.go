package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_Validate(t *testing.T) {
	assert.NoError(t, Coordinates{Lat: 90, Lng: 180}.Validate())
	assert.NoError(t, Coordinates{Lat: -90, Lng: -180}.Validate())
	assert.ErrorIs(t, Coordinates{Lat: 90.0001, Lng: 0}.Validate(), ErrInvalidCoordinates)
	assert.ErrorIs(t, Coordinates{Lat: 0, Lng: 180.0001}.Validate(), ErrInvalidCoordinates)
}

func TestAnomalyTypes_Order(t *testing.T) {
	assert.Equal(t, []AnomalyType{BlindSpot, Attractor, Void, Power}, AnomalyTypes())
}

func TestParseAnomalyType(t *testing.T) {
	for name, want := range map[string]AnomalyType{
		"blind_spot": BlindSpot,
		"attractor":  Attractor,
		"void":       Void,
		"power":      Power,
		"Attractor":  Attractor,
	} {
		got, err := ParseAnomalyType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseAnomalyType("vortex")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStandard, mode)

	mode, err = ParseMode("flower_power")
	require.NoError(t, err)
	assert.Equal(t, ModeFlower, mode)

	_, err = ParseMode("spiral")
	assert.Error(t, err)
}

func TestResponse_JSONRoundTrip(t *testing.T) {
	z := 2.5
	isAttractor := true
	resp := Response{
		ID: "test-id",
		Winners: map[AnomalyType]WinnerResult{
			Power: {CircleID: "center", Result: Point{
				Coords:      Coordinates{Lat: 40.7, Lng: -74.0},
				ZScore:      &z,
				IsAttractor: &isAttractor,
			}},
		},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"power"`)

	var decoded Response
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, resp.Winners[Power], decoded.Winners[Power])
}
