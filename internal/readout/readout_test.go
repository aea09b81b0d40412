package readout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/landmark"
)

func TestFormat_DirectionResult(t *testing.T) {
	got, err := Format(landmark.DirectionResult{
		LeftNoseArea:     1234.567,
		RightNoseArea:    600,
		LeftToRightRatio: 2.0576,
		Direction:        landmark.DirectionCenter,
	})
	require.NoError(t, err)

	assert.Equal(t,
		`{"left_nose_area":"1234.6","right_nose_area":"600.0","left_to_right_ratio":"2.1","direction":"center"}`,
		got,
	)
}

func TestFormat_Nested(t *testing.T) {
	got, err := Format(map[string]any{
		"box":   landmark.Box{Left: 1.25, Top: 2, Right: 3, Bottom: 4, Width: 1.75, Height: 2},
		"flags": []any{true, nil, 7},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`{"box":{"left":"1.2","top":"2.0","right":"3.0","bottom":"4.0","width":"1.8","height":"2.0"},"flags":[true,null,"7.0"]}`,
		got,
	)
}

func TestFormat_Unmarshalable(t *testing.T) {
	_, err := Format(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{-3.14159, "-3.1"},
		{99.96, "100.0"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.Copysign(0, -1), "0.0"},
		{0.25, "0.3"},
		{12.25, "12.3"},
		{-0.25, "-0.3"},
		{0.75, "0.8"},
		{2.5, "2.5"},
		{0.35, "0.3"},
		{1.05, "1.1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Decimal(tt.in))
	}
}

func TestThrottle(t *testing.T) {
	th := NewThrottle(3)

	var fired []int
	for frame := 1; frame <= 9; frame++ {
		if th.Tick() {
			fired = append(fired, frame)
		}
	}

	assert.Equal(t, []int{3, 6, 9}, fired)
	assert.Equal(t, 3, th.Interval())
}

func TestThrottle_MinimumInterval(t *testing.T) {
	th := NewThrottle(0)

	assert.Equal(t, 1, th.Interval())
	assert.True(t, th.Tick())
	assert.True(t, th.Tick())
}
