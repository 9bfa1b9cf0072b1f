package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/numlab/internal/numeric"
)

var (
	decayX = []float64{1, 2, 3, 4, 5, 6, 7, 8}
	decayY = []float64{521, 308, 240, 204, 183, 175, 159, 152}
)

func TestFitDecayData(t *testing.T) {
	line, err := Fit(decayX, decayY)
	require.NoError(t, err)

	assert.True(t, numeric.IsFinite(line.K))
	assert.Less(t, line.K, 0.0)
	assert.InDelta(t, -42.19047619047619, line.K, 1e-9)
	assert.InDelta(t, 432.6071428571429, line.B, 1e-9)
}

func TestFitExactLine(t *testing.T) {
	x := []float64{-2, 0, 1, 3.5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2.5*v - 1
	}

	line, err := Fit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, line.K, 1e-12)
	assert.InDelta(t, -1.0, line.B, 1e-12)

	s, err := Summarize(line, x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0, s.RMSE, 1e-12)
	assert.InDelta(t, 1, s.R2, 1e-12)
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want error
	}{
		{"mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}, numeric.ErrDegenerateRange},
		{"single sample", []float64{1}, []float64{1}, numeric.ErrDegenerateRange},
		{"empty", nil, nil, numeric.ErrDegenerateRange},
		{"vertical", []float64{2, 2, 2}, []float64{1, 2, 3}, numeric.ErrDegenerateDenominator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSummarizeDecay(t *testing.T) {
	line, err := Fit(decayX, decayY)
	require.NoError(t, err)

	s, err := Summarize(line, decayX, decayY)
	require.NoError(t, err)
	assert.InDelta(t, 63.08523617939085, s.RMSE, 1e-6)
	assert.InDelta(t, 130.58333333333331, s.MaxAbsError, 1e-6)
	assert.InDelta(t, 0.7013309050185396, s.R2, 1e-9)
}

func TestSummarizeConstant(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 4, 4}

	line, err := Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, line.K)

	s, err := Summarize(line, x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.R2)
}

func TestResiduals(t *testing.T) {
	line := Line{K: 1, B: 0}
	r, err := line.Residuals([]float64{1, 2}, []float64{1.5, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -1}, r, 1e-12)
	assert.Equal(t, 3.0, line.Func()(3))
	assert.False(t, math.IsNaN(line.At(0)))
}
