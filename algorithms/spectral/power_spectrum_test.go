package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerSpectrumParseval(t *testing.T) {
	x := testSignal(24)
	dft := newTestDFT(0)
	require.NoError(t, dft.ComputeReal(x))

	energy := 0.0
	for _, v := range x {
		energy += v * v
	}

	total := 0.0
	for _, p := range dft.PowerSpectrum() {
		total += p
	}
	assert.InDelta(t, energy, total, 1e-9)
}

func TestLogPower(t *testing.T) {
	got := LogPower([]float64{0, 1, 10}, DefaultFloorDB)
	assert.InDeltaSlice(t, []float64{-120, 0, 20}, got, 1e-9)

	assert.Empty(t, LogPower(nil, DefaultFloorDB))
	assert.Equal(t, []float64{9, 16}, Power([]float64{3, -4}))
	assert.Equal(t, []float64{5, 1}, Magnitudes([]complex128{3 + 4i, -1i}))
}
