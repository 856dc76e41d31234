package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-dft/algorithms/linalg"
)

func TestFilterConcreteScenario(t *testing.T) {
	dft := newTestDFT(0)
	require.NoError(t, dft.ComputeReal([]float64{0, 1, 0, -1}))

	dft.FilterCoefficients(0.3)
	got := dft.Coefficients()

	assert.Equal(t, complex128(0), got[0])
	assert.Equal(t, complex128(0), got[2])

	// the tiny real parts go, the unit imaginary parts stay
	assert.Equal(t, 0.0, real(got[1]))
	assert.InDelta(t, -1.0, imag(got[1]), 1e-12)
	assert.Equal(t, 0.0, real(got[3]))
	assert.InDelta(t, 1.0, imag(got[3]), 1e-12)
}

func TestFilterComponentsIndependently(t *testing.T) {
	dft := newTestDFT(3)
	// sets coefficients directly through a complex input whose spectrum we know:
	// a single complex exponential at bin k gives √N·amplitude at k only
	n := 4
	input := make([]complex128, n)
	for j := range input {
		angle := 2 * math.Pi * float64(j) / float64(n)
		input[j] = complex(0.5*math.Cos(angle)-0.05*math.Sin(angle), 0.05*math.Cos(angle)+0.5*math.Sin(angle))
	}
	require.NoError(t, dft.ComputeMatrix(linalg.NewColumn(input)))

	// bin 1 is (0.5 + 0.05i)·√4 = 1 + 0.1i
	before := dft.Coefficients()
	require.InDelta(t, 1.0, real(before[1]), 1e-12)
	require.InDelta(t, 0.1, imag(before[1]), 1e-12)

	dft.FilterCoefficients(0.5)
	after := dft.Coefficients()
	assert.InDelta(t, 1.0, real(after[1]), 1e-12)
	assert.Equal(t, 0.0, imag(after[1]))
}

func TestFilterNoOpThresholds(t *testing.T) {
	x := testSignal(19)

	for _, threshold := range []float64{0, -1, math.Inf(-1), math.NaN()} {
		dft := newTestDFT(4)
		require.NoError(t, dft.ComputeReal(x))
		want := dft.Coefficients()

		dft.FilterCoefficients(threshold)
		assert.Equal(t, want, dft.Coefficients(), "threshold=%v", threshold)
	}
}

func TestFilterIdempotent(t *testing.T) {
	dft := newTestDFT(0)
	require.NoError(t, dft.ComputeReal(testSignal(40)))

	dft.FilterCoefficients(0.15)
	once := dft.Coefficients()
	dft.FilterCoefficients(0.15)
	assert.Equal(t, once, dft.Coefficients())
	assert.Equal(t, 40, dft.Size())
}

func TestFilterMonotone(t *testing.T) {
	x := testSignal(33)
	thresholds := []float64{0, 0.01, 0.05, 0.1, 0.2, 0.5, 1, 5}

	zeroed := func(threshold float64) []bool {
		dft := newTestDFT(0)
		require.NoError(t, dft.ComputeReal(x))
		dft.FilterCoefficients(threshold)

		coeffs := dft.Coefficients()
		mask := make([]bool, 2*len(coeffs))
		for k, c := range coeffs {
			mask[2*k] = real(c) == 0
			mask[2*k+1] = imag(c) == 0
		}
		return mask
	}

	previous := zeroed(thresholds[0])
	for _, threshold := range thresholds[1:] {
		current := zeroed(threshold)
		for i := range previous {
			if previous[i] {
				assert.True(t, current[i], "component %d zeroed below threshold but kept at %v", i, threshold)
			}
		}
		previous = current
	}

	// the largest threshold exceeds every component
	for i, z := range previous {
		assert.True(t, z, "component %d", i)
	}
}

func TestZeroedComponents(t *testing.T) {
	dft := newTestDFT(2)
	assert.Equal(t, 0, dft.ZeroedComponents())

	require.NoError(t, dft.ComputeReal([]float64{1, 1, 1, 1}))
	dft.FilterCoefficients(1e-9)

	// only the DC real part survives
	assert.Equal(t, 7, dft.ZeroedComponents())
}

func TestFilterEmptyEngine(t *testing.T) {
	dft := newTestDFT(0)
	dft.FilterCoefficients(1)
	assert.Equal(t, 0, dft.Size())
}
