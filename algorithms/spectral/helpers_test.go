package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// exampleSignal is the hard-coded demo vector used by the CLI
var exampleSignal = []float64{-2.2, -2.8, -6.1, -3.9, 0.0, 1.1, -0.6, -1.1}

// directDFT evaluates the normalized DFT straight from its definition
func directDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	scale := 1 / math.Sqrt(float64(n))
	for k := range n {
		var sum complex128
		for j, v := range x {
			angle := -2 * math.Pi * float64(k*j) / float64(n)
			sum += complex(v*math.Cos(angle), v*math.Sin(angle))
		}
		out[k] = complex(real(sum)*scale, imag(sum)*scale)
	}
	return out
}

// testSignal returns a deterministic mixture of a few tones plus a ramp
func testSignal(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		t := float64(i) / float64(n)
		x[i] = 1.5*math.Sin(2*math.Pi*3*t) + 0.25*math.Cos(2*math.Pi*5*t) + 0.1*float64(i%4) - 0.3
	}
	return x
}

func requireComplexNear(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, real(want[i]), real(got[i]), tol, "real part at %d", i)
		require.InDelta(t, imag(want[i]), imag(got[i]), tol, "imag part at %d", i)
	}
}

func newTestDFT(workers int) *DFT {
	return NewDFTWithConfig(&DFTConfig{Workers: workers})
}
