package spectral

import (
	"fmt"
	"math"
	"strings"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ReferenceBackend names a fast-transform library used to cross-check the
// matrix engine
type ReferenceBackend string

const (
	BackendGoDSP ReferenceBackend = "go-dsp"
	BackendGonum ReferenceBackend = "gonum"
)

// ReferenceBackends lists every supported backend
func ReferenceBackends() []ReferenceBackend {
	return []ReferenceBackend{BackendGoDSP, BackendGonum}
}

// ParseReferenceBackend resolves a backend name
func ParseReferenceBackend(name string) (ReferenceBackend, error) {
	switch ReferenceBackend(strings.ToLower(strings.TrimSpace(name))) {
	case BackendGoDSP:
		return BackendGoDSP, nil
	case BackendGonum:
		return BackendGonum, nil
	default:
		return "", fmt.Errorf("unknown reference backend %q", name)
	}
}

// Reference computes the same normalized spectrum as DFT using a fast
// transform library. Outputs are scaled by 1/√N so they compare directly
// with DFT coefficients.
type Reference struct {
	backend ReferenceBackend
}

// NewReference creates a reference transform. Unknown backends fall back to go-dsp.
func NewReference(backend ReferenceBackend) *Reference {
	if backend != BackendGonum {
		backend = BackendGoDSP
	}
	return &Reference{backend: backend}
}

// Backend returns the library in use
func (r *Reference) Backend() ReferenceBackend {
	return r.backend
}

// Compute returns the full normalized spectrum of x
func (r *Reference) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	var spectrum []complex128
	switch r.backend {
	case BackendGonum:
		seq := make([]complex128, len(x))
		for i, v := range x {
			seq[i] = complex(v, 0)
		}
		spectrum = fourier.NewCmplxFFT(len(x)).Coefficients(nil, seq)
	default:
		// mjibson/go-dsp handles all sizes, including non-power-of-2
		spectrum = fft.FFTReal(x)
	}

	cmplxs.ScaleReal(1/math.Sqrt(float64(len(x))), spectrum)
	return spectrum
}

// ComputeInverseReal inverts a normalized spectrum and returns the real part
func (r *Reference) ComputeInverseReal(coeffs []complex128) []float64 {
	if len(coeffs) == 0 {
		return []float64{}
	}

	n := float64(len(coeffs))

	var sequence []complex128
	switch r.backend {
	case BackendGonum:
		// gonum's inverse is unnormalized
		sequence = fourier.NewCmplxFFT(len(coeffs)).Sequence(nil, coeffs)
		cmplxs.ScaleReal(1/math.Sqrt(n), sequence)
	default:
		// go-dsp divides by N
		sequence = fft.IFFT(coeffs)
		cmplxs.ScaleReal(math.Sqrt(n), sequence)
	}

	return cmplxs.Real(make([]float64, len(sequence)), sequence)
}

// Comparison summarizes how far engine coefficients are from a reference
type Comparison struct {
	Backend     ReferenceBackend `json:"backend" yaml:"backend"`
	Length      int              `json:"length" yaml:"length"`
	MaxAbsError float64          `json:"max_abs_error" yaml:"max_abs_error"`
}

// Within reports whether the largest deviation is at most tol
func (c Comparison) Within(tol float64) bool {
	return c.MaxAbsError <= tol
}

// Compare measures the L-inf distance between engine and reference spectra.
// Slices of different lengths never match.
func (r *Reference) Compare(engine, reference []complex128) Comparison {
	cmp := Comparison{
		Backend: r.backend,
		Length:  len(engine),
	}

	if len(engine) != len(reference) {
		cmp.MaxAbsError = math.Inf(1)
		return cmp
	}

	cmp.MaxAbsError = cmplxs.Distance(engine, reference, math.Inf(1))
	return cmp
}
