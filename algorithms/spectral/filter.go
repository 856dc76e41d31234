package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-dft/algorithms/common"
	"github.com/RyanBlaney/sonido-dft/logging"
)

// FilterCoefficients zeroes the real part of every coefficient whose real part
// has an absolute value strictly below threshold, and independently does the
// same for the imaginary part. A threshold <= 0 changes nothing. Filtering is
// idempotent and never resizes the coefficients.
func (d *DFT) FilterCoefficients(threshold float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	coeffs := d.coefficients.RawData()
	workers := d.workers()

	d.logger.Debug("Filtering coefficients", logging.Fields{
		"function":  "FilterCoefficients",
		"threshold": threshold,
		"size":      len(coeffs),
		"workers":   workers,
	})

	common.ParallelFor(len(coeffs), workers, func(k int) {
		re, im := real(coeffs[k]), imag(coeffs[k])
		if math.Abs(re) < threshold {
			re = 0
		}
		if math.Abs(im) < threshold {
			im = 0
		}
		coeffs[k] = complex(re, im)
	})
}

// ZeroedComponents counts coefficient components (real and imaginary parts
// separately) that are exactly zero.
func (d *DFT) ZeroedComponents() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	zeroed := 0
	for _, c := range d.coefficients.RawData() {
		if real(c) == 0 {
			zeroed++
		}
		if imag(c) == 0 {
			zeroed++
		}
	}
	return zeroed
}
