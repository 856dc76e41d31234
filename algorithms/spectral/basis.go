package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-dft/algorithms/common"
	"github.com/RyanBlaney/sonido-dft/algorithms/linalg"
	"github.com/RyanBlaney/sonido-dft/logging"
)

// OmegaToPower returns e^(-2πi·exponent/n), the exponent-th power of the
// principal n-th root of unity used by the forward transform.
func OmegaToPower(n, exponent int) complex128 {
	angle := -2 * math.Pi * float64(exponent) / float64(n)
	return complex(math.Cos(angle), math.Sin(angle))
}

// BuildBasis returns the n×n orthonormal DFT matrix with
// basis[r][c] = e^(-2πi·r·c/n) / √n, or an empty matrix when n <= 0.
//
// Cells are distributed over workers by an interleaved stride across the
// flattened row-major index space, so each cell is written exactly once.
// The result is bit-for-bit identical for any worker count and exactly
// symmetric.
func BuildBasis(n, workers int) *linalg.CMatrix {
	basis := linalg.NewCMatrix(n, n)
	if n <= 0 {
		return basis
	}

	workers = common.WorkerCount(workers)
	logging.Debug("Building DFT basis", logging.Fields{
		"component": "dft",
		"size":      n,
		"workers":   workers,
	})

	scale := 1 / math.Sqrt(float64(n))
	cells := basis.RawData()

	common.ParallelFor(n*n, workers, func(i int) {
		row, col := i/n, i%n
		// r·c mod n names the same root of unity and keeps the angle small
		w := OmegaToPower(n, (row*col)%n)
		cells[i] = complex(real(w)*scale, imag(w)*scale)
	})

	return basis
}

// CreateFourierMatrix replaces the stored basis with the n×n transform matrix.
// The stored input and coefficients are left untouched.
func (d *DFT) CreateFourierMatrix(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.basis.Reset()
	d.basis = BuildBasis(n, d.workers())
}
