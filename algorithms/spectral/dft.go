package spectral

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/RyanBlaney/sonido-dft/algorithms/common"
	"github.com/RyanBlaney/sonido-dft/algorithms/linalg"
	"github.com/RyanBlaney/sonido-dft/logging"
)

// ErrNotColumnVector is returned when the transform input has more than one column.
var ErrNotColumnVector = errors.New("spectral: input must be an N×1 column vector")

// DFTConfig holds engine configuration
type DFTConfig struct {
	// Workers is the goroutine pool size for the parallel phases.
	// 0 means runtime.NumCPU().
	Workers int `json:"workers"`
}

// DefaultDFTConfig returns the default engine configuration
func DefaultDFTConfig() *DFTConfig {
	return &DFTConfig{
		Workers: 0,
	}
}

// DFT computes a Discrete Fourier Transform by explicitly building the
// orthonormal N×N transform matrix and applying it to the input vector.
// Construction and application are O(N²); this is intentionally not a fast
// transform.
//
// The engine owns three matrices: the basis (N×N), the most recent input
// (N×1) and the resulting coefficients (N×1). Every Compute call rebuilds all
// three. A DFT is safe for concurrent use; callers that mutate (Compute*,
// CreateFourierMatrix, FilterCoefficients) are serialized against each other
// and against readers.
type DFT struct {
	mu           sync.RWMutex
	basis        *linalg.CMatrix
	input        *linalg.CMatrix
	coefficients *linalg.CMatrix

	config *DFTConfig
	logger logging.Logger
}

// NewDFT creates an engine with the default configuration
func NewDFT() *DFT {
	return NewDFTWithConfig(nil)
}

// NewDFTWithConfig creates an engine. A nil config uses DefaultDFTConfig.
func NewDFTWithConfig(config *DFTConfig) *DFT {
	if config == nil {
		config = DefaultDFTConfig()
	}

	return &DFT{
		basis:        linalg.NewCMatrix(0, 0),
		input:        linalg.NewCMatrix(0, 0),
		coefficients: linalg.NewCMatrix(0, 0),
		config:       config,
		logger: logging.WithFields(logging.Fields{
			"component": "dft",
		}),
	}
}

func (d *DFT) workers() int {
	return common.WorkerCount(d.config.Workers)
}

// ComputeReal transforms real samples. Each sample becomes a complex value
// with a zero imaginary part.
func (d *DFT) ComputeReal(samples []float64) error {
	return d.ComputeMatrix(linalg.NewRealColumn(samples))
}

// ComputeMatrix transforms an N×1 complex column vector. The stored basis,
// input and coefficients are cleared first and rebuilt for N = data.Rows().
// An empty (or nil) input leaves all three matrices empty.
func (d *DFT) ComputeMatrix(data *linalg.CMatrix) error {
	if data == nil {
		data = linalg.NewCMatrix(0, 0)
	}
	if data.Cols() > 1 {
		return fmt.Errorf("%w: got %d×%d", ErrNotColumnVector, data.Rows(), data.Cols())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.basis.Reset()
	d.input.Reset()
	d.coefficients.Reset()

	d.input = data.Clone()
	n := d.input.Rows()

	logger := d.logger.WithFields(logging.Fields{
		"function": "ComputeMatrix",
		"size":     n,
	})
	logger.Debug("Computing DFT")

	d.basis = BuildBasis(n, d.workers())

	coefficients, err := linalg.Mul(d.basis, d.input)
	if err != nil {
		logger.Error(err, "Failed to apply transform matrix")
		return fmt.Errorf("failed to apply transform matrix: %w", err)
	}
	d.coefficients = coefficients

	logger.Debug("DFT computation completed")

	return nil
}

// Size returns N, the number of samples in the last transform
func (d *DFT) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coefficients.Rows()
}

// Coefficients returns a copy of the frequency coefficients; index k is frequency k.
func (d *DFT) Coefficients() []complex128 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coefficients.Column(0)
}

// CoefficientMatrix returns a copy of the N×1 coefficient matrix
func (d *DFT) CoefficientMatrix() *linalg.CMatrix {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coefficients.Clone()
}

// Basis returns a copy of the N×N transform matrix
func (d *DFT) Basis() *linalg.CMatrix {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.basis.Clone()
}

// Input returns a copy of the N×1 input matrix
func (d *DFT) Input() *linalg.CMatrix {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.input.Clone()
}

// DisplayCoefficients writes the coefficient matrix to w
func (d *DFT) DisplayCoefficients(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, err := d.coefficients.WriteTo(w)
	return err
}

// DisplayFourierMatrix writes the transform matrix to w
func (d *DFT) DisplayFourierMatrix(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, err := d.basis.WriteTo(w)
	return err
}

// DisplayData writes the input matrix to w
func (d *DFT) DisplayData(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, err := d.input.WriteTo(w)
	return err
}
