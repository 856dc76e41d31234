package spectral

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/RyanBlaney/sonido-dft/algorithms/linalg"
	"github.com/RyanBlaney/sonido-dft/logging"
)

// DFTTestSuite covers transform application and engine state
type DFTTestSuite struct {
	suite.Suite
	previousLogger logging.Logger
	dft            *DFT
}

func (s *DFTTestSuite) SetupSuite() {
	s.previousLogger = logging.GetGlobalLogger()
	logging.SetGlobalLogger(&logging.NoOpLogger{})
}

func (s *DFTTestSuite) TearDownSuite() {
	logging.SetGlobalLogger(s.previousLogger)
}

func (s *DFTTestSuite) SetupTest() {
	s.dft = NewDFT()
}

func (s *DFTTestSuite) TestEmptyBeforeCompute() {
	s.Equal(0, s.dft.Size())
	s.True(s.dft.Basis().IsEmpty())
	s.True(s.dft.Input().IsEmpty())
	s.True(s.dft.CoefficientMatrix().IsEmpty())
	s.Empty(s.dft.Coefficients())
}

func (s *DFTTestSuite) TestConcreteScenario() {
	x := []float64{0, 1, 0, -1}
	s.Require().NoError(s.dft.ComputeReal(x))

	got := s.dft.Coefficients()
	requireComplexNear(s.T(), directDFT(x), got, 1e-12)

	// (1/2)·(e^(-iπ/2) - e^(-i3π/2)) = -i and its conjugate at k=3
	requireComplexNear(s.T(), []complex128{0, -1i, 0, 1i}, got, 1e-12)
}

func (s *DFTTestSuite) TestMatchesDirectFormula() {
	for _, n := range []int{1, 2, 3, 8, 11, 32} {
		x := testSignal(n)
		s.Require().NoError(s.dft.ComputeReal(x))
		requireComplexNear(s.T(), directDFT(x), s.dft.Coefficients(), 1e-10)
	}
}

func (s *DFTTestSuite) TestStateSizesAgree() {
	s.Require().NoError(s.dft.ComputeReal(exampleSignal))

	n := len(exampleSignal)
	basis := s.dft.Basis()
	s.Equal(n, basis.Rows())
	s.Equal(n, basis.Cols())
	s.Equal(n, s.dft.Input().Rows())
	s.Equal(1, s.dft.Input().Cols())
	s.Equal(n, s.dft.CoefficientMatrix().Rows())
	s.Equal(n, s.dft.Size())

	// real samples are stored with zero imaginary parts
	for i, v := range s.dft.Input().Column(0) {
		s.Equal(complex(exampleSignal[i], 0), v)
	}
}

func (s *DFTTestSuite) TestRecomputeReplacesEverything() {
	s.Require().NoError(s.dft.ComputeReal(testSignal(16)))
	s.Require().NoError(s.dft.ComputeReal([]float64{1, 2, 3}))

	s.Equal(3, s.dft.Basis().Rows())
	s.Equal(3, s.dft.Input().Rows())
	s.Equal(3, s.dft.Size())

	s.Require().NoError(s.dft.ComputeReal(nil))
	s.True(s.dft.Basis().IsEmpty())
	s.True(s.dft.Input().IsEmpty())
	s.Equal(0, s.dft.Size())
}

func (s *DFTTestSuite) TestComputeMatrixComplexInput() {
	input := linalg.NewColumn([]complex128{1, 1i, -1, -1i})
	s.Require().NoError(s.dft.ComputeMatrix(input))

	// e^(iπk/2) is the k=1 basis vector conjugate, so only bin 1 is populated with 4/√4
	requireComplexNear(s.T(), []complex128{0, 2, 0, 0}, s.dft.Coefficients(), 1e-12)

	// caller's matrix is not aliased
	input.Set(0, 0, 100)
	s.Equal(complex128(1), s.dft.Input().At(0, 0))
}

func (s *DFTTestSuite) TestComputeMatrixRejectsWideInput() {
	s.Require().NoError(s.dft.ComputeReal([]float64{1, 2}))

	err := s.dft.ComputeMatrix(linalg.NewCMatrix(3, 2))
	s.Require().Error(err)
	s.ErrorIs(err, ErrNotColumnVector)

	// previous state survives a rejected call
	s.Equal(2, s.dft.Size())
}

func (s *DFTTestSuite) TestComputeMatrixNil() {
	s.Require().NoError(s.dft.ComputeMatrix(nil))
	s.Equal(0, s.dft.Size())
}

func (s *DFTTestSuite) TestAccessorsReturnCopies() {
	s.Require().NoError(s.dft.ComputeReal([]float64{1, 2}))

	coeffs := s.dft.Coefficients()
	coeffs[0] = 42
	s.NotEqual(complex128(42), s.dft.Coefficients()[0])

	basis := s.dft.Basis()
	basis.Set(0, 0, 42)
	s.NotEqual(complex128(42), s.dft.Basis().At(0, 0))
}

func (s *DFTTestSuite) TestDisplay() {
	s.Require().NoError(s.dft.ComputeReal([]float64{1, 1}))

	var data, basis, coeffs bytes.Buffer
	s.Require().NoError(s.dft.DisplayData(&data))
	s.Require().NoError(s.dft.DisplayFourierMatrix(&basis))
	s.Require().NoError(s.dft.DisplayCoefficients(&coeffs))

	s.Equal("(1.0000, 0.0000)\n(1.0000, 0.0000)\n", data.String())
	s.Equal(2, strings.Count(basis.String(), "\n"))
	s.Equal(2, strings.Count(basis.String(), "\t"))
	s.True(strings.HasPrefix(coeffs.String(), "(1.4142, "))
}

func TestDFTSuite(t *testing.T) {
	suite.Run(t, new(DFTTestSuite))
}

func TestWorkerCountInvariance(t *testing.T) {
	x := testSignal(37)

	reference := newTestDFT(1)
	require.NoError(t, reference.ComputeReal(x))
	wantCoeffs := reference.Coefficients()
	wantBasis := reference.Basis().RawData()
	wantGrid := reference.GraphFourierSeries(90, 0.4, 0, 37)

	for _, workers := range []int{2, 5, 37, 64, 0} {
		dft := newTestDFT(workers)
		require.NoError(t, dft.ComputeReal(x))

		assert.Equal(t, wantBasis, dft.Basis().RawData(), "workers=%d", workers)
		assert.Equal(t, wantCoeffs, dft.Coefficients(), "workers=%d", workers)
		assert.Equal(t, wantGrid, dft.GraphFourierSeries(90, 0.4, 0, 37), "workers=%d", workers)

		dft.FilterCoefficients(0.2)
		reference.FilterCoefficients(0.2)
		assert.Equal(t, reference.Coefficients(), dft.Coefficients(), "workers=%d", workers)

		// restore the unfiltered reference for the next iteration
		require.NoError(t, reference.ComputeReal(x))
	}
}

func TestConcurrentCallersAreSerialized(t *testing.T) {
	dft := newTestDFT(4)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(size int) {
			defer wg.Done()
			for range 5 {
				assert.NoError(t, dft.ComputeReal(testSignal(size)))
				dft.FilterCoefficients(0.01)
				n := dft.Size()
				if n > 0 {
					dft.GraphFourierSeries(n, 1, 0, float64(n))
				}
				dft.GraphPointOnFourierSeries(0.5, 0, 1)
			}
		}(g + 3)
	}
	wg.Wait()

	n := dft.Size()
	assert.Equal(t, n, dft.Basis().Rows())
	assert.Equal(t, n, dft.Input().Rows())
	assert.Contains(t, []int{3, 4, 5, 6, 7, 8, 9, 10}, n)
}
