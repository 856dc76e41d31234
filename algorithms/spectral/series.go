package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-dft/algorithms/common"
	"github.com/RyanBlaney/sonido-dft/logging"
)

// SeriesPoint is one evaluated sample of the reconstructed series
type SeriesPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GraphPointOnFourierSeries evaluates the series built from the current
// coefficients at x, with [a, b) mapped onto one period:
//
//	f(x) = Σ_k (Re c_k·cos θ_k − Im c_k·sin θ_k) / √N,  θ_k = 2πk(x−a)/(b−a)
//
// With no coefficients it returns 0. Callers must pass b > a.
func (d *DFT) GraphPointOnFourierSeries(x, a, b float64) float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pointOnSeries(x, a, b)
}

// pointOnSeries expects d.mu to be held
func (d *DFT) pointOnSeries(x, a, b float64) float64 {
	coeffs := d.coefficients.RawData()
	n := len(coeffs)

	sum := 0.0
	for k, c := range coeffs {
		angle := 2 * math.Pi * float64(k) * (x - a) / (b - a)
		sum += real(c)*math.Cos(angle) - imag(c)*math.Sin(angle)
	}

	if n > 0 {
		sum /= math.Sqrt(float64(n))
	}

	return sum
}

// GraphFourierSeries evaluates the series at x = 0, Δ, 2Δ, ..., (numPoints-1)Δ.
// It returns an empty slice when numPoints <= 0, delta <= 0 or b <= a.
func (d *DFT) GraphFourierSeries(numPoints int, delta, a, b float64) []float64 {
	if numPoints <= 0 || delta <= 0 || b-a <= 0 {
		return []float64{}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	workers := d.workers()
	d.logger.Debug("Evaluating Fourier series", logging.Fields{
		"function": "GraphFourierSeries",
		"points":   numPoints,
		"delta":    delta,
		"window":   [2]float64{a, b},
		"workers":  workers,
	})

	result := make([]float64, numPoints)
	common.ParallelFor(numPoints, workers, func(i int) {
		result[i] = d.pointOnSeries(float64(i)*delta, a, b)
	})

	return result
}

// GraphFourierSeriesPoints is GraphFourierSeries with each value paired with its x.
func (d *DFT) GraphFourierSeriesPoints(numPoints int, delta, a, b float64) []SeriesPoint {
	values := d.GraphFourierSeries(numPoints, delta, a, b)

	points := make([]SeriesPoint, len(values))
	for i, y := range values {
		points[i] = SeriesPoint{X: float64(i) * delta, Y: y}
	}
	return points
}
