// Package report renders engine results for the command line.
package report

import (
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-dft/algorithms/common"
	"github.com/RyanBlaney/sonido-dft/algorithms/spectral"
)

// Summary holds basic statistics of a real-valued series
type Summary struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	RMS    float64 `json:"rms" yaml:"rms"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summarize computes a Summary; an empty series gives the zero value
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	minVal, maxVal := common.MinMax(values)
	return Summary{
		Mean:   common.Mean(values),
		StdDev: common.StandardDeviation(values),
		RMS:    common.RMS(values),
		Min:    minVal,
		Max:    maxVal,
	}
}

// SeriesReport is the output of the series command
type SeriesReport struct {
	Source      string                 `json:"source" yaml:"source"`
	Samples     int                    `json:"samples" yaml:"samples"`
	Threshold   float64                `json:"threshold" yaml:"threshold"`
	Zeroed      int                    `json:"zeroed_components" yaml:"zeroed_components"`
	Delta       float64                `json:"delta" yaml:"delta"`
	Start       float64                `json:"start" yaml:"start"`
	End         float64                `json:"end" yaml:"end"`
	Points      []spectral.SeriesPoint `json:"points" yaml:"points"`
	InputStats  Summary                `json:"input_stats" yaml:"input_stats"`
	OutputStats Summary                `json:"output_stats" yaml:"output_stats"`
}

// Outputs returns the y values of the report points
func (r *SeriesReport) Outputs() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Y
	}
	return out
}

// CoefficientRow describes one transform coefficient
type CoefficientRow struct {
	Index     int     `json:"index" yaml:"index"`
	Real      float64 `json:"re" yaml:"re"`
	Imag      float64 `json:"im" yaml:"im"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Phase     float64 `json:"phase" yaml:"phase"`
	PowerDB   float64 `json:"power_db" yaml:"power_db"`
}

// CoefficientReport is the output of the coefficients command
type CoefficientReport struct {
	Source       string           `json:"source" yaml:"source"`
	Threshold    float64          `json:"threshold" yaml:"threshold"`
	Zeroed       int              `json:"zeroed_components" yaml:"zeroed_components"`
	Coefficients []CoefficientRow `json:"coefficients" yaml:"coefficients"`
}

// CoefficientRows converts coefficients to table rows.
// Phase is 0 for a zero coefficient.
func CoefficientRows(coeffs []complex128) []CoefficientRow {
	mags := spectral.Magnitudes(coeffs)
	powerDB := spectral.LogPower(mags, spectral.DefaultFloorDB)

	rows := make([]CoefficientRow, len(coeffs))
	for k, c := range coeffs {
		phase := 0.0
		if c != 0 {
			phase = cmplx.Phase(c)
		}
		rows[k] = CoefficientRow{
			Index:     k,
			Real:      real(c),
			Imag:      imag(c),
			Magnitude: mags[k],
			Phase:     phase,
			PowerDB:   powerDB[k],
		}
	}
	return rows
}

// VerifyResult is one backend comparison. RoundTripError is the largest
// difference between the input and the reference inverse of the engine
// coefficients.
type VerifyResult struct {
	Backend        string  `json:"backend" yaml:"backend"`
	Length         int     `json:"length" yaml:"length"`
	MaxAbsError    float64 `json:"max_abs_error" yaml:"max_abs_error"`
	RoundTripError float64 `json:"round_trip_error" yaml:"round_trip_error"`
	Passed         bool    `json:"passed" yaml:"passed"`
}

// VerifyReport is the output of the verify command
type VerifyReport struct {
	Source    string         `json:"source" yaml:"source"`
	Samples   int            `json:"samples" yaml:"samples"`
	Tolerance float64        `json:"tolerance" yaml:"tolerance"`
	Results   []VerifyResult `json:"results" yaml:"results"`
}

// NewVerifyReport builds a report from reference comparisons. roundTrip holds
// one round-trip error per comparison and may be nil.
func NewVerifyReport(source string, samples int, tolerance float64, comparisons []spectral.Comparison, roundTrip []float64) *VerifyReport {
	results := make([]VerifyResult, len(comparisons))
	for i, c := range comparisons {
		rt := 0.0
		if i < len(roundTrip) {
			rt = roundTrip[i]
		}
		results[i] = VerifyResult{
			Backend:        string(c.Backend),
			Length:         c.Length,
			MaxAbsError:    c.MaxAbsError,
			RoundTripError: rt,
			Passed:         c.Within(tolerance) && rt <= tolerance,
		}
	}
	return &VerifyReport{
		Source:    source,
		Samples:   samples,
		Tolerance: tolerance,
		Results:   results,
	}
}

// Passed reports whether every backend is within tolerance
func (r *VerifyReport) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// WorstError returns the largest error across backends
func (r *VerifyReport) WorstError() float64 {
	worst := 0.0
	for _, res := range r.Results {
		worst = math.Max(worst, math.Max(res.MaxAbsError, res.RoundTripError))
	}
	return worst
}
