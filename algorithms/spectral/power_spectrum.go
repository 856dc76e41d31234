package spectral

import (
	"math"
	"math/cmplx"
)

// DefaultFloorDB is the log power floor used for zero coefficients
const DefaultFloorDB = -120.0

// Magnitudes returns |c_k| for every coefficient
func Magnitudes(coeffs []complex128) []float64 {
	mags := make([]float64, len(coeffs))
	for k, c := range coeffs {
		mags[k] = cmplx.Abs(c)
	}
	return mags
}

// Power squares a magnitude spectrum
func Power(magnitudes []float64) []float64 {
	power := make([]float64, len(magnitudes))
	for i, mag := range magnitudes {
		power[i] = mag * mag
	}
	return power
}

// LogPower converts a magnitude spectrum to power in dB, clamped at floorDB
func LogPower(magnitudes []float64, floorDB float64) []float64 {
	floor := math.Pow(10, floorDB/10.0)
	logPower := make([]float64, len(magnitudes))

	for i, mag := range magnitudes {
		power := mag * mag
		if power < floor {
			power = floor
		}
		logPower[i] = 10 * math.Log10(power)
	}

	return logPower
}

// PowerSpectrum returns |c_k|² of the current coefficients. The coefficients
// are orthonormal, so the sum equals the input energy (Parseval).
func (d *DFT) PowerSpectrum() []float64 {
	return Power(Magnitudes(d.Coefficients()))
}
