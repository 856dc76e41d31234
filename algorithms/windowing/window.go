// Package windowing provides taper functions applied to a signal before the
// transform.
package windowing

import (
	"fmt"
	"math"
	"strings"
)

// WindowType represents different window function types
type WindowType string

const (
	WindowRectangular WindowType = "rectangular"
	WindowHann        WindowType = "hann"
	WindowHamming     WindowType = "hamming"
	WindowBlackman    WindowType = "blackman"
	WindowBartlett    WindowType = "bartlett"
	WindowWelch       WindowType = "welch"
)

// WindowTypes lists every supported window
func WindowTypes() []WindowType {
	return []WindowType{
		WindowRectangular,
		WindowHann,
		WindowHamming,
		WindowBlackman,
		WindowBartlett,
		WindowWelch,
	}
}

// ParseWindowType resolves a window name; "" and "none" mean rectangular
func ParseWindowType(name string) (WindowType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return WindowRectangular, nil
	}
	for _, t := range WindowTypes() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown window type %q", name)
}

// Coefficients generates size window coefficients. Symmetric windows use
// size-1 as denominator (filter design); periodic windows use size, which
// suits the DFT. Sizes below 2 yield all ones.
func Coefficients(windowType WindowType, size int, symmetric bool) []float64 {
	if size <= 0 {
		return []float64{}
	}

	coeffs := make([]float64, size)
	if size == 1 || windowType == WindowRectangular {
		for i := range coeffs {
			coeffs[i] = 1
		}
		return coeffs
	}

	denominator := float64(size)
	if symmetric {
		denominator = float64(size - 1)
	}

	for i := range size {
		arg := 2 * math.Pi * float64(i) / denominator
		switch windowType {
		case WindowHann:
			coeffs[i] = 0.5 * (1.0 - math.Cos(arg))
		case WindowHamming:
			coeffs[i] = 0.54 - 0.46*math.Cos(arg)
		case WindowBlackman:
			coeffs[i] = 0.42 - 0.5*math.Cos(arg) + 0.08*math.Cos(2*arg)
		case WindowBartlett:
			coeffs[i] = 1 - math.Abs(2*float64(i)/denominator-1)
		case WindowWelch:
			x := 2*float64(i)/denominator - 1
			coeffs[i] = 1 - x*x
		default:
			coeffs[i] = 1
		}
	}

	return coeffs
}

// Apply returns a windowed copy of signal
func Apply(signal []float64, windowType WindowType, symmetric bool) []float64 {
	coeffs := Coefficients(windowType, len(signal), symmetric)
	windowed := make([]float64, len(signal))
	for i, v := range signal {
		windowed[i] = v * coeffs[i]
	}
	return windowed
}

// CoherentGain is the mean window coefficient, the amplitude scale a window
// applies to a tone.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}
