// Package dataset supplies the signals fed to the DFT engine: a built-in
// example vector and decoders for sample files.
package dataset

// exampleSamples is the demo signal shipped with the CLI
var exampleSamples = []float64{-2.2, -2.8, -6.1, -3.9, 0.0, 1.1, -0.6, -1.1}

// Example returns a copy of the built-in 8-sample demo signal
func Example() *SampleSet {
	samples := make([]float64, len(exampleSamples))
	copy(samples, exampleSamples)
	return &SampleSet{Name: "example", Samples: samples}
}
