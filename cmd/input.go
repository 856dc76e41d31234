package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RyanBlaney/sonido-dft/algorithms/spectral"
	"github.com/RyanBlaney/sonido-dft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-dft/configs"
	"github.com/RyanBlaney/sonido-dft/dataset"
	"github.com/RyanBlaney/sonido-dft/logging"
)

var (
	// Input flags
	inputFile  string
	inputFmt   string
	maxSamples int
	windowName string

	// Transform flags
	threshold float64
)

func addInputFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&inputFile, "input", "i", "",
		"sample file (yaml, json, f64 or text; \"-\" reads text from stdin). Default is the built-in example signal")
	flags.StringVar(&inputFmt, "format", "auto",
		"input format (auto, yaml, json, text, f64le)")
	flags.IntVar(&maxSamples, "max-samples", 0,
		"truncate the input to this many samples (0 = no limit)")
	flags.StringVar(&windowName, "window", "rectangular",
		"taper applied before the transform (rectangular, hann, hamming, blackman, bartlett, welch)")
	flags.Float64Var(&threshold, "threshold", 0,
		"zero coefficient components whose magnitude is below this value")
}

// loadSamples reads the configured input, or the built-in example when none
// is set, and applies the configured window
func loadSamples(cmd *cobra.Command, cfg *configs.Config) (*dataset.SampleSet, error) {
	set, err := readSamples(cmd, cfg)
	if err != nil {
		return nil, err
	}

	windowType, err := windowing.ParseWindowType(cfg.Window)
	if err != nil {
		return nil, err
	}
	if windowType != windowing.WindowRectangular {
		set.Samples = windowing.Apply(set.Samples, windowType, false)
		logging.Debug("Window applied", logging.Fields{
			"window":        windowType,
			"coherent_gain": windowing.CoherentGain(windowing.Coefficients(windowType, len(set.Samples), false)),
		})
	}

	return set, nil
}

func readSamples(cmd *cobra.Command, cfg *configs.Config) (*dataset.SampleSet, error) {
	decoder := dataset.NewDecoder(&dataset.DecoderConfig{
		Format:     dataset.Format(cfg.Format),
		MaxSamples: cfg.MaxSamples,
	})

	switch cfg.Input {
	case "":
		set := dataset.Example()
		if cfg.MaxSamples > 0 && len(set.Samples) > cfg.MaxSamples {
			set.Samples = set.Samples[:cfg.MaxSamples]
		}
		return set, nil
	case "-":
		set, err := decoder.DecodeReader(cmd.InOrStdin(), dataset.Format(cfg.Format))
		if err != nil {
			return nil, err
		}
		set.Name = "stdin"
		return set, nil
	default:
		return decoder.DecodeFile(cfg.Input)
	}
}

// transform runs the engine over the samples and applies the threshold filter
func transform(cfg *configs.Config, set *dataset.SampleSet) (*spectral.DFT, error) {
	dft := spectral.NewDFTWithConfig(&spectral.DFTConfig{Workers: cfg.Workers})
	if err := dft.ComputeReal(set.Samples); err != nil {
		return nil, err
	}
	dft.FilterCoefficients(cfg.Threshold)

	logging.Debug("Transform complete", logging.Fields{
		"source":    set.Name,
		"samples":   len(set.Samples),
		"threshold": cfg.Threshold,
		"zeroed":    dft.ZeroedComponents(),
	})
	return dft, nil
}
