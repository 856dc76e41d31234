package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RyanBlaney/sonido-dft/report"
)

var (
	// Series flags
	seriesPoints int
	seriesDelta  float64
	seriesStart  float64
	seriesEnd    float64
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Transform, filter and reconstruct a signal as a Fourier series",
	Long: `Transform the input signal, zero coefficient components below --threshold
and evaluate the resulting Fourier series at x = i·delta for i in [0, points).
The series is periodic over the window [start, end).

Examples:
  # The classic demo: 8 samples, delta 0.5, window [0, 8)
  sonido-dft series

  # Denser reconstruction of a file
  sonido-dft series --input signal.json --points 64 --delta 0.125`,
	Args: cobra.NoArgs,
	RunE: runSeries,
}

func init() {
	addInputFlags(seriesCmd.Flags())
	addSeriesFlags(seriesCmd.Flags())
	rootCmd.AddCommand(seriesCmd)
}

func addSeriesFlags(flags *pflag.FlagSet) {
	flags.IntVar(&seriesPoints, "points", 0,
		"number of grid points (0 = number of samples)")
	flags.Float64Var(&seriesDelta, "delta", 0.5,
		"grid spacing")
	flags.Float64Var(&seriesStart, "start", 0,
		"window start a")
	flags.Float64Var(&seriesEnd, "end", 0,
		"window end b (0 = number of samples)")
}

func runSeries(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	set, err := loadSamples(cmd, cfg)
	if err != nil {
		return err
	}

	dft, err := transform(cfg, set)
	if err != nil {
		return err
	}

	points, end := cfg.ResolveGrid(len(set.Samples))
	series := dft.GraphFourierSeriesPoints(points, cfg.Delta, cfg.Start, end)

	r := &report.SeriesReport{
		Source:     set.Name,
		Samples:    len(set.Samples),
		Threshold:  cfg.Threshold,
		Zeroed:     dft.ZeroedComponents(),
		Delta:      cfg.Delta,
		Start:      cfg.Start,
		End:        end,
		Points:     series,
		InputStats: report.Summarize(set.Samples),
	}
	r.OutputStats = report.Summarize(r.Outputs())

	formatter, err := report.NewFormatter(cfg.OutputFormat, cfg.Verbose)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), formatter, r)
}
