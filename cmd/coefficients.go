package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-dft/report"
)

// coefficientsCmd represents the coefficients command
var coefficientsCmd = &cobra.Command{
	Use:   "coefficients",
	Short: "Print the filtered transform coefficients",
	Long: `Transform the input signal, apply --threshold and print each coefficient
with its real and imaginary parts, magnitude and phase.`,
	Args: cobra.NoArgs,
	RunE: runCoefficients,
}

func init() {
	addInputFlags(coefficientsCmd.Flags())
	rootCmd.AddCommand(coefficientsCmd)
}

func runCoefficients(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	set, err := loadSamples(cmd, cfg)
	if err != nil {
		return err
	}

	dft, err := transform(cfg, set)
	if err != nil {
		return err
	}

	r := &report.CoefficientReport{
		Source:       set.Name,
		Threshold:    cfg.Threshold,
		Zeroed:       dft.ZeroedComponents(),
		Coefficients: report.CoefficientRows(dft.Coefficients()),
	}

	formatter, err := report.NewFormatter(cfg.OutputFormat, cfg.Verbose)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), formatter, r)
}
