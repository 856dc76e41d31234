package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-dft/algorithms/common"
	"github.com/RyanBlaney/sonido-dft/algorithms/spectral"
	"github.com/RyanBlaney/sonido-dft/logging"
	"github.com/RyanBlaney/sonido-dft/report"
)

// ErrVerificationFailed is returned when a reference differs beyond tolerance
var ErrVerificationFailed = errors.New("verification failed")

var verifyTolerance float64

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check the matrix transform against FFT libraries",
	Long: `Compute the transform with the matrix engine and, concurrently, with the
go-dsp and gonum FFT implementations (normalized by 1/√N). The largest
absolute coefficient difference per library is reported and the command
fails if any exceeds --tolerance. --threshold is not applied here.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	addInputFlags(verifyCmd.Flags())
	verifyCmd.Flags().Float64Var(&verifyTolerance, "tolerance", 1e-9,
		"maximum allowed absolute difference per coefficient")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	set, err := loadSamples(cmd, cfg)
	if err != nil {
		return err
	}

	backends := spectral.ReferenceBackends()
	references := make([][]complex128, len(backends))
	var engine []complex128

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		dft := spectral.NewDFTWithConfig(&spectral.DFTConfig{Workers: cfg.Workers})
		if err := dft.ComputeReal(set.Samples); err != nil {
			return fmt.Errorf("matrix engine: %w", err)
		}
		engine = dft.Coefficients()
		return nil
	})

	for i, backend := range backends {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			references[i] = spectral.NewReference(backend).Compute(set.Samples)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	comparisons := make([]spectral.Comparison, len(backends))
	roundTrip := make([]float64, len(backends))
	for i, backend := range backends {
		ref := spectral.NewReference(backend)
		comparisons[i] = ref.Compare(engine, references[i])

		diff, err := common.MaxAbsDiff(set.Samples, ref.ComputeInverseReal(engine))
		if err != nil {
			return fmt.Errorf("round trip through %s: %w", backend, err)
		}
		roundTrip[i] = diff

		logging.Debug("Reference compared", logging.Fields{
			"backend":          backend,
			"max_abs_error":    comparisons[i].MaxAbsError,
			"round_trip_error": diff,
		})
	}

	r := report.NewVerifyReport(set.Name, len(set.Samples), cfg.Tolerance, comparisons, roundTrip)

	formatter, err := report.NewFormatter(cfg.OutputFormat, cfg.Verbose)
	if err != nil {
		return err
	}
	if err := report.Write(cmd.OutOrStdout(), formatter, r); err != nil {
		return err
	}

	if !r.Passed() {
		return fmt.Errorf("%w: worst error %g exceeds tolerance %g", ErrVerificationFailed, r.WorstError(), cfg.Tolerance)
	}
	return nil
}
