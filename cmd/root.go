package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-dft/configs"
	"github.com/RyanBlaney/sonido-dft/logging"
)

const envPrefix = "SONIDO_DFT"

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
	workers      int

	// v is rebuilt on every execution so flags, env and file values never leak between runs
	v = viper.New()

	// appConfig is the validated configuration for the running command
	appConfig = configs.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sonido-dft",
	Short: "Matrix-based discrete Fourier transform toolkit",
	Long: `Compute the orthonormal discrete Fourier transform of a real signal by
building the full N×N transform matrix, zero out small coefficients and
reconstruct the signal as a Fourier series on a sample grid.

Without a subcommand the series pipeline runs on the built-in example signal:

  sonido-dft
  sonido-dft --input samples.yaml --threshold 0.5 --delta 0.25
  sonido-dft coefficients -o json
  sonido-dft verify --tolerance 1e-12`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: runSeries,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is ./sonido-dft.yaml or $HOME/.config/sonido-dft/sonido-dft.yaml)")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (table, json, yaml)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"worker goroutines for the parallel phases (0 = number of CPUs)")

	addInputFlags(rootCmd.Flags())
	addSeriesFlags(rootCmd.Flags())
}

// initializeConfig initializes configuration after flags are parsed
func initializeConfig(cmd *cobra.Command) error {
	v = viper.New()
	configs.SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return err
	}

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := configs.LoadConfig(v)
	if err != nil {
		return err
	}
	if err := configs.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	appConfig = cfg

	return setupLogging(cmd, cfg)
}

// readConfigFile loads the --config file, or the first sonido-dft.yaml found
// on the search path. A missing file is only an error when named explicitly.
func readConfigFile(v *viper.Viper) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "sonido-dft"))
	}
	v.SetConfigName("sonido-dft")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// bindFlags binds each cobra flag to its associated viper configuration key
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}

		key := strings.ReplaceAll(f.Name, "-", "_")

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}

		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// setupLogging routes log output to stderr so reports on stdout stay clean
func setupLogging(cmd *cobra.Command, cfg *configs.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)

	logging.Debug("Configuration loaded", logging.Fields{
		"config_file": v.ConfigFileUsed(),
		"output":      cfg.OutputFormat,
		"workers":     cfg.Workers,
	})
	return nil
}

// GetConfig returns the viper instance of the last execution
func GetConfig() *viper.Viper {
	return v
}
