package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rohankatakam/healthrisk/internal/config"
	"github.com/rohankatakam/healthrisk/internal/errors"
	"github.com/rohankatakam/healthrisk/internal/logging"
	"github.com/rohankatakam/healthrisk/internal/models"
	"github.com/rohankatakam/healthrisk/internal/output"
	"github.com/rohankatakam/healthrisk/internal/register"
	"github.com/rohankatakam/healthrisk/internal/risk"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile      string
	verbose      bool
	outputFormat string
	logger       *logrus.Logger
	cfg          *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if e, ok := errors.As(err); ok && verbose {
			fmt.Fprint(os.Stderr, e.DetailedString())
		}
		if errors.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hrisk",
	Short: "HealthRisk - security risk scoring for healthcare information systems",
	Long: `HealthRisk scores threats to healthcare information systems by impact and
likelihood (RPN), annualised loss expectancy (ALE) and residual risk after
controls, and recommends actions per HIPAA rule and NIST RMF step.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		loadErr := err
		if err != nil {
			cfg = config.Default()
		}

		result := cfg.Validate()
		if result.HasErrors() {
			return cfg.Require()
		}

		level := cfg.Logging.Level
		if verbose {
			level = logrus.DebugLevel.String()
		}
		logger, err = logging.New(logging.Config{
			Level:  level,
			Format: cfg.Logging.Format,
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		if loadErr != nil {
			logger.WithError(loadErr).Warn("Failed to load config, using defaults")
		}

		for _, warn := range result.Warnings {
			logger.Warn(warn)
		}

		if !cmd.Flags().Changed("output") {
			outputFormat = cfg.Output.Format
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .healthrisk/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: standard, quiet, json or yaml")

	// Set custom version template
	rootCmd.SetVersionTemplate(`HealthRisk {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	// Add subcommands
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(configCmd)
}

// newEngine builds the scoring engine from the loaded configuration
func newEngine() *risk.Engine {
	return risk.NewEngine().
		WithCurrency(cfg.Engine.Currency).
		WithControlEffectiveness(cfg.Engine.TrackControlEffectiveness)
}

// newRegister creates an empty register scored by the configured engine
func newRegister() *register.Register {
	return register.New(newEngine(), logger)
}

// newFormatter resolves the --output flag (or output.format) to a formatter.
// With neither set the environment decides.
func newFormatter() (output.Formatter, error) {
	if outputFormat == "" {
		return output.NewFormatter(output.GetDefaultVerbosity()), nil
	}
	level, err := output.ParseVerbosity(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(level), nil
}

// render writes snap with f. A formatter failure is never the user's input,
// so it surfaces as an internal error.
func render(f output.Formatter, snap models.Snapshot, w io.Writer) error {
	if err := f.Format(snap, w); err != nil {
		return errors.InternalError(err, "failed to render output")
	}
	return nil
}
