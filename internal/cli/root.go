package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// ConfigPath points at an optional YAML config file.
	ConfigPath string

	// Overrides applied on top of the config file when the flag is set.
	Representation string
	MemoryLimitMB  int64
	MaxQubits      int
	Tolerance      float64
	Seed           int64

	// Logger is installed by the root command. Commands built without the
	// root fall back to slog.Default().
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the qsim CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qsim",
		Short: "qsim - small quantum circuit simulator",
		Long: `A state-vector simulator for X, H and CNOT circuits.

Every circuit can run on two interchangeable representations: a dense
vector updated with full Kronecker-product operators, and a rank-n tensor
updated by contracting each gate against the axes it acts on.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVarP(&opts.Representation, "representation", "r", "", "state representation (tensor|dense)")
	cmd.PersistentFlags().Int64Var(&opts.MemoryLimitMB, "memory-limit-mb", 0, "memory budget in MiB")
	cmd.PersistentFlags().IntVar(&opts.MaxQubits, "max-qubits", 0, "largest register accepted")
	cmd.PersistentFlags().Float64Var(&opts.Tolerance, "tolerance", 0, "normalization and comparison tolerance")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "sampling seed")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewBenchCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewGatesCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// resolveConfig loads the config file (or the schema defaults) and applies
// every override flag the user set on cmd.
func (o *RootOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flagChanged(cmd, "representation") {
		rep, err := config.ParseRepresentation(o.Representation)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Representation = rep
	}
	if flagChanged(cmd, "memory-limit-mb") {
		cfg.MemoryLimitMB = o.MemoryLimitMB
	}
	if flagChanged(cmd, "max-qubits") {
		cfg.MaxQubits = o.MaxQubits
	}
	if flagChanged(cmd, "tolerance") {
		cfg.Tolerance = o.Tolerance
	}
	if flagChanged(cmd, "seed") {
		cfg.Seed = o.Seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// flagChanged reports whether the named flag, local or inherited, was set.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}
