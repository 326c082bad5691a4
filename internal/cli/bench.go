package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/bench"
	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/store"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	From     int
	To       int
	Database string
	Both     bool

	// Clock and IDs override the runner defaults (for testing).
	Clock bench.Clock
	IDs   bench.IDGenerator
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	return newBenchCommand(&BenchOptions{RootOptions: rootOpts})
}

func newBenchCommand(opts *BenchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the reference circuit across register widths",
		Long: `Time X(n-1), H(0), CNOT(0,1) on |0...0> for every n in [--from, --to].

A sweep stops at the first width the memory budget refuses; the refusal is
reported as the sweep's last point. With --db, every sweep and its runs are
stored in a SQLite database for later inspection with "qsim report".

Examples:
  qsim bench --from 2 --to 20
  qsim bench --from 2 --to 14 --both --memory-limit-mb 64
  qsim bench --to 24 --db ./bench.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.From, "from", 2, "smallest register width")
	cmd.Flags().IntVar(&opts.To, "to", 20, "largest register width")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for results")
	cmd.Flags().BoolVar(&opts.Both, "both", false, "sweep both representations")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.logger()

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return formatter.Fail("invalid configuration", err)
	}

	runner := &bench.Runner{
		Clock:  opts.Clock,
		IDs:    opts.IDs,
		Logger: logger,
	}
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return formatter.Fail("failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		runner.Recorder = st
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reps := []config.Representation{cfg.Representation}
	if opts.Both {
		reps = []config.Representation{config.RepresentationTensor, config.RepresentationDense}
	}

	results := make([]*bench.Result, 0, len(reps))
	for _, rep := range reps {
		runner.Config = cfg
		runner.Config.Representation = rep
		res, err := runner.Sweep(ctx, opts.From, opts.To)
		if err != nil {
			return formatter.Fail("sweep failed", err)
		}
		results = append(results, res)
	}

	if opts.Format == "json" {
		return formatter.Success(results)
	}

	w := cmd.OutOrStdout()
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "sweep %s (%s, %d..%d)\n", res.SweepID, res.Representation, res.From, res.To)
		fmt.Fprintf(w, "%6s  %14s  %s\n", "qubits", "elapsed", "status")
		for _, p := range res.Points {
			status := p.Status
			if p.ErrorCode != "" {
				status += ": " + p.ErrorCode
			}
			fmt.Fprintf(w, "%6d  %14s  %s\n", p.Qubits, p.Elapsed, status)
		}
		if res.Refused() {
			last := res.Points[len(res.Points)-1]
			fmt.Fprintf(w, "stopped at %d qubits: %s\n", last.Qubits, last.ErrorMessage)
		}
	}
	return nil
}
