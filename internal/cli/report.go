package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	SweepID   string // optional - show a single sweep's runs
	CircuitID string // optional - show every run of one circuit
}

// SweepReport is one stored sweep with its runs in order.
type SweepReport struct {
	Sweep store.Sweep `json:"sweep"`
	Runs  []store.Run `json:"runs"`
}

// CircuitReport lists every stored run of one circuit. Consistent is false
// when two successful runs disagree on the result hash.
type CircuitReport struct {
	CircuitID  string      `json:"circuit_id"`
	Runs       []store.Run `json:"runs"`
	Consistent bool        `json:"consistent"`
}

// SeriesReport aggregates every stored sweep, per representation.
type SeriesReport struct {
	Sweeps []string                       `json:"sweeps"`
	Series map[string][]store.SeriesPoint `json:"series"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize stored benchmark sweeps",
		Long: `Summarize benchmark sweeps recorded with "qsim bench --db".

Without --sweep, prints the mean, min and max elapsed time per register
width for each representation, over every successful run in the database.
With --sweep, prints that sweep's parameters and runs in order. With
--circuit, prints every run of one circuit across sweeps and checks that the
representations agreed on its result hash.

Examples:
  qsim report --db ./bench.db
  qsim report --db ./bench.db --sweep 01928c3e-...
  qsim report --db ./bench.db --circuit 66a10db7... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.SweepID, "sweep", "", "show a single sweep")
	cmd.Flags().StringVar(&opts.CircuitID, "circuit", "", "show every run of one circuit")
	cmd.MarkFlagsMutuallyExclusive("sweep", "circuit")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer st.Close()

	if opts.SweepID != "" {
		sw, err := st.ReadSweep(ctx, opts.SweepID)
		if errors.Is(err, sql.ErrNoRows) {
			return formatter.Fail("sweep not found", fmt.Errorf("no sweep with id %q", opts.SweepID))
		}
		if err != nil {
			return formatter.Fail("failed to read sweep", err)
		}
		runs, err := st.ReadRuns(ctx, opts.SweepID)
		if err != nil {
			return formatter.Fail("failed to read runs", err)
		}
		report := SweepReport{Sweep: sw, Runs: runs}
		if opts.Format == "json" {
			return formatter.Success(report)
		}
		outputSweepText(cmd, report)
		return nil
	}

	if opts.CircuitID != "" {
		runs, err := st.RunsByCircuit(ctx, opts.CircuitID)
		if err != nil {
			return formatter.Fail("failed to read runs", err)
		}
		report := CircuitReport{CircuitID: opts.CircuitID, Runs: runs, Consistent: consistentHashes(runs)}
		if opts.Format == "json" {
			return formatter.Success(report)
		}
		outputCircuitText(cmd, report)
		return nil
	}

	ids, err := st.ListSweepIDs(ctx)
	if err != nil {
		return formatter.Fail("failed to list sweeps", err)
	}
	report := SeriesReport{Sweeps: ids, Series: map[string][]store.SeriesPoint{}}
	for _, rep := range []config.Representation{config.RepresentationTensor, config.RepresentationDense} {
		points, err := st.Series(ctx, rep)
		if err != nil {
			return formatter.Fail("failed to aggregate runs", err)
		}
		report.Series[string(rep)] = points
	}

	if opts.Format == "json" {
		return formatter.Success(report)
	}
	outputSeriesText(cmd, report)
	return nil
}

func outputSweepText(cmd *cobra.Command, r SweepReport) {
	w := cmd.OutOrStdout()
	sw := r.Sweep
	fmt.Fprintf(w, "sweep %s\n", sw.ID)
	fmt.Fprintf(w, "  representation: %s\n", sw.Representation)
	fmt.Fprintf(w, "  qubits: %d..%d\n", sw.FromQubits, sw.ToQubits)
	fmt.Fprintf(w, "  memory limit: %d MiB, max qubits: %d\n", sw.Config.MemoryLimitMB, sw.Config.MaxQubits)
	fmt.Fprintf(w, "  simulator %s, ir %s\n", sw.SimulatorVersion, sw.IRVersion)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%4s  %6s  %14s  %s\n", "seq", "qubits", "elapsed", "status")
	for _, run := range r.Runs {
		fmt.Fprintf(w, "%4d  %6d  %14s  %s\n", run.Seq, run.Qubits, time.Duration(run.ElapsedNS), run.Status)
	}
}

func outputSeriesText(cmd *cobra.Command, r SeriesReport) {
	w := cmd.OutOrStdout()
	if len(r.Sweeps) == 0 {
		fmt.Fprintln(w, "No sweeps recorded.")
		return
	}
	fmt.Fprintf(w, "%d sweep(s)\n", len(r.Sweeps))
	for _, rep := range []string{string(config.RepresentationTensor), string(config.RepresentationDense)} {
		points := r.Series[rep]
		if len(points) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, rep)
		fmt.Fprintf(w, "%6s  %5s  %14s  %14s  %14s\n", "qubits", "runs", "mean", "min", "max")
		for _, p := range points {
			fmt.Fprintf(w, "%6d  %5d  %14s  %14s  %14s\n", p.Qubits, p.Count,
				time.Duration(p.MeanNS), time.Duration(p.MinNS), time.Duration(p.MaxNS))
		}
	}
}

// consistentHashes reports whether every successful run carries the same
// result hash.
func consistentHashes(runs []store.Run) bool {
	hash := ""
	for _, r := range runs {
		if r.Status != store.StatusOK {
			continue
		}
		if hash == "" {
			hash = r.ResultHash
			continue
		}
		if r.ResultHash != hash {
			return false
		}
	}
	return true
}

func outputCircuitText(cmd *cobra.Command, r CircuitReport) {
	w := cmd.OutOrStdout()
	if len(r.Runs) == 0 {
		fmt.Fprintf(w, "No runs recorded for circuit %s.\n", r.CircuitID)
		return
	}
	fmt.Fprintf(w, "circuit %s, %d run(s)\n", r.CircuitID, len(r.Runs))
	fmt.Fprintf(w, "%-36s  %-6s  %14s  %s\n", "sweep", "rep", "elapsed", "status")
	for _, run := range r.Runs {
		fmt.Fprintf(w, "%-36s  %-6s  %14s  %s\n", run.SweepID, run.Representation, time.Duration(run.ElapsedNS), run.Status)
	}
	if r.Consistent {
		fmt.Fprintln(w, "✓ result hashes agree")
	} else {
		fmt.Fprintln(w, "✗ result hashes disagree")
	}
}
