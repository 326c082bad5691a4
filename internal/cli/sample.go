package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/ir"
	"github.com/roach88/qsim/internal/sim"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	*RootOptions
	CircuitFlags
	Shots int
}

// SampleCount is how often one basis state was drawn.
type SampleCount struct {
	Index int    `json:"index"`
	Basis string `json:"basis"`
	Count int    `json:"count"`
}

// SampleOutput is the sample command's payload.
type SampleOutput struct {
	CircuitID      string        `json:"circuit_id"`
	Qubits         int           `json:"qubits"`
	Representation string        `json:"representation"`
	Seed           int64         `json:"seed"`
	Shots          int           `json:"shots"`
	Counts         []SampleCount `json:"counts"`
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sample [ops...]",
		Short: "Execute a circuit and draw measurement outcomes",
		Long: `Execute a circuit and draw basis outcomes with probability |a|^2.

Draws are reproducible: the same --seed always yields the same counts.
Only outcomes that were drawn at least once are listed.

Examples:
  qsim sample -n 2 H:0 CNOT:0,1 --shots 1000
  qsim sample -n 4 --reference --seed 42 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, args, cmd)
		},
	}

	opts.CircuitFlags.register(cmd)
	cmd.Flags().IntVar(&opts.Shots, "shots", 1024, "number of draws")
	return cmd
}

func runSample(opts *SampleOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return formatter.Fail("invalid configuration", err)
	}
	circuit, err := opts.build(args)
	if err != nil {
		return formatter.Fail("invalid circuit", err)
	}
	circuitID, err := ir.CircuitID(circuit)
	if err != nil {
		return formatter.Fail("invalid circuit", err)
	}

	s, err := sim.New(cfg, sim.WithLogger(opts.logger()))
	if err != nil {
		return formatter.Fail("invalid configuration", err)
	}
	state, err := s.Run(circuit, circuit.Qubits)
	if err != nil {
		return formatter.Fail("run failed", err)
	}
	vec := s.Flatten(state)
	counts, err := s.Counts(vec, opts.Shots)
	if err != nil {
		return formatter.Fail("sampling failed", err)
	}

	out := SampleOutput{
		CircuitID:      circuitID,
		Qubits:         circuit.Qubits,
		Representation: string(cfg.Representation),
		Seed:           cfg.Seed,
		Shots:          opts.Shots,
		Counts:         []SampleCount{},
	}
	for i, c := range counts {
		if c == 0 {
			continue
		}
		out.Counts = append(out.Counts, SampleCount{Index: i, Basis: basisLabel(i, circuit.Qubits), Count: c})
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "circuit %s (%d qubits, %s), %d shots, seed %d\n",
		circuitID[:12], out.Qubits, out.Representation, out.Shots, out.Seed)
	for _, c := range out.Counts {
		fmt.Fprintf(w, "%s  %d\n", c.Basis, c.Count)
	}
	return nil
}
