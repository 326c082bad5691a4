package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/ir"
	"github.com/roach88/qsim/internal/measure"
	"github.com/roach88/qsim/internal/sim"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	CircuitFlags
}

// RunOutput is the run command's payload.
type RunOutput struct {
	CircuitID      string   `json:"circuit_id"`
	ResultHash     string   `json:"result_hash"`
	Qubits         int      `json:"qubits"`
	Representation string   `json:"representation"`
	Ops            []string `json:"ops"`
	Amplitudes     []string `json:"amplitudes"`
	Probabilities  []string `json:"probabilities"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [ops...]",
		Short: "Execute a circuit and print the final amplitudes",
		Long: `Execute a circuit from |0...0> and print the flattened state.

Ops are written GATE:qubit for single-qubit gates and GATE:control,target
for CNOT. Gate names are case-insensitive and CX is accepted for CNOT.
Qubit 0 is the most significant bit of a basis index.

Examples:
  qsim run -n 2 H:0 CNOT:0,1
  qsim run -n 5 --reference --representation dense
  qsim run -n 3 X:2 CX:2,0 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCircuit(opts, args, cmd)
		},
	}

	opts.CircuitFlags.register(cmd)
	return cmd
}

func runCircuit(opts *RunOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return formatter.Fail("invalid configuration", err)
	}
	circuit, err := opts.build(args)
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
	amps := s.Flatten(state)

	out, err := newRunOutput(circuit, string(cfg.Representation), amps)
	if err != nil {
		return formatter.Fail("run failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "circuit %s (%d qubits, %s)\n", out.CircuitID[:12], out.Qubits, out.Representation)
	for i := range out.Amplitudes {
		fmt.Fprintf(w, "%s  %s  %s\n", basisLabel(i, out.Qubits), out.Amplitudes[i], out.Probabilities[i])
	}
	return nil
}

func newRunOutput(circuit ir.Circuit, rep string, amps []complex128) (RunOutput, error) {
	circuitID, err := ir.CircuitID(circuit)
	if err != nil {
		return RunOutput{}, err
	}
	rendered := ir.FormatAmplitudes(amps, ir.AmplitudePrecision)
	hash, err := ir.ResultHash(circuitID, rendered)
	if err != nil {
		return RunOutput{}, err
	}

	probs := measure.Probabilities(amps)
	renderedProbs := make([]string, len(probs))
	for i, p := range probs {
		renderedProbs[i] = ir.FormatProbability(p, ir.AmplitudePrecision)
	}
	ops := make([]string, len(circuit.Ops))
	for i, o := range circuit.Ops {
		ops[i] = o.String()
	}

	return RunOutput{
		CircuitID:      circuitID,
		ResultHash:     hash,
		Qubits:         circuit.Qubits,
		Representation: rep,
		Ops:            ops,
		Amplitudes:     rendered,
		Probabilities:  renderedProbs,
	}, nil
}
