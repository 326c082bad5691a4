package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/ir"
)

// CircuitFlags selects the circuit a command executes: either the ops given
// as arguments, or the benchmark reference circuit.
type CircuitFlags struct {
	Qubits    int
	Reference bool
}

func (f *CircuitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.Qubits, "qubits", "n", 0, "register width (required)")
	cmd.Flags().BoolVar(&f.Reference, "reference", false, "run the reference circuit X(n-1), H(0), CNOT(0,1)")
	_ = cmd.MarkFlagRequired("qubits")
}

// build parses op arguments ("H:0", "CNOT:0,1") into a validated circuit.
func (f *CircuitFlags) build(args []string) (ir.Circuit, error) {
	if f.Reference {
		if len(args) > 0 {
			return ir.Circuit{}, fmt.Errorf("--reference takes no op arguments")
		}
		return ir.ReferenceCircuit(f.Qubits)
	}
	ops, err := ir.ParseOps(args)
	if err != nil {
		return ir.Circuit{}, err
	}
	c := ir.Circuit{Qubits: f.Qubits, Ops: ops}
	if err := c.Validate(); err != nil {
		return ir.Circuit{}, err
	}
	return c, nil
}

// basisLabel renders index as a ket with qubit 0 leftmost, e.g. |01>.
func basisLabel(index, n int) string {
	return fmt.Sprintf("|%0*b>", n, index)
}
