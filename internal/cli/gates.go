package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/ir"
)

// GateInfo describes one catalogue gate.
type GateInfo struct {
	Name      string     `json:"name"`
	Arity     int        `json:"arity"`
	Unitary   bool       `json:"unitary"`
	Hermitian bool       `json:"hermitian"`
	Matrix    [][]string `json:"matrix"`
}

// NewGatesCommand creates the gates command.
func NewGatesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gates",
		Short: "List the gate catalogue",
		Long: `List every catalogue gate with its matrix and a unitarity check.

A two-qubit gate's matrix is written in the basis |control target>, so
CNOT flips the target when the control is |1>.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGates(rootOpts, cmd)
		},
	}
	return cmd
}

func runGates(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return formatter.Fail("invalid configuration", err)
	}

	catalogue := gates.Catalogue()
	infos := make([]GateInfo, 0, len(catalogue))
	for _, g := range catalogue {
		info := GateInfo{
			Name:      g.Name,
			Arity:     g.Arity,
			Unitary:   g.IsUnitary(cfg.Tolerance),
			Hermitian: g.Matrix.IsHermitian(cfg.Tolerance),
			Matrix:    make([][]string, g.Matrix.Rows),
		}
		for i := 0; i < g.Matrix.Rows; i++ {
			row := make([]string, g.Matrix.Cols)
			for j := range row {
				row[j] = ir.FormatAmplitude(g.Matrix.At(i, j), 4)
			}
			info.Matrix[i] = row
		}
		infos = append(infos, info)
	}

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	w := cmd.OutOrStdout()
	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(w)
		}
		mark := "✓"
		if !info.Unitary {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s  arity %d  unitary %s  hermitian %t\n", info.Name, info.Arity, mark, info.Hermitian)
		for _, row := range info.Matrix {
			fmt.Fprintf(w, "  [ %s ]\n", strings.Join(row, "  "))
		}
	}
	return nil
}
