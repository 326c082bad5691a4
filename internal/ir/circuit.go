package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/qerr"
)

// Op is one gate application. Two-qubit gates list (control, target).
type Op struct {
	Gate   string `json:"gate" yaml:"gate"`
	Qubits []int  `json:"qubits" yaml:"qubits"`
}

// String renders the op in the same form ParseOp accepts, e.g. "CNOT:0,1".
func (o Op) String() string {
	parts := make([]string, len(o.Qubits))
	for i, q := range o.Qubits {
		parts[i] = strconv.Itoa(q)
	}
	return o.Gate + ":" + strings.Join(parts, ",")
}

// Circuit is an ordered op sequence over a fixed qubit count.
type Circuit struct {
	Qubits int  `json:"qubits" yaml:"qubits"`
	Ops    []Op `json:"ops" yaml:"ops"`
}

// ParseOp parses "GATE:i" or "GATE:i,j". The gate name must be in the
// catalogue and the qubit count must match its arity.
func ParseOp(s string) (Op, error) {
	const op = "ir.ParseOp"
	name, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || rest == "" {
		return Op{}, qerr.InvalidArgument(op, "expected GATE:qubit[,qubit], got %q", s)
	}
	g, err := gates.Lookup(name)
	if err != nil {
		return Op{}, err
	}
	fields := strings.Split(rest, ",")
	qubits := make([]int, 0, len(fields))
	for _, f := range fields {
		q, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Op{}, qerr.InvalidArgument(op, "invalid qubit index %q in %q", f, s)
		}
		qubits = append(qubits, q)
	}
	if len(qubits) != g.Arity {
		return Op{}, qerr.InvalidArgument(op, "gate %s takes %d qubit(s), got %d", g.Name, g.Arity, len(qubits))
	}
	return Op{Gate: g.Name, Qubits: qubits}, nil
}

// ParseOps parses each string with ParseOp.
func ParseOps(specs []string) ([]Op, error) {
	ops := make([]Op, 0, len(specs))
	for i, s := range specs {
		o, err := ParseOp(s)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, o)
	}
	return ops, nil
}

// ReferenceCircuit is the benchmark workload: X on the last qubit, H on
// qubit 0, then CNOT(0, 1). It needs at least two qubits.
func ReferenceCircuit(n int) (Circuit, error) {
	if n < 2 {
		return Circuit{}, qerr.InvalidArgument("ir.ReferenceCircuit", "reference circuit needs at least 2 qubits").With("n", n)
	}
	return Circuit{
		Qubits: n,
		Ops: []Op{
			{Gate: gates.NameX, Qubits: []int{n - 1}},
			{Gate: gates.NameH, Qubits: []int{0}},
			{Gate: gates.NameCNOT, Qubits: []int{0, 1}},
		},
	}, nil
}

// Validate checks the qubit count, that every gate is in the catalogue with
// the right arity, that indices are in range, and that two-qubit ops use
// distinct qubits.
func (c Circuit) Validate() error {
	const op = "ir.Circuit.Validate"
	if err := qerr.CheckQubits(op, c.Qubits); err != nil {
		return err
	}
	for i, o := range c.Ops {
		g, err := gates.Lookup(o.Gate)
		if err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		if len(o.Qubits) != g.Arity {
			return qerr.InvalidArgument(op, "gate %s takes %d qubit(s), got %d", g.Name, g.Arity, len(o.Qubits)).With("op", i)
		}
		for _, q := range o.Qubits {
			if err := qerr.CheckIndex(op, q, c.Qubits); err != nil {
				return fmt.Errorf("op %d: %w", i, err)
			}
		}
		if g.Arity == 2 && o.Qubits[0] == o.Qubits[1] {
			return qerr.InvalidArgument(op, "control and target must differ").With("op", i).With("qubit", o.Qubits[0])
		}
	}
	return nil
}

// Normalized returns a copy with gate names in catalogue spelling.
func (c Circuit) Normalized() (Circuit, error) {
	out := Circuit{Qubits: c.Qubits, Ops: make([]Op, len(c.Ops))}
	for i, o := range c.Ops {
		g, err := gates.Lookup(o.Gate)
		if err != nil {
			return Circuit{}, fmt.Errorf("op %d: %w", i, err)
		}
		out.Ops[i] = Op{Gate: g.Name, Qubits: append([]int(nil), o.Qubits...)}
	}
	return out, nil
}

// Canonical returns the circuit as a value MarshalCanonical accepts.
func (c Circuit) Canonical() (map[string]any, error) {
	norm, err := c.Normalized()
	if err != nil {
		return nil, err
	}
	ops := make([]any, len(norm.Ops))
	for i, o := range norm.Ops {
		ops[i] = map[string]any{
			"gate":   o.Gate,
			"qubits": o.Qubits,
		}
	}
	return map[string]any{
		"ir_version": IRVersion,
		"qubits":     norm.Qubits,
		"ops":        ops,
	}, nil
}
