// Package sim is the simulator facade. It owns a configuration, dispatches
// gate applications to the dense or contraction applicator depending on the
// state it is handed, and measures flattened results.
//
// A Simulator holds a random source and is not safe for concurrent use.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/contract"
	"github.com/roach88/qsim/internal/dense"
	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/ir"
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/measure"
	"github.com/roach88/qsim/internal/qerr"
	"github.com/roach88/qsim/internal/register"
)

// Simulator runs circuits in the configured representation.
type Simulator struct {
	cfg      config.Config
	budget   qerr.Budget
	dense    dense.Applicator
	contract contract.Applicator
	sampler  measure.Sampler
	logger   *slog.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for per-gate debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource replaces the seeded PCG source used by Sample.
func WithSource(src rand.Source) Option {
	return func(s *Simulator) {
		if src != nil {
			s.sampler.Source = src
		}
	}
}

// New validates cfg and builds a Simulator. The sampling source is a PCG
// seeded from cfg.Seed unless WithSource is given.
func New(cfg config.Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim.New: %w", err)
	}
	budget := cfg.Budget()
	s := &Simulator{
		cfg:      cfg,
		budget:   budget,
		dense:    dense.Applicator{Budget: budget},
		contract: contract.Applicator{Budget: budget},
		sampler: measure.Sampler{
			Source:    rand.NewPCG(uint64(cfg.Seed), 0),
			Tolerance: cfg.Tolerance,
			Budget:    budget,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() config.Config { return s.cfg }

// Init returns |0>^n in the configured representation.
func (s *Simulator) Init(n int) (State, error) {
	const op = "sim.Init"
	if err := qerr.CheckQubits(op, n); err != nil {
		return nil, err
	}
	if n > s.cfg.MaxQubits {
		return nil, qerr.ResourceExhausted(op, "qubit count exceeds configured max_qubits").
			With("n", n).With("max_qubits", s.cfg.MaxQubits)
	}

	switch s.cfg.Representation {
	case config.RepresentationDense:
		v, err := register.NewVector(n, s.budget)
		if err != nil {
			return nil, err
		}
		return &VectorState{n: n, amps: v}, nil
	default:
		t, err := register.NewTensor(n, s.budget)
		if err != nil {
			return nil, err
		}
		return &TensorState{t: t}, nil
	}
}

// Apply applies the named catalogue gate. Single-qubit gates take one index;
// CNOT takes (control, target), any two distinct indices. The input state is
// left untouched.
func (s *Simulator) Apply(state State, gateName string, qubits ...int) (State, error) {
	const op = "sim.Apply"
	if state == nil {
		return nil, qerr.InvalidArgument(op, "nil state")
	}
	g, err := gates.Lookup(gateName)
	if err != nil {
		return nil, err
	}
	if len(qubits) != g.Arity {
		return nil, qerr.InvalidArgument(op, "gate %s takes %d qubit(s), got %d", g.Name, g.Arity, len(qubits))
	}

	s.logger.Debug("apply gate",
		"gate", g.Name,
		"qubits", qubits,
		"n", state.Qubits(),
		"representation", state.Representation())

	switch st := state.(type) {
	case *VectorState:
		var out linalg.Vector
		if g.Arity == 1 {
			out, err = s.dense.ApplySingle(st.n, st.amps, g, qubits[0])
		} else {
			out, err = s.dense.ApplyPair(st.n, st.amps, g, qubits[0], qubits[1])
		}
		if err != nil {
			return nil, err
		}
		return &VectorState{n: st.n, amps: out}, nil

	case *TensorState:
		if g.Arity == 1 {
			t, err := s.contract.ApplySingle(st.t, g, qubits[0])
			if err != nil {
				return nil, err
			}
			return &TensorState{t: t}, nil
		}
		t, err := s.contract.ApplyTwo(st.t, g, qubits[0], qubits[1])
		if err != nil {
			return nil, err
		}
		return &TensorState{t: t}, nil

	default:
		return nil, qerr.InvalidArgument(op, "unsupported state type %T", state)
	}
}

// Run initializes an n-qubit register and folds Apply over the circuit. The
// circuit's own qubit count, when set, must equal n.
func (s *Simulator) Run(c ir.Circuit, n int) (State, error) {
	const op = "sim.Run"
	if c.Qubits != 0 && c.Qubits != n {
		return nil, qerr.InvalidArgument(op, "circuit is declared for %d qubits, run requested %d", c.Qubits, n)
	}
	c.Qubits = n
	if err := c.Validate(); err != nil {
		return nil, err
	}

	state, err := s.Init(n)
	if err != nil {
		return nil, err
	}
	for i, o := range c.Ops {
		state, err = s.Apply(state, o.Gate, o.Qubits...)
		if err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, o, err)
		}
	}
	return state, nil
}

// Flatten returns a copy of the state's amplitudes in axis order. For a
// vector state it is an identity copy.
func (s *Simulator) Flatten(state State) linalg.Vector {
	if state == nil {
		return nil
	}
	if vs, ok := state.(*VectorState); ok {
		return vs.Vector()
	}
	return state.flatten()
}

// Sample draws k basis outcomes from vec using the simulator's source.
func (s *Simulator) Sample(vec linalg.Vector, k int) ([]int, error) {
	return s.sampler.Sample(vec, k)
}

// Counts draws k outcomes like Sample and returns per-index counts.
func (s *Simulator) Counts(vec linalg.Vector, k int) ([]int, error) {
	return s.sampler.Counts(vec, k)
}

// Expectation returns <vec|op|vec>.
func (s *Simulator) Expectation(vec linalg.Vector, op linalg.Matrix) (complex128, error) {
	return measure.Expectation(vec, op)
}
