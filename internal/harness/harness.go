package harness

import (
	"fmt"
	"log/slog"
	"math/cmplx"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/ir"
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/sim"
)

// DefaultRepresentations is the run order when a scenario names none.
var DefaultRepresentations = []config.Representation{
	config.RepresentationDense,
	config.RepresentationTensor,
}

// Option configures a scenario run.
type Option func(*Harness)

// WithConfig sets the simulator configuration. The representation field is
// overridden per run.
func WithConfig(cfg config.Config) Option {
	return func(h *Harness) { h.cfg = cfg }
}

// WithLogger sets the logger passed to each simulator.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Harness runs one scenario across representations.
type Harness struct {
	cfg    config.Config
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Parse ops and validate the circuit
//  2. Run it on every requested representation
//  3. Check that flattened results agree within tolerance
//  4. Evaluate assertions against each result
//
// A returned error means the scenario could not run at all; assertion and
// agreement failures are reported in Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		cfg:    config.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h.run(scenario)
}

func (h *Harness) run(scenario *Scenario) (*Result, error) {
	ops, err := ir.ParseOps(scenario.Ops)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	circuit := ir.Circuit{Qubits: scenario.Qubits, Ops: ops}
	if err := circuit.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	circuitID, err := ir.CircuitID(circuit)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	reps, err := representations(scenario)
	if err != nil {
		return nil, err
	}
	tol := scenario.Tolerance
	if tol == 0 {
		tol = h.cfg.Tolerance
	}

	result := NewResult(scenario.Name)
	result.CircuitID = circuitID
	result.Qubits = scenario.Qubits
	for _, o := range ops {
		result.Ops = append(result.Ops, o.String())
	}

	for _, rep := range reps {
		cfg := h.cfg
		cfg.Representation = rep
		s, err := sim.New(cfg, sim.WithLogger(h.logger))
		if err != nil {
			return nil, err
		}
		state, err := s.Run(circuit, scenario.Qubits)
		if err != nil {
			return nil, fmt.Errorf("scenario %s (%s): %w", scenario.Name, rep, err)
		}
		result.Outcomes = append(result.Outcomes, Outcome{
			Representation: rep,
			Amplitudes:     s.Flatten(state),
		})
	}

	for _, o := range result.Outcomes[1:] {
		if msg := compareOutcomes(result.Outcomes[0], o, tol); msg != "" {
			result.AddError(msg)
		}
	}

	actx := AssertionContext{
		Qubits:    scenario.Qubits,
		Tolerance: tol,
		Budget:    h.cfg.Budget(),
	}
	for _, o := range result.Outcomes {
		for _, msg := range EvaluateAssertions(o.Amplitudes, scenario.Assertions, actx) {
			result.AddError(fmt.Sprintf("[%s] %s", o.Representation, msg))
		}
	}
	return result, nil
}

// representations resolves the scenario's representation list.
func representations(s *Scenario) ([]config.Representation, error) {
	if len(s.Representations) == 0 {
		return DefaultRepresentations, nil
	}
	out := make([]config.Representation, 0, len(s.Representations))
	for _, r := range s.Representations {
		rep, err := config.ParseRepresentation(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

// compareOutcomes returns a message describing the first amplitude where b
// differs from a by more than tol, or "" when they agree.
func compareOutcomes(a, b Outcome, tol float64) string {
	if len(a.Amplitudes) != len(b.Amplitudes) {
		return fmt.Sprintf("representations disagree: %s has %d amplitudes, %s has %d",
			a.Representation, len(a.Amplitudes), b.Representation, len(b.Amplitudes))
	}
	if i := firstMismatch(a.Amplitudes, b.Amplitudes, tol); i >= 0 {
		return fmt.Sprintf("representations disagree at index %d: %s=%v %s=%v",
			i, a.Representation, a.Amplitudes[i], b.Representation, b.Amplitudes[i])
	}
	return ""
}

func firstMismatch(a, b linalg.Vector, tol float64) int {
	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > tol {
			return i
		}
	}
	return -1
}
