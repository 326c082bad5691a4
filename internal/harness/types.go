package harness

import (
	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/linalg"
)

// Outcome is the flattened result of one representation.
type Outcome struct {
	Representation config.Representation `json:"representation"`
	Amplitudes     linalg.Vector         `json:"-"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held and all representations agreed.
	Pass bool `json:"pass"`

	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// CircuitID is the content-addressed ID of the circuit that ran.
	CircuitID string `json:"circuit_id"`

	// Qubits is the register width.
	Qubits int `json:"qubits"`

	// Ops lists the normalized ops, e.g. "CNOT:0,1".
	Ops []string `json:"ops"`

	// Outcomes holds one entry per representation, in run order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Pass:     true,
		Scenario: scenario,
		Ops:      []string{},
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Amplitudes returns the first outcome's vector, or nil when nothing ran.
func (r *Result) Amplitudes() linalg.Vector {
	if len(r.Outcomes) == 0 {
		return nil
	}
	return r.Outcomes[0].Amplitudes
}
