package store

import "github.com/roach88/qsim/internal/config"

// Run status values.
const (
	StatusOK      = "ok"
	StatusRefused = "refused"
	StatusFailed  = "failed"
)

// Sweep is one benchmark invocation over [FromQubits, ToQubits].
type Sweep struct {
	ID               string                `json:"id"`
	Representation   config.Representation `json:"representation"`
	FromQubits       int                   `json:"from_qubits"`
	ToQubits         int                   `json:"to_qubits"`
	Config           config.Config         `json:"config"`
	SimulatorVersion string                `json:"simulator_version"`
	IRVersion        string                `json:"ir_version"`
}

// Run is one timed circuit execution within a sweep.
type Run struct {
	ID             string                `json:"id"`
	SweepID        string                `json:"sweep_id"`
	Seq            int64                 `json:"seq"`
	CircuitID      string                `json:"circuit_id"`
	Representation config.Representation `json:"representation"`
	Qubits         int                   `json:"qubits"`
	ElapsedNS      int64                 `json:"elapsed_ns"`
	Status         string                `json:"status"`
	ErrorCode      string                `json:"error_code,omitempty"`
	ErrorMessage   string                `json:"error_message,omitempty"`
	ResultHash     string                `json:"result_hash,omitempty"`
}

// SeriesPoint aggregates successful runs for one qubit count.
type SeriesPoint struct {
	Qubits int   `json:"qubits"`
	Count  int   `json:"count"`
	MeanNS int64 `json:"mean_ns"`
	MinNS  int64 `json:"min_ns"`
	MaxNS  int64 `json:"max_ns"`
}
