// Package bench times the reference circuit across a range of register
// widths, the way the simulator's scaling is characterized: build |0>^n,
// apply X(n-1), H(0), CNOT(0,1), flatten, and record the elapsed time.
//
// A sweep stops at the first width the memory budget refuses. The refusal is
// recorded as a point, not returned as an error.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/ir"
	"github.com/roach88/qsim/internal/qerr"
	"github.com/roach88/qsim/internal/sim"
	"github.com/roach88/qsim/internal/store"
)

// Recorder persists a finished sweep. *store.Store satisfies it.
type Recorder interface {
	WriteSweepRuns(ctx context.Context, sw store.Sweep, runs []store.Run) error
}

// Point is the outcome for one register width.
type Point struct {
	RunID        string        `json:"run_id"`
	Qubits       int           `json:"qubits"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Status       string        `json:"status"`
	ErrorCode    string        `json:"error_code,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CircuitID    string        `json:"circuit_id"`
	ResultHash   string        `json:"result_hash,omitempty"`
}

// Result is a completed sweep.
type Result struct {
	SweepID        string                `json:"sweep_id"`
	Representation config.Representation `json:"representation"`
	From           int                   `json:"from"`
	To             int                   `json:"to"`
	Points         []Point               `json:"points"`
}

// Refused reports whether the sweep stopped early on the memory budget.
func (r *Result) Refused() bool {
	return len(r.Points) > 0 && r.Points[len(r.Points)-1].Status == store.StatusRefused
}

// Runner executes sweeps. The zero value of every field except Config has a
// working default.
type Runner struct {
	Config   config.Config
	Clock    Clock
	IDs      IDGenerator
	Recorder Recorder
	Logger   *slog.Logger
}

// Sweep times the reference circuit for every n in [from, to].
func (r *Runner) Sweep(ctx context.Context, from, to int) (*Result, error) {
	const op = "bench.Sweep"
	if from < 2 {
		return nil, qerr.InvalidArgument(op, "sweep must start at 2 qubits or more").With("from", from)
	}
	if to < from {
		return nil, qerr.InvalidArgument(op, "empty qubit range").With("from", from).With("to", to)
	}

	clock := r.Clock
	if clock == nil {
		clock = systemClock{}
	}
	ids := r.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s, err := sim.New(r.Config, sim.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	result := &Result{
		SweepID:        ids.Generate(),
		Representation: r.Config.Representation,
		From:           from,
		To:             to,
		Points:         []Point{},
	}
	logger.Info("sweep started",
		"sweep_id", result.SweepID,
		"representation", result.Representation,
		"from", from,
		"to", to)

	for n := from; n <= to; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := r.measure(s, clock, n)
		if err != nil {
			return nil, fmt.Errorf("%s: n=%d: %w", op, n, err)
		}
		p.RunID = ids.Generate()
		result.Points = append(result.Points, p)

		logger.Debug("sweep point",
			"qubits", n,
			"elapsed", p.Elapsed,
			"status", p.Status)
		if p.Status == store.StatusRefused {
			logger.Info("sweep stopped at memory budget", "qubits", n, "error", p.ErrorMessage)
			break
		}
	}

	if r.Recorder != nil {
		if err := r.Recorder.WriteSweepRuns(ctx, r.sweepRecord(result), runRecords(result)); err != nil {
			return nil, fmt.Errorf("%s: record: %w", op, err)
		}
	}
	return result, nil
}

// measure runs the reference circuit once at width n. Budget refusals become
// a refused point; any other failure is returned.
func (r *Runner) measure(s *sim.Simulator, clock Clock, n int) (Point, error) {
	circuit, err := ir.ReferenceCircuit(n)
	if err != nil {
		return Point{}, err
	}
	circuitID, err := ir.CircuitID(circuit)
	if err != nil {
		return Point{}, err
	}

	start := clock.Now()
	state, err := s.Run(circuit, n)
	var amps []complex128
	if err == nil {
		amps = s.Flatten(state)
	}
	elapsed := clock.Now().Sub(start)

	p := Point{Qubits: n, Elapsed: elapsed, CircuitID: circuitID}
	if err != nil {
		if !qerr.IsResourceExhausted(err) {
			return Point{}, err
		}
		p.Status = store.StatusRefused
		p.ErrorCode = string(qerr.CodeOf(err))
		p.ErrorMessage = err.Error()
		return p, nil
	}

	hash, err := ir.ResultHash(circuitID, ir.FormatAmplitudes(amps, ir.AmplitudePrecision))
	if err != nil {
		return Point{}, err
	}
	p.Status = store.StatusOK
	p.ResultHash = hash
	return p, nil
}

func (r *Runner) sweepRecord(res *Result) store.Sweep {
	return store.Sweep{
		ID:               res.SweepID,
		Representation:   res.Representation,
		FromQubits:       res.From,
		ToQubits:         res.To,
		Config:           r.Config,
		SimulatorVersion: ir.SimulatorVersion,
		IRVersion:        ir.IRVersion,
	}
}

func runRecords(res *Result) []store.Run {
	runs := make([]store.Run, len(res.Points))
	for i, p := range res.Points {
		runs[i] = store.Run{
			ID:             p.RunID,
			SweepID:        res.SweepID,
			Seq:            int64(i + 1),
			CircuitID:      p.CircuitID,
			Representation: res.Representation,
			Qubits:         p.Qubits,
			ElapsedNS:      p.Elapsed.Nanoseconds(),
			Status:         p.Status,
			ErrorCode:      p.ErrorCode,
			ErrorMessage:   p.ErrorMessage,
			ResultHash:     p.ResultHash,
		}
	}
	return runs
}
