package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/ir"
)

// createTestStore opens a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestSweep(id string, rep config.Representation) Sweep {
	cfg := config.Default()
	cfg.Representation = rep
	return Sweep{
		ID:               id,
		Representation:   rep,
		FromQubits:       2,
		ToQubits:         4,
		Config:           cfg,
		SimulatorVersion: ir.SimulatorVersion,
		IRVersion:        ir.IRVersion,
	}
}

func createTestRun(id, sweepID string, seq int64, qubits int, elapsed int64) Run {
	return Run{
		ID:             id,
		SweepID:        sweepID,
		Seq:            seq,
		CircuitID:      "circuit-hash",
		Representation: config.RepresentationTensor,
		Qubits:         qubits,
		ElapsedNS:      elapsed,
		Status:         StatusOK,
		ResultHash:     "result-hash",
	}
}
