package store

import (
	"context"
	"database/sql"
	"fmt"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WriteSweep inserts a sweep record. Duplicate IDs are silently ignored.
func (s *Store) WriteSweep(ctx context.Context, sw Sweep) error {
	return writeSweep(ctx, s.db, sw)
}

// WriteRun inserts a run record. The referenced sweep must exist. A second
// run with the same ID or the same (sweep_id, seq) is silently ignored.
func (s *Store) WriteRun(ctx context.Context, r Run) error {
	return writeRun(ctx, s.db, r)
}

// WriteSweepRuns records a sweep and all of its runs in one transaction.
func (s *Store) WriteSweepRuns(ctx context.Context, sw Sweep, runs []Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeSweep(ctx, tx, sw); err != nil {
		return err
	}
	for _, r := range runs {
		if err := writeRun(ctx, tx, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func writeSweep(ctx context.Context, db execer, sw Sweep) error {
	params, err := marshalParams(sw.Config)
	if err != nil {
		return fmt.Errorf("write sweep: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO sweeps
		(id, representation, from_qubits, to_qubits, params, simulator_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sw.ID,
		string(sw.Representation),
		sw.FromQubits,
		sw.ToQubits,
		params,
		sw.SimulatorVersion,
		sw.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write sweep: %w", err)
	}
	return nil
}

func writeRun(ctx context.Context, db execer, r Run) error {
	// ON CONFLICT DO NOTHING covers both the primary key and
	// UNIQUE(sweep_id, seq).
	_, err := db.ExecContext(ctx, `
		INSERT INTO runs
		(id, sweep_id, seq, circuit_id, representation, qubits, elapsed_ns,
		 status, error_code, error_message, result_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		r.ID,
		r.SweepID,
		r.Seq,
		r.CircuitID,
		string(r.Representation),
		r.Qubits,
		r.ElapsedNS,
		r.Status,
		r.ErrorCode,
		r.ErrorMessage,
		r.ResultHash,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}
