package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/qsim/internal/config"
)

// ReadSweep retrieves a single sweep by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSweep(ctx context.Context, id string) (Sweep, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, representation, from_qubits, to_qubits, params, simulator_version, ir_version
		FROM sweeps
		WHERE id = ?
	`, id)

	var (
		sw     Sweep
		rep    string
		params string
	)
	if err := row.Scan(&sw.ID, &rep, &sw.FromQubits, &sw.ToQubits, &params, &sw.SimulatorVersion, &sw.IRVersion); err != nil {
		if err == sql.ErrNoRows {
			return Sweep{}, err
		}
		return Sweep{}, fmt.Errorf("scan sweep: %w", err)
	}
	sw.Representation = config.Representation(rep)

	cfg, err := unmarshalParams(params)
	if err != nil {
		return Sweep{}, err
	}
	sw.Config = cfg
	return sw, nil
}

// ListSweepIDs returns every sweep ID in binary order. UUIDv7 IDs sort by
// creation time.
func (s *Store) ListSweepIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM sweeps
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sweeps: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan sweep id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sweeps: %w", err)
	}
	return ids, nil
}

const runColumns = `id, sweep_id, seq, circuit_id, representation, qubits, elapsed_ns,
		status, error_code, error_message, result_hash`

// ReadRuns returns the runs of a sweep ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) if the sweep has no runs.
func (s *Store) ReadRuns(ctx context.Context, sweepID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE sweep_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsByCircuit returns every stored run of one circuit across sweeps,
// ordered by sweep ID then seq. Runs of the same circuit on the same width
// must share a result hash whichever representation produced them.
func (s *Store) RunsByCircuit(ctx context.Context, circuitID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE circuit_id = ?
		ORDER BY sweep_id COLLATE BINARY ASC, seq ASC
	`, circuitID)
	if err != nil {
		return nil, fmt.Errorf("query circuit runs: %w", err)
	}
	return scanRuns(rows)
}

// scanRuns drains rows selected with runColumns and closes them.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			r   Run
			rep string
		)
		if err := rows.Scan(&r.ID, &r.SweepID, &r.Seq, &r.CircuitID, &rep, &r.Qubits, &r.ElapsedNS,
			&r.Status, &r.ErrorCode, &r.ErrorMessage, &r.ResultHash); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Representation = config.Representation(rep)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Series aggregates successful runs of one representation across all sweeps,
// one point per qubit count in ascending order.
func (s *Store) Series(ctx context.Context, rep config.Representation) ([]SeriesPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT qubits, COUNT(*), CAST(AVG(elapsed_ns) AS INTEGER), MIN(elapsed_ns), MAX(elapsed_ns)
		FROM runs
		WHERE representation = ? AND status = ?
		GROUP BY qubits
		ORDER BY qubits ASC
	`, string(rep), StatusOK)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	points := []SeriesPoint{}
	for rows.Next() {
		var p SeriesPoint
		if err := rows.Scan(&p.Qubits, &p.Count, &p.MeanNS, &p.MinNS, &p.MaxNS); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return points, nil
}
