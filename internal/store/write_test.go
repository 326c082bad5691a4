package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsim/internal/config"
)

func TestWriteSweepAndReadBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sw := createTestSweep("sweep-1", config.RepresentationDense)
	sw.Config.Tolerance = 1e-6
	require.NoError(t, s.WriteSweep(ctx, sw))

	got, err := s.ReadSweep(ctx, "sweep-1")
	require.NoError(t, err)
	assert.Equal(t, sw, got)
}

func TestWriteSweepIsIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sw := createTestSweep("sweep-1", config.RepresentationTensor)
	require.NoError(t, s.WriteSweep(ctx, sw))

	changed := sw
	changed.ToQubits = 20
	require.NoError(t, s.WriteSweep(ctx, changed))

	got, err := s.ReadSweep(ctx, "sweep-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.ToQubits, "first write wins")
}

func TestReadSweepNotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadSweep(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWriteRunRequiresSweep(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteRun(context.Background(), createTestRun("run-1", "no-such-sweep", 1, 2, 100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write run")
}

func TestWriteRunIsIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteSweep(ctx, createTestSweep("sweep-1", config.RepresentationTensor)))

	require.NoError(t, s.WriteRun(ctx, createTestRun("run-1", "sweep-1", 1, 2, 100)))
	require.NoError(t, s.WriteRun(ctx, createTestRun("run-1", "sweep-1", 1, 2, 999)))
	// Same (sweep_id, seq) under a new ID is also ignored.
	require.NoError(t, s.WriteRun(ctx, createTestRun("run-2", "sweep-1", 1, 2, 555)))

	runs, err := s.ReadRuns(ctx, "sweep-1")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(100), runs[0].ElapsedNS)
}

func TestWriteRunRejectsUnknownStatus(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteSweep(ctx, createTestSweep("sweep-1", config.RepresentationTensor)))

	r := createTestRun("run-1", "sweep-1", 1, 2, 100)
	r.Status = "maybe"
	assert.Error(t, s.WriteRun(ctx, r))
}

func TestWriteSweepRunsIsAtomic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	bad := createTestRun("run-2", "sweep-1", 2, 3, 10)
	bad.Status = "bogus"
	err := s.WriteSweepRuns(ctx, createTestSweep("sweep-1", config.RepresentationTensor), []Run{
		createTestRun("run-1", "sweep-1", 1, 2, 10),
		bad,
	})
	require.Error(t, err)

	_, err = s.ReadSweep(ctx, "sweep-1")
	assert.ErrorIs(t, err, sql.ErrNoRows, "sweep must be rolled back")

	err = s.WriteSweepRuns(ctx, createTestSweep("sweep-1", config.RepresentationTensor), []Run{
		createTestRun("run-1", "sweep-1", 1, 2, 10),
		createTestRun("run-2", "sweep-1", 2, 3, 20),
	})
	require.NoError(t, err)
	runs, err := s.ReadRuns(ctx, "sweep-1")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestMarshalParamsIsCanonical(t *testing.T) {
	cfg := config.Default()
	data, err := marshalParams(cfg)
	require.NoError(t, err)
	assert.Equal(t,
		`{"max_qubits":26,"memory_limit_mb":1024,"representation":"tensor","seed":1,"tolerance":"1e-09"}`,
		data)

	back, err := unmarshalParams(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	_, err = unmarshalParams(`{"tolerance":"abc"}`)
	assert.Error(t, err)
	_, err = unmarshalParams(`not json`)
	assert.Error(t, err)
}
