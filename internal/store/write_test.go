package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scalediv/internal/config"
	"github.com/roach88/scalediv/internal/testutil"
)

func TestSaveAxis_Insert(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("axis-1")), WithSequencer(NewClock()))
	ctx := context.Background()

	rec, changed, err := s.SaveAxis(ctx, testAxis("  x ", 10))
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "axis-1", rec.ID)
	assert.Equal(t, "x", rec.Name)
	assert.Equal(t, "linear", rec.Kind)
	assert.Equal(t, int64(1), rec.Seq)
	assert.Len(t, rec.ConfigHash, 64)

	var data string
	err = s.db.QueryRow(`SELECT config FROM axes WHERE id = ?`, rec.ID).Scan(&data)
	require.NoError(t, err)
	assert.Equal(t, `{"max":10,"min":0,"name":"x"}`, data)
}

func TestSaveAxis_Unchanged(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("axis-1")), WithSequencer(NewClock()))
	ctx := context.Background()

	first, _, err := s.SaveAxis(ctx, testAxis("x", 10))
	require.NoError(t, err)

	// a second insert would exhaust the fixed generator
	second, changed, err := s.SaveAxis(ctx, testAxis("x", 10))
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestSaveAxis_Replace(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("axis-1", "snap-1")), WithSequencer(NewClock()))
	ctx := context.Background()

	first, _, err := s.SaveAxis(ctx, testAxis("x", 10))
	require.NoError(t, err)
	_, _, err = s.WriteSnapshot(ctx, first.ID, createTestSnapshot("x", 10))
	require.NoError(t, err)

	a := testAxis("x", 20)
	a.Engine = "log"
	second, changed, err := s.SaveAxis(ctx, a)
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "log", second.Kind)
	assert.Equal(t, int64(3), second.Seq)
	assert.NotEqual(t, first.ConfigHash, second.ConfigHash)

	// snapshots of the old configuration are kept
	snaps, err := s.ReadSnapshots(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestSaveAxis_Errors(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.SaveAxis(ctx, testAxis(" ", 10))
	assert.Error(t, err)

	a := testAxis("x", 10)
	a.Engine = "polar"
	_, _, err = s.SaveAxis(ctx, a)
	assert.Error(t, err)
}

func TestSaveAxes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	f := &config.File{Axes: []config.Axis{testAxis("a", 1), testAxis("b", 2)}}

	n, err := s.SaveAxes(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f.Axes[1] = testAxis("b", 3)
	n, err = s.SaveAxes(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeleteAxis_CascadesSnapshots(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec, _, err := s.SaveAxis(ctx, testAxis("x", 10))
	require.NoError(t, err)
	_, _, err = s.WriteSnapshot(ctx, rec.ID, createTestSnapshot("x", 10))
	require.NoError(t, err)

	deleted, err := s.DeleteAxis(ctx, "x")
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count))
	assert.Zero(t, count)

	deleted, err = s.DeleteAxis(ctx, "x")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestWriteSnapshot_Basic(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("axis-1", "snap-1")), WithSequencer(NewClock()))
	ctx := context.Background()

	axis, _, err := s.SaveAxis(ctx, testAxis("x", 10))
	require.NoError(t, err)

	rec, inserted, err := s.WriteSnapshot(ctx, axis.ID, createTestSnapshot("x", 10))
	require.NoError(t, err)

	assert.True(t, inserted)
	assert.Equal(t, "snap-1", rec.ID)
	assert.Equal(t, int64(2), rec.Seq)

	var data string
	require.NoError(t, s.db.QueryRow(`SELECT data FROM snapshots WHERE id = ?`, rec.ID).Scan(&data))
	assert.Equal(t, `{"axis":"x","kind":"linear","lower":0,"major":[0,10],"medium":[5],"minor":[],"upper":10}`, data)
}

func TestWriteSnapshot_Idempotent(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("axis-1", "snap-1", "snap-2")), WithSequencer(NewClock()))
	ctx := context.Background()

	axis, _, err := s.SaveAxis(ctx, testAxis("x", 10))
	require.NoError(t, err)

	first, inserted, err := s.WriteSnapshot(ctx, axis.ID, createTestSnapshot("x", 10))
	require.NoError(t, err)
	require.True(t, inserted)

	again, inserted, err := s.WriteSnapshot(ctx, axis.ID, createTestSnapshot("x", 10))
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.Seq, again.Seq)

	other, inserted, err := s.WriteSnapshot(ctx, axis.ID, createTestSnapshot("x", 20))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "snap-2", other.ID)
	assert.Equal(t, int64(3), other.Seq)
}

func TestWriteSnapshot_ForeignKeyViolation(t *testing.T) {
	s := createTestStore(t)

	_, _, err := s.WriteSnapshot(context.Background(), "no-such-axis", createTestSnapshot("x", 10))
	assert.Error(t, err)
}

func TestReadAxis_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadAxis(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSaveAxes_Deterministic(t *testing.T) {
	ctx := context.Background()
	f := &config.File{Axes: []config.Axis{testAxis("a", 1), testAxis("b", 2)}}

	var runs [2][]AxisRecord
	for i := range runs {
		s := createTestStore(t,
			WithIDGenerator(testutil.NewSequentialIDs()),
			WithSequencer(testutil.NewDeterministicClock()))

		_, err := s.SaveAxes(ctx, f)
		require.NoError(t, err)

		runs[i], err = s.ListAxes(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, testutil.SequentialID(2), runs[0][1].ID)
	assert.Equal(t, int64(2), runs[0][1].Seq)
}
