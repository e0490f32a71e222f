package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs", "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndGet_RoundTrip(t *testing.T) {
	// GIVEN an empty store
	s := openTestStore(t)
	ctx := context.Background()

	// WHEN a finished run is recorded
	id, err := s.Record(ctx, Run{
		Name:           "sample-part2",
		Relief:         "ring-preserving",
		Rounds:         10000,
		Inspections:    []uint64{52166, 47830, 1938, 52013},
		MonkeyBusiness: 2713310158,
	})
	require.NoError(t, err)

	// THEN it can be read back by its generated ID
	require.NotEmpty(t, id)
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "sample-part2", got.Name)
	assert.Equal(t, 10000, got.Rounds)
	assert.Equal(t, []uint64{52166, 47830, 1938, 52013}, got.Inspections)
	assert.Equal(t, uint64(2713310158), got.MonkeyBusiness)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_Record_LargeScore(t *testing.T) {
	// GIVEN a score above the signed 64-bit range
	s := openTestStore(t)
	ctx := context.Background()
	score := uint64(1<<63 + 12345)

	id, err := s.Record(ctx, Run{Name: "big", Relief: "ring-preserving", Inspections: []uint64{1, 2}, MonkeyBusiness: score})
	require.NoError(t, err)

	// THEN it survives storage unchanged
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, score, got.MonkeyBusiness)
}

func TestStore_Get_Missing_IsNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Record_DuplicateID_Fails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := Run{ID: "fixed", Name: "a", Relief: "bounded-decay", Inspections: []uint64{1, 2}}
	_, err := s.Record(ctx, run)
	require.NoError(t, err)
	_, err = s.Record(ctx, run)
	assert.Error(t, err)
}

func TestStore_List_OldestFirst(t *testing.T) {
	// GIVEN runs recorded out of chronological order
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	_, err := s.Record(ctx, Run{ID: "b", Name: "second", Relief: "ring-preserving", Inspections: []uint64{1, 1}, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = s.Record(ctx, Run{ID: "a", Name: "first", Relief: "bounded-decay", Inspections: []uint64{1, 1}, CreatedAt: base})
	require.NoError(t, err)

	// WHEN listed
	runs, err := s.List(ctx)

	// THEN they come back oldest first
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "first", runs[0].Name)
	assert.Equal(t, "second", runs[1].Name)
	assert.True(t, runs[0].CreatedAt.Equal(base))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
