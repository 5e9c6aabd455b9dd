package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/puzzler/pkg/types"
)

const testHistoryFile = "history.db"

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, testHistoryFile)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func sampleRun(seed uint64) *types.Run {
	return &types.Run{
		Seed:       seed,
		Dictionary: "/usr/share/dict/words",
		Words:      []string{"aaccbb", "aabb"},
		Attempts:   12,
		State:      types.RunStateComplete,
		Board:      "--aabb--\n--cc----\n--bb----\n--------\n",
		ElapsedMS:  4,
	}
}

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := Open(dir, testHistoryFile)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, testHistoryFile))
	assert.NoError(t, err, "history.db not created")
	assert.Equal(t, filepath.Join(dir, testHistoryFile), s.Path())
}

func TestOpen_AppliesMigrations(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, testHistoryFile)
	require.NoError(t, err)
	version, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	require.NoError(t, s.Close())

	// Reopening an up-to-date database is a no-op.
	s, err = Open(dir, testHistoryFile)
	require.NoError(t, err)
	defer s.Close()
	version, err = s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestStore_RecordAndGet(t *testing.T) {
	s, _ := openTestStore(t)

	run := sampleRun(42)
	require.NoError(t, s.Record(run))

	_, err := uuid.Parse(run.RunID)
	require.NoError(t, err, "RunID should be a UUID, got %q", run.RunID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, uint64(42), got.Seed)
	assert.Equal(t, run.Words, got.Words)
	assert.Equal(t, run.Board, got.Board)
	assert.Equal(t, run.Attempts, got.Attempts)
	assert.Equal(t, run.ElapsedMS, got.ElapsedMS)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_RecordLargeSeed(t *testing.T) {
	s, _ := openTestStore(t)

	run := sampleRun(^uint64(0) - 7)
	require.NoError(t, s.Record(run))

	got, err := s.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0)-7, got.Seed)
}

func TestStore_RecordRejectsInvalidState(t *testing.T) {
	s, _ := openTestStore(t)

	run := sampleRun(1)
	run.State = "half-done"
	assert.ErrorIs(t, s.Record(run), types.ErrInvalidRunState)
}

func TestStore_GetNotFound(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s, _ := openTestStore(t)

	for seed := uint64(1); seed <= 3; seed++ {
		require.NoError(t, s.Record(sampleRun(seed)))
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint64{3, 2, 1}, []uint64{all[0].Seed, all[1].Seed, all[2].Seed})

	limited, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, uint64(3), limited[0].Seed)
}

func TestStore_Summary(t *testing.T) {
	s, _ := openTestStore(t)

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)

	a := sampleRun(1)
	a.ElapsedMS = 10
	b := sampleRun(2)
	b.ElapsedMS = 20
	b.State = types.RunStateExhausted
	b.Attempts = 100
	require.NoError(t, s.Record(a))
	require.NoError(t, s.Record(b))

	sum, err = s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Runs)
	assert.Equal(t, 1, sum.Complete)
	assert.InDelta(t, 15.0, sum.AverageMS, 0.001)
	assert.Equal(t, int64(112), sum.TotalAttempts)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, testHistoryFile)
	require.NoError(t, err)
	run := sampleRun(9)
	require.NoError(t, s.Record(run))
	require.NoError(t, s.Close())

	s, err = Open(dir, testHistoryFile)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), got.Seed)
}

func TestStore_Closed(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second Close should not error")

	assert.ErrorIs(t, s.Record(sampleRun(1)), ErrStoreClosed)
	_, err := s.Get("x")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.List(0)
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.Summary()
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.ExportJSONL(filepath.Join(t.TempDir(), "runs.jsonl"))
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.SchemaVersion()
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestStore_ExportImportJSONL(t *testing.T) {
	src, _ := openTestStore(t)
	first := sampleRun(1)
	first.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, src.Record(first))
	require.NoError(t, src.Record(sampleRun(2)))

	path := filepath.Join(t.TempDir(), "runs.jsonl")
	n, err := src.ExportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"seed":1`)

	// Append a malformed line and an invalid run; both must be skipped.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n{\"run_id\":\"x\",\"state\":\"bogus\"}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	dst, _ := openTestStore(t)
	added, err := dst.ImportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	again, err := dst.ImportJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, 0, again, "re-import should not duplicate runs")

	got, err := dst.Get(first.RunID)
	require.NoError(t, err)
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("imported run differs (-recorded +imported):\n%s", diff)
	}
}

func TestStore_ImportMissingFile(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.ImportJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
