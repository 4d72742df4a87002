package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Countdown/internal/models"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "countdown.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newRun(launched time.Time) *models.Run {
	return &models.Run{
		Start:      time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
		Target:     time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC),
		LaunchedAt: launched,
	}
}

func TestSaveAndGetRun(t *testing.T) {
	db := openTestDB(t)
	launched := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	run := newRun(launched)
	require.NoError(t, db.SaveRun(run))
	require.NotZero(t, run.ID)

	got, err := db.GetRun(run.ID)
	require.NoError(t, err)
	assert.True(t, run.Start.Equal(got.Start))
	assert.True(t, run.Target.Equal(got.Target))
	assert.True(t, launched.Equal(got.LaunchedAt))
	assert.False(t, got.Expired())
}

func TestMarkExpiredOnlyOnce(t *testing.T) {
	db := openTestDB(t)
	run := newRun(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.SaveRun(run))

	first := time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)
	require.NoError(t, db.MarkExpired(run.ID, first))
	require.NoError(t, db.MarkExpired(run.ID, first.Add(time.Hour)))

	got, err := db.GetRun(run.ID)
	require.NoError(t, err)
	require.True(t, got.Expired())
	assert.True(t, first.Equal(*got.ExpiredAt))
}

func TestMarkExpiredUnknownRun(t *testing.T) {
	db := openTestDB(t)
	err := db.MarkExpired(42, time.Now())
	require.ErrorIs(t, err, ErrRunNotFound)

	_, err = db.GetRun(42)
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestRecentRunsAndStats(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var ids []int64
	for i := 0; i < 5; i++ {
		run := newRun(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, db.SaveRun(run))
		ids = append(ids, run.ID)
	}
	require.NoError(t, db.MarkExpired(ids[1], base.Add(48*time.Hour)))
	require.NoError(t, db.MarkExpired(ids[4], base.Add(48*time.Hour)))

	runs, err := db.RecentRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[4], runs[0].ID)
	assert.Equal(t, ids[3], runs[1].ID)
	assert.Equal(t, ids[2], runs[2].ID)
	assert.True(t, runs[0].Expired())

	stats, err := db.GetRunStats(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, &models.RunStats{TotalRuns: 5, ExpiredRuns: 2}, stats)

	stats, err = db.GetRunStats(base.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, &models.RunStats{TotalRuns: 3, ExpiredRuns: 1}, stats)
}

func TestEmptyStats(t *testing.T) {
	db := openTestDB(t)
	stats, err := db.GetRunStats(time.Time{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRuns)
	assert.Zero(t, stats.ExpiredRuns)

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCloseNil(t *testing.T) {
	var db *Database
	assert.NoError(t, db.Close())
}
