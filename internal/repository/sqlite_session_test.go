package repository

import (
	"context"
	"testing"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_PutAndGetByID(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	sess := testutil.NewTestSession(testutil.WithGoals("project the roof", "stretch"))
	sess.PreSessionData.Nutrition = domain.NutritionGood
	require.NoError(t, repo.Put(ctx, sess))

	got, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.True(t, sess.StartTime.Equal(got.StartTime))
	assert.Nil(t, got.EndTime)
	assert.Nil(t, got.Duration)
	assert.Equal(t, []string{"project the roof", "stretch"}, got.PreSessionData.Goals)
	assert.Equal(t, domain.NutritionGood, got.PreSessionData.Nutrition)
	assert.NotNil(t, got.Problems)
	assert.Empty(t, got.Problems)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepo_PutReplacesFullRecord(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	sess := testutil.NewTestSession()
	require.NoError(t, repo.Put(ctx, sess))

	p := testutil.NewTestProblem(sess.ID, "Crimpy")
	sess.Problems = []domain.SessionProblem{*p}
	require.NoError(t, sess.End(sess.StartTime.Add(45*time.Minute), "good day"))
	require.NoError(t, repo.Put(ctx, sess))

	got, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndTime)
	require.NotNil(t, got.Duration)
	assert.Equal(t, 45, *got.Duration)
	assert.Equal(t, "good day", got.PostSessionNotes)
	require.Len(t, got.Problems, 1)
	assert.Equal(t, "Crimpy", got.Problems[0].Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSessionRepo_FindActive_FirstByInsertion(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.FindActive(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	now := time.Now().UTC()
	ended := testutil.NewTestSession(testutil.WithStartTime(now.Add(-3*time.Hour)), testutil.WithEnded(60))
	first := testutil.NewTestSession(testutil.WithStartTime(now))
	second := testutil.NewTestSession(testutil.WithStartTime(now.Add(-time.Hour)))
	require.NoError(t, repo.Put(ctx, ended))
	require.NoError(t, repo.Put(ctx, first))
	require.NoError(t, repo.Put(ctx, second))

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	// Re-putting keeps the original insertion position.
	require.NoError(t, repo.Put(ctx, first))
	active, err = repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestSessionRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	now := time.Now().UTC()
	old := testutil.NewTestSession(testutil.WithStartTime(now.Add(-48*time.Hour)), testutil.WithEnded(90))
	recent := testutil.NewTestSession(testutil.WithStartTime(now.Add(-time.Hour)))
	require.NoError(t, repo.Put(ctx, recent))
	require.NoError(t, repo.Put(ctx, old))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)
}

func TestSessionRepo_ListWhere(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	open := testutil.NewTestSession()
	closed := testutil.NewTestSession(testutil.WithEnded(30))
	require.NoError(t, repo.Put(ctx, open))
	require.NoError(t, repo.Put(ctx, closed))

	active, err := repo.ListWhere(ctx, "end_time", nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	byStart, err := repo.ListWhere(ctx, "start_time", closed.StartTime)
	require.NoError(t, err)
	require.NotEmpty(t, byStart)

	_, err = repo.ListWhere(ctx, "post_session_notes", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSessionRepo_DeleteWhere(t *testing.T) {
	repo := NewSQLiteSessionRepo(testutil.NewTestDB(t), nil)
	ctx := context.Background()

	sess := testutil.NewTestSession()
	require.NoError(t, repo.Put(ctx, sess))

	n, err := repo.DeleteWhere(ctx, "id", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteWhere(ctx, "id", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
