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

func problemTestSetup(t *testing.T) (*Tables, *domain.Session) {
	t.Helper()
	tables := NewTables(testutil.NewTestDB(t), nil)
	sess := testutil.NewTestSession()
	require.NoError(t, tables.Sessions.Put(context.Background(), sess))
	return tables, sess
}

func TestProblemRepo_PutAndGetByID(t *testing.T) {
	tables, sess := problemTestSetup(t)
	ctx := context.Background()

	p := testutil.NewTestProblem(sess.ID, "Crimpy", testutil.WithColorGrade("Napakka"))
	require.NoError(t, tables.Problems.Put(ctx, p))

	got, err := tables.Problems.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crimpy", got.Name)
	assert.Equal(t, "6a", got.FrenchGrade)
	assert.Equal(t, "Napakka", got.ColorGrade)
	assert.Equal(t, sess.ID, got.SessionID)
	assert.False(t, got.Flash)
	assert.False(t, got.Send)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	assert.Empty(t, got.Attempts)

	p.Send = true
	require.NoError(t, tables.Problems.Put(ctx, p))
	got, err = tables.Problems.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Send)
}

func TestProblemRepo_GetByID_NotFound(t *testing.T) {
	tables, _ := problemTestSetup(t)

	_, err := tables.Problems.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProblemRepo_RequiresSession(t *testing.T) {
	tables, _ := problemTestSetup(t)

	err := tables.Problems.Put(context.Background(), testutil.NewTestProblem("no-such-session", "Orphan"))
	assert.Error(t, err)
}

func TestProblemRepo_ListWhere_InsertionOrder(t *testing.T) {
	tables, sess := problemTestSetup(t)
	ctx := context.Background()

	now := time.Now().UTC()
	a := testutil.NewTestProblem(sess.ID, "A", testutil.WithCreatedAt(now))
	b := testutil.NewTestProblem(sess.ID, "B", testutil.WithCreatedAt(now.Add(-time.Hour)), testutil.WithFlags(true, false))
	c := testutil.NewTestProblem(sess.ID, "C", testutil.WithFrenchGrade("7a"))
	for _, p := range []*domain.SessionProblem{a, b, c} {
		require.NoError(t, tables.Problems.Put(ctx, p))
	}

	list, err := tables.Problems.ListWhere(ctx, "session_id", sess.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{list[0].Name, list[1].Name, list[2].Name})

	flashed, err := tables.Problems.ListWhere(ctx, "flash", true)
	require.NoError(t, err)
	require.Len(t, flashed, 1)
	assert.Equal(t, b.ID, flashed[0].ID)

	hard, err := tables.Problems.ListWhere(ctx, "french_grade", "7a")
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, c.ID, hard[0].ID)

	_, err = tables.Problems.ListWhere(ctx, "notes", "x")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProblemRepo_DeleteWhere(t *testing.T) {
	tables, sess := problemTestSetup(t)
	ctx := context.Background()

	require.NoError(t, tables.Problems.Put(ctx, testutil.NewTestProblem(sess.ID, "A")))
	require.NoError(t, tables.Problems.Put(ctx, testutil.NewTestProblem(sess.ID, "B")))

	n, err := tables.Problems.DeleteWhere(ctx, "session_id", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := tables.Problems.ListWhere(ctx, "session_id", sess.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
