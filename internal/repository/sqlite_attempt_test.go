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

func TestAttemptRepo_PutAndGetByID(t *testing.T) {
	tables, sess := problemTestSetup(t)
	ctx := context.Background()

	p := testutil.NewTestProblem(sess.ID, "Crimpy")
	require.NoError(t, tables.Problems.Put(ctx, p))

	a := testutil.NewTestAttempt(p, domain.AttemptTypeSend, testutil.WithAttemptNotes("finally"))
	require.NoError(t, tables.Attempts.Put(ctx, a))

	got, err := tables.Attempts.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AttemptTypeSend, got.Type)
	assert.Equal(t, "finally", got.Notes)
	assert.Equal(t, p.ID, got.ProblemID)
	assert.Equal(t, sess.ID, got.SessionID)
	assert.True(t, a.Timestamp.Equal(got.Timestamp))

	_, err = tables.Attempts.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttemptRepo_ListWhere_OrderedByTimestamp(t *testing.T) {
	tables, sess := problemTestSetup(t)
	ctx := context.Background()

	p := testutil.NewTestProblem(sess.ID, "Crimpy")
	require.NoError(t, tables.Problems.Put(ctx, p))

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	late := testutil.NewTestAttempt(p, domain.AttemptTypeSend, testutil.WithTimestamp(base.Add(2*time.Minute)))
	early := testutil.NewTestAttempt(p, domain.AttemptTypeAttempt, testutil.WithTimestamp(base))
	tieA := testutil.NewTestAttempt(p, domain.AttemptTypeAttempt, testutil.WithTimestamp(base.Add(time.Minute)))
	tieB := testutil.NewTestAttempt(p, domain.AttemptTypeAttempt, testutil.WithTimestamp(base.Add(time.Minute)))
	for _, a := range []*domain.Attempt{late, early, tieA, tieB} {
		require.NoError(t, tables.Attempts.Put(ctx, a))
	}

	list, err := tables.Attempts.ListWhere(ctx, "problem_id", p.ID)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, tieA.ID, list[1].ID)
	assert.Equal(t, tieB.ID, list[2].ID)
	assert.Equal(t, late.ID, list[3].ID)

	sends, err := tables.Attempts.ListWhere(ctx, "type", domain.AttemptTypeSend)
	require.NoError(t, err)
	require.Len(t, sends, 1)
	assert.Equal(t, late.ID, sends[0].ID)
}

func TestAttemptRepo_InvalidTypeRejected(t *testing.T) {
	tables, sess := problemTestSetup(t)
	ctx := context.Background()

	p := testutil.NewTestProblem(sess.ID, "Crimpy")
	require.NoError(t, tables.Problems.Put(ctx, p))

	err := tables.Attempts.Put(ctx, testutil.NewTestAttempt(p, domain.AttemptType("onsight")))
	assert.Error(t, err)
}
