package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
	"github.com/boulderlog/boulderlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeDeleteSession_RemovesEverything(t *testing.T) {
	store := NewStore(testutil.NewTestDB(t))
	ctx := context.Background()
	sess, p, attempts := seedSession(t, store)
	other, otherProblem, _ := seedSession(t, store)

	sub := store.Subscribe(ctx, live.Attempts)
	require.NoError(t, store.CascadeDeleteSession(ctx, sess.ID))
	assert.True(t, signalled(sub))

	tables := store.Tables()
	_, err := tables.Sessions.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = tables.Problems.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, a := range attempts {
		_, err = tables.Attempts.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}

	left, err := tables.Attempts.ListWhere(ctx, "session_id", sess.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	// The other session is untouched.
	kept, err := store.Hydrate(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, kept.Problems, 1)
	assert.Equal(t, otherProblem.ID, kept.Problems[0].ID)
	assert.Len(t, kept.Problems[0].Attempts, 2)
}

func TestCascadeDeleteSession_NotFound(t *testing.T) {
	store := NewStore(testutil.NewTestDB(t))

	err := store.CascadeDeleteSession(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCascadeDeleteSession_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seeded := NewStore(database)
	sess, p, _ := seedSession(t, seeded)
	ctx := context.Background()

	boom := errors.New("disk full")
	// Exec 1 deletes attempts, exec 2 deletes problems.
	store := NewStore(database, WithUnitOfWork(&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}))

	err := store.CascadeDeleteSession(ctx, sess.ID)
	require.ErrorIs(t, err, boom)

	got, err := seeded.Hydrate(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Problems, 1)
	assert.Equal(t, p.ID, got.Problems[0].ID)
	assert.Len(t, got.Problems[0].Attempts, 2, "attempt deletion must be rolled back")
}
