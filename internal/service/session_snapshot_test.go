package service

import (
	"context"
	"testing"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndRepairSnapshot(t *testing.T) {
	svc, store, _ := newTestSessionService(t)
	ctx := context.Background()

	sess, err := svc.StartSession(ctx, domain.DefaultPreSessionData())
	require.NoError(t, err)
	p, err := svc.AddProblem(ctx, sess.ID, "Crimpy", "6a", "")
	require.NoError(t, err)
	_, err = svc.AddAttempt(ctx, sess.ID, p.ID, domain.AttemptTypeAttempt, "")
	require.NoError(t, err)

	drift, err := svc.CheckSnapshot(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, drift)

	// Corrupt the cache: stale flags and a ghost entry.
	stored, err := store.Tables().Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	stored.Problems[0].Send = true
	stored.Problems = append(stored.Problems, domain.SessionProblem{ID: "ghost", Name: "Ghost"})
	require.NoError(t, store.Tables().Sessions.Put(ctx, stored))

	drift, err = svc.CheckSnapshot(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, drift, 2)
	assert.Equal(t, p.ID, drift[0].ProblemID)
	assert.Equal(t, "flags differ", drift[0].Reason)
	assert.Equal(t, "ghost: no problem row", drift[1].String())

	repaired, err := svc.RepairSnapshot(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, repaired.Problems, 1)
	assert.False(t, repaired.Problems[0].Send)

	drift, err = svc.CheckSnapshot(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, drift)
}

func TestCheckSnapshot_UnknownSession(t *testing.T) {
	svc, _, _ := newTestSessionService(t)

	_, err := svc.CheckSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
