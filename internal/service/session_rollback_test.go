package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/repository"
	"github.com/boulderlog/boulderlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AddAttempt writes three rows: attempt (#1), problem (#2), session (#3).
func TestAddAttempt_RollbackOnEachWrite(t *testing.T) {
	for failOn := int32(1); failOn <= 3; failOn++ {
		t.Run(fmt.Sprintf("exec %d", failOn), func(t *testing.T) {
			database := testutil.NewTestDB(t)
			ctx := context.Background()

			seeded := NewSessionService(repository.NewStore(database), nil)
			sess, err := seeded.StartSession(ctx, domain.DefaultPreSessionData())
			require.NoError(t, err)
			p, err := seeded.AddProblem(ctx, sess.ID, "Crimpy", "6a", "")
			require.NoError(t, err)

			injected := errors.New("injected write failure")
			failing := NewSessionService(repository.NewStore(database, repository.WithUnitOfWork(
				&testutil.FailOnNthExecUoW{DB: database, FailOn: failOn, Err: injected},
			)), nil)

			_, err = failing.AddAttempt(ctx, sess.ID, p.ID, domain.AttemptTypeFlash, "")
			require.ErrorIs(t, err, injected)

			hydrated, err := seeded.Get(ctx, sess.ID)
			require.NoError(t, err)
			require.Len(t, hydrated.Problems, 1)
			assert.Empty(t, hydrated.Problems[0].Attempts, "attempt row must be rolled back")
			assert.False(t, hydrated.Problems[0].Flash)

			drift, err := seeded.CheckSnapshot(ctx, sess.ID)
			require.NoError(t, err)
			assert.Empty(t, drift)
		})
	}
}

// AddProblem writes the problem (#1) and then the session (#2).
func TestAddProblem_RollbackOnSessionWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	seeded := NewSessionService(repository.NewStore(database), nil)
	sess, err := seeded.StartSession(ctx, domain.DefaultPreSessionData())
	require.NoError(t, err)

	injected := errors.New("injected session write failure")
	failing := NewSessionService(repository.NewStore(database, repository.WithUnitOfWork(
		&testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected},
	)), nil)

	_, err = failing.AddProblem(ctx, sess.ID, "Crimpy", "6a", "")
	require.ErrorIs(t, err, injected)

	hydrated, err := seeded.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, hydrated.Problems)
}
