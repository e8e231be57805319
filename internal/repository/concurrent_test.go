package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transactions from many goroutines serialize on the single connection; every
// write lands and readers never see a half-written problem.
func TestConcurrentAccess_WritersAndReaders(t *testing.T) {
	store := NewStore(testutil.NewFileTestDB(t))
	ctx := context.Background()

	sess := testutil.NewTestSession()
	require.NoError(t, store.Tables().Sessions.Put(ctx, sess))

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := testutil.NewTestProblem(sess.ID, "Boulder")
			err := store.WithinTx(ctx, func(ctx context.Context, tables *Tables) error {
				if err := tables.Problems.Put(ctx, p); err != nil {
					return err
				}
				return tables.Attempts.Put(ctx, testutil.NewTestAttempt(p, domain.AttemptTypeFlash))
			})
			if err != nil {
				t.Errorf("writer: %v", err)
			}
		}()
	}

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				got, err := store.Hydrate(ctx, sess.ID)
				if err != nil {
					t.Errorf("reader %d: hydrate: %v", reader, err)
					return
				}
				for _, p := range got.Problems {
					if len(p.Attempts) != 1 {
						t.Errorf("reader %d: problem %s has %d attempts", reader, p.ID, len(p.Attempts))
					}
				}
			}
		}(r)
	}

	wg.Wait()

	got, err := store.Hydrate(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Problems, writers)
}
