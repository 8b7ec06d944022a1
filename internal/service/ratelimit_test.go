package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherbot/internal/domain"
	"weatherbot/internal/testutil"
)

// fakeChangeRepo counts changes in memory so concurrent calls see each
// other's records, which mock-based expectations cannot express.
type fakeChangeRepo struct {
	mu      sync.Mutex
	changes map[int64]int
}

func newFakeChangeRepo() *fakeChangeRepo {
	return &fakeChangeRepo{changes: make(map[int64]int)}
}

func (f *fakeChangeRepo) CountChangesOn(userID int64, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.changes[userID], nil
}

func (f *fakeChangeRepo) RecordChange(userID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes[userID]++
	return nil
}

func applyNothing() error { return nil }

func TestRateLimitService_Consume(t *testing.T) {
	repo := newFakeChangeRepo()
	svc := NewRateLimitService(repo, testutil.NewTestLogger())
	now := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Consume(123, now, applyNothing))
	}

	err := svc.Consume(123, now, applyNothing)

	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
	assert.Equal(t, 3, repo.changes[123])
}

func TestRateLimitService_IndependentUsers(t *testing.T) {
	repo := newFakeChangeRepo()
	svc := NewRateLimitService(repo, testutil.NewTestLogger())
	now := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Consume(1, now, applyNothing))
	}
	require.ErrorIs(t, svc.Consume(1, now, applyNothing), domain.ErrLimitExceeded)

	assert.NoError(t, svc.Consume(2, now, applyNothing))
}

func TestRateLimitService_LimitSkipsApply(t *testing.T) {
	repo := newFakeChangeRepo()
	svc := NewRateLimitService(repo, testutil.NewTestLogger())
	now := time.Now()

	repo.changes[123] = 3

	applied := false
	err := svc.Consume(123, now, func() error {
		applied = true
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
	assert.False(t, applied)
	assert.Equal(t, 3, repo.changes[123])
}

func TestRateLimitService_ApplyFailureBurnsNoChange(t *testing.T) {
	repo := newFakeChangeRepo()
	svc := NewRateLimitService(repo, testutil.NewTestLogger())
	now := time.Now()

	err := svc.Consume(123, now, func() error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, repo.changes[123])

	// the failed attempt left the budget untouched
	assert.NoError(t, svc.Consume(123, now, applyNothing))
}

func TestRateLimitService_ConcurrentCallsRespectLimit(t *testing.T) {
	repo := newFakeChangeRepo()
	svc := NewRateLimitService(repo, testutil.NewTestLogger())
	now := time.Now()

	repo.changes[123] = 2

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Consume(123, now, applyNothing)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, limited int
	for err := range results {
		if err == nil {
			succeeded++
		} else if assert.ErrorIs(t, err, domain.ErrLimitExceeded) {
			limited++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, limited)
	assert.Equal(t, 3, repo.changes[123])
}

func TestRateLimitService_CountError(t *testing.T) {
	repo := new(testutil.MockTimeChangeRepository)
	svc := NewRateLimitService(repo, testutil.NewTestLogger())
	now := time.Now()

	repo.On("CountChangesOn", int64(123), now).Return(0, assert.AnError)

	applied := false
	err := svc.Consume(123, now, func() error {
		applied = true
		return nil
	})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLimitExceeded)
	assert.False(t, applied)
	repo.AssertNotCalled(t, "RecordChange", int64(123), now)
}
