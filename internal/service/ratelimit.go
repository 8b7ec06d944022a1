package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"weatherbot/internal/domain"
	"weatherbot/internal/repository"
)

const maxDailyTimeChanges = 3

// RateLimitService bounds how often a user may change their notification time
type RateLimitService struct {
	changeRepo repository.TimeChangeRepository
	logger     *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(changeRepo repository.TimeChangeRepository, logger *zap.Logger) *RateLimitService {
	return &RateLimitService{
		changeRepo: changeRepo,
		logger:     logger,
		locks:      make(map[int64]*sync.Mutex),
	}
}

// userLock returns the per-user mutex, creating it on first use
func (s *RateLimitService) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Consume spends one of the user's daily time changes around apply. It
// returns domain.ErrLimitExceeded without calling apply once the user has
// already made the maximum number of changes on the given day, and records
// the change only after apply succeeds, so a failed persist never burns a
// change. Check, apply and record run under a per-user lock, so concurrent
// calls cannot push the user past the limit.
func (s *RateLimitService) Consume(userID int64, now time.Time, apply func() error) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.changeRepo.CountChangesOn(userID, now)
	if err != nil {
		return fmt.Errorf("count time changes: %w", err)
	}

	if count >= maxDailyTimeChanges {
		s.logger.Info("Time change limit reached",
			zap.Int64("user_id", userID),
			zap.Int("count", count))
		return domain.ErrLimitExceeded
	}

	if err := apply(); err != nil {
		return err
	}

	if err := s.changeRepo.RecordChange(userID, now); err != nil {
		return fmt.Errorf("record time change: %w", err)
	}
	return nil
}
