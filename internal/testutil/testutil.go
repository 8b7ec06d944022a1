package testutil

import (
	"go.uber.org/zap"

	"weatherbot/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewScheduledUser creates a test scheduled user
func NewScheduledUser(userID int64, city string) domain.ScheduledUser {
	return domain.ScheduledUser{
		UserID: userID,
		City:   city,
	}
}
