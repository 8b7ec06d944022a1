package repository

import (
	"time"

	"weatherbot/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUser(userID int64) error
	SetCity(userID int64, city string) error
	SetTime(userID int64, hhmm string) error
	City(userID int64) (string, error)
	TriggerTime(userID int64) (string, error)
	SchedulableUsers() ([]domain.ScheduledUser, error)
	SchedulableTimes() ([]domain.UserTime, error)
}

// TimeChangeRepository defines operations over the append-only time-change log
type TimeChangeRepository interface {
	CountChangesOn(userID int64, day time.Time) (int, error)
	RecordChange(userID int64, at time.Time) error
}
