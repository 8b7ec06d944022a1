package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"weatherbot/internal/domain"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetCity(userID int64, city string) error {
	args := m.Called(userID, city)
	return args.Error(0)
}

func (m *MockUserRepository) SetTime(userID int64, hhmm string) error {
	args := m.Called(userID, hhmm)
	return args.Error(0)
}

func (m *MockUserRepository) City(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) TriggerTime(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) SchedulableUsers() ([]domain.ScheduledUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledUser), args.Error(1)
}

func (m *MockUserRepository) SchedulableTimes() ([]domain.UserTime, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserTime), args.Error(1)
}

// MockTimeChangeRepository is a mock implementation of repository.TimeChangeRepository
type MockTimeChangeRepository struct {
	mock.Mock
}

func (m *MockTimeChangeRepository) CountChangesOn(userID int64, day time.Time) (int, error) {
	args := m.Called(userID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockTimeChangeRepository) RecordChange(userID int64, at time.Time) error {
	args := m.Called(userID, at)
	return args.Error(0)
}

// MockForecastFetcher is a mock implementation of service.ForecastFetcher
type MockForecastFetcher struct {
	mock.Mock
}

func (m *MockForecastFetcher) Forecast24h(ctx context.Context, city string) (string, error) {
	args := m.Called(ctx, city)
	return args.String(0), args.Error(1)
}
