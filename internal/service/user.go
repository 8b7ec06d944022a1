package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"weatherbot/internal/domain"
	"weatherbot/internal/repository"
	"weatherbot/internal/weather"
)

// ForecastFetcher produces a formatted 24-hour forecast for a city
type ForecastFetcher interface {
	Forecast24h(ctx context.Context, city string) (string, error)
}

// UserService manages user profiles and their forecast lookups
type UserService struct {
	userRepo  repository.UserRepository
	forecasts ForecastFetcher
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, forecasts ForecastFetcher, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		forecasts: forecasts,
		logger:    logger,
	}
}

// EnsureUser registers the user if they are not known yet
func (s *UserService) EnsureUser(userID int64) error {
	if err := s.userRepo.EnsureUser(userID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// SetCity stores the user's city and returns the forecast for it. The city
// is persisted even when the forecast lookup fails, so the daily schedule
// picks it up once the gateway recovers.
func (s *UserService) SetCity(userID int64, city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", fmt.Errorf("city must not be empty")
	}

	if err := s.userRepo.SetCity(userID, city); err != nil {
		return "", fmt.Errorf("save city: %w", err)
	}

	return s.Forecast(city), nil
}

// Forecast fetches the 24-hour forecast for a city, mapping every gateway
// failure to the fixed not-found reply
func (s *UserService) Forecast(city string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	text, err := s.forecasts.Forecast24h(ctx, city)
	if err != nil {
		if !errors.Is(err, domain.ErrCityNotFound) {
			s.logger.Error("Forecast lookup failed",
				zap.String("city", city),
				zap.Error(err))
		}
		return weather.CityNotFoundMessage
	}
	return text
}

// SetTime validates and stores the user's daily notification time. The
// persisted value is re-rendered from the parsed components, so stray
// whitespace never reaches the store.
func (s *UserService) SetTime(userID int64, hhmm string) error {
	hour, minute, err := domain.ParseClock(hhmm)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetTime(userID, domain.FormatClock(hour, minute)); err != nil {
		return fmt.Errorf("save time: %w", err)
	}
	return nil
}

// City returns the user's stored city, empty if none is set
func (s *UserService) City(userID int64) (string, error) {
	return s.userRepo.City(userID)
}

// TriggerTime returns the user's daily notification time
func (s *UserService) TriggerTime(userID int64) (string, error) {
	return s.userRepo.TriggerTime(userID)
}

// SchedulableUsers lists all users with a city set
func (s *UserService) SchedulableUsers() ([]domain.ScheduledUser, error) {
	return s.userRepo.SchedulableUsers()
}

// SchedulableTimes lists the notification times of all users with a city set
func (s *UserService) SchedulableTimes() ([]domain.UserTime, error) {
	return s.userRepo.SchedulableTimes()
}
