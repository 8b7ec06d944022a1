package domain

// DefaultTriggerTime is the daily delivery time assigned to new users.
const DefaultTriggerTime = "08:00"

// ScheduledUser pairs a user with the city used for deliveries
type ScheduledUser struct {
	UserID int64
	City   string
}

// UserTime pairs a user with the persisted trigger time
type UserTime struct {
	UserID      int64
	TriggerTime string
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle                UserState = "idle"
	StateAwaitingCity        UserState = "awaiting_city"
	StateAwaitingWeatherCity UserState = "awaiting_weather_city"
	StateAwaitingTime        UserState = "awaiting_time"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
}
