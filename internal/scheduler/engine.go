package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weatherbot/internal/domain"
	"weatherbot/internal/weather"
)

// Sink delivers a notification text to a user
type Sink interface {
	Send(userID int64, text string) error
}

// Gateway produces a formatted 24-hour forecast for a city
type Gateway interface {
	Forecast24h(ctx context.Context, city string) (string, error)
}

// ScheduleStore exposes the user data the engine needs: the current city of
// a single user and the notification times of every schedulable user.
type ScheduleStore interface {
	City(userID int64) (string, error)
	SchedulableTimes() ([]domain.UserTime, error)
}

// sweepInterval is how often the reconcile sweep re-reads the store
const sweepInterval = 60 * time.Second

// entry is one armed daily notification
type entry struct {
	timer *time.Timer
	hhmm  string
	at    time.Time
	gen   uint64
}

// Engine keeps one timer per user, firing daily at the user's chosen time.
// Arming a user replaces any previous timer, so a user never has two
// pending notifications.
type Engine struct {
	store   ScheduleStore
	gateway Gateway
	sink    Sink
	logger  *zap.Logger
	cron    *cron.Cron
	now     func() time.Time

	mu      sync.Mutex
	entries map[int64]*entry
	gen     uint64
}

// NewEngine creates a schedule engine
func NewEngine(store ScheduleStore, gateway Gateway, sink Sink, logger *zap.Logger) *Engine {
	return &Engine{
		store:   store,
		gateway: gateway,
		sink:    sink,
		logger:  logger,
		cron:    cron.New(),
		now:     time.Now,
		entries: make(map[int64]*entry),
	}
}

// Arm schedules the user's next notification at the given HH:MM, replacing
// any timer that is already pending for them
func (e *Engine) Arm(userID int64, hhmm string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.armLocked(userID, hhmm)
}

func (e *Engine) armLocked(userID int64, hhmm string) error {
	at, err := domain.NextDailyFire(e.now(), hhmm)
	if err != nil {
		return fmt.Errorf("schedule user %d: %w", userID, err)
	}

	if prev, ok := e.entries[userID]; ok {
		prev.timer.Stop()
	}

	e.gen++
	gen := e.gen
	delay := at.Sub(e.now())
	ent := &entry{hhmm: hhmm, at: at, gen: gen}
	ent.timer = time.AfterFunc(delay, func() {
		e.fire(userID, hhmm, gen)
	})
	e.entries[userID] = ent

	e.logger.Debug("Armed daily notification",
		zap.Int64("user_id", userID),
		zap.String("time", hhmm),
		zap.Time("at", at))
	return nil
}

// fire delivers one notification and re-arms the user for the next day.
// A fire whose generation no longer matches the entry was superseded by a
// later Arm and does nothing.
func (e *Engine) fire(userID int64, hhmm string, gen uint64) {
	e.mu.Lock()
	ent, ok := e.entries[userID]
	if !ok || ent.gen != gen {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.deliver(userID)

	e.mu.Lock()
	defer e.mu.Unlock()
	ent, ok = e.entries[userID]
	if !ok || ent.gen != gen {
		// replaced while delivering, the newer timer owns the slot
		return
	}
	if err := e.armLocked(userID, hhmm); err != nil {
		e.logger.Error("Failed to rearm notification",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

// deliver reads the user's current city and sends the forecast for it
func (e *Engine) deliver(userID int64) {
	city, err := e.store.City(userID)
	if err != nil {
		e.logger.Error("Failed to read city for notification",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return
	}
	if city == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	text, err := e.gateway.Forecast24h(ctx, city)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			text = weather.CityNotFoundMessage
		} else {
			e.logger.Error("Forecast fetch failed for notification",
				zap.Int64("user_id", userID),
				zap.String("city", city),
				zap.Error(err))
			return
		}
	}

	if err := e.sink.Send(userID, text); err != nil {
		e.logger.Error("Failed to deliver notification",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

// StartupReconcile arms every schedulable user that has no pending timer.
// Called once at boot to restore schedules after a restart.
func (e *Engine) StartupReconcile() error {
	return e.reconcile()
}

// reconcile reads the store and arms users missing from the timer map.
// Users that are already armed keep their current timer, so the sweep never
// disturbs a schedule set through Arm.
func (e *Engine) reconcile() error {
	times, err := e.store.SchedulableTimes()
	if err != nil {
		return fmt.Errorf("load schedulable users: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ut := range times {
		if _, armed := e.entries[ut.UserID]; armed {
			continue
		}
		if err := e.armLocked(ut.UserID, ut.TriggerTime); err != nil {
			e.logger.Warn("Skipping user with invalid stored time",
				zap.Int64("user_id", ut.UserID),
				zap.String("time", ut.TriggerTime),
				zap.Error(err))
		}
	}
	return nil
}

// Start launches the periodic reconcile sweep
func (e *Engine) Start() error {
	_, err := e.cron.AddFunc(fmt.Sprintf("@every %ds", int(sweepInterval.Seconds())), func() {
		if err := e.reconcile(); err != nil {
			e.logger.Error("Reconcile sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("start reconcile sweep: %w", err)
	}
	e.cron.Start()
	return nil
}

// Stop halts the sweep and cancels all pending timers
func (e *Engine) Stop() {
	e.cron.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()
	for userID, ent := range e.entries {
		ent.timer.Stop()
		delete(e.entries, userID)
	}
}
