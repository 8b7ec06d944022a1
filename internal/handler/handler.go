package handler

import (
	"sync"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"weatherbot/internal/domain"
	"weatherbot/internal/service"
)

// Scheduler arms a user's daily notification timer
type Scheduler interface {
	Arm(userID int64, hhmm string) error
}

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	users     *service.UserService
	limiter   *service.RateLimitService
	scheduler Scheduler
	logger    *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	users *service.UserService,
	limiter *service.RateLimitService,
	scheduler Scheduler,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		users:     users,
		limiter:   limiter,
		scheduler: scheduler,
		logger:    logger,
		states:    make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/setcity", h.handleSetCity)
	h.bot.Handle("/changecity", h.handleSetCity)
	h.bot.Handle("/weather", h.handleWeather)
	h.bot.Handle("/settime", h.handleSetTime)

	// Text messages drive the pending dialog, if any
	h.bot.Handle(tele.OnText, h.handleText)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}
