package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"weatherbot/internal/domain"
)

// handleSetCity handles /setcity and /changecity commands. A city given
// right after the command is applied immediately, otherwise the user is
// asked for one.
func (h *Handler) handleSetCity(c tele.Context) error {
	userID := c.Sender().ID

	if city := strings.TrimSpace(c.Message().Payload); city != "" {
		return h.applyCity(c, userID, city)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateAwaitingCity})
	return c.Send(askCityText)
}

// handleWeather handles /weather command
func (h *Handler) handleWeather(c tele.Context) error {
	userID := c.Sender().ID

	if city := strings.TrimSpace(c.Message().Payload); city != "" {
		h.ResetState(userID)
		return c.Send(h.users.Forecast(city))
	}

	h.SetState(userID, &domain.StateData{State: domain.StateAwaitingWeatherCity})
	return c.Send(askWeatherCityText)
}

// handleSetTime handles /settime command
func (h *Handler) handleSetTime(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateAwaitingTime})
	return c.Send(askTimeText)
}

// applyCity saves the city, replies with the forecast and reschedules the
// user's daily notification
func (h *Handler) applyCity(c tele.Context, userID int64, city string) error {
	forecast, err := h.users.SetCity(userID, city)
	if err != nil {
		h.logger.Error("Failed to set city",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return c.Send(genericErrorText)
	}

	h.ResetState(userID)
	h.armUser(userID)

	return c.Send(fmt.Sprintf("Your city has been set to %s.\n%s", city, forecast))
}

// armUser schedules the user's daily notification at their stored time
func (h *Handler) armUser(userID int64) {
	hhmm, err := h.users.TriggerTime(userID)
	if err != nil {
		h.logger.Error("Failed to read trigger time",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return
	}
	if err := h.scheduler.Arm(userID, hhmm); err != nil {
		h.logger.Error("Failed to schedule notification",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}
