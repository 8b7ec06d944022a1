package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"weatherbot/internal/domain"
)

// handleText routes a plain message to the user's pending dialog
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	if strings.HasPrefix(text, "/") {
		return nil
	}

	switch h.GetState(userID).State {
	case domain.StateAwaitingCity:
		return h.handleCityInput(c, userID, text)
	case domain.StateAwaitingWeatherCity:
		return h.handleWeatherCityInput(c, userID, text)
	case domain.StateAwaitingTime:
		return h.handleTimeInput(c, userID, text)
	default:
		return nil
	}
}

// handleCityInput finishes the /setcity dialog
func (h *Handler) handleCityInput(c tele.Context, userID int64, city string) error {
	if city == "" {
		return c.Send(invalidCityText)
	}
	return h.applyCity(c, userID, city)
}

// handleWeatherCityInput finishes the /weather dialog
func (h *Handler) handleWeatherCityInput(c tele.Context, userID int64, city string) error {
	if city == "" {
		return c.Send(invalidCityText)
	}

	h.ResetState(userID)
	return c.Send(h.users.Forecast(city))
}

// handleTimeInput finishes the /settime dialog. An invalid time keeps the
// dialog open and does not consume a daily change; hitting the limit ends
// the dialog.
func (h *Handler) handleTimeInput(c tele.Context, userID int64, hhmm string) error {
	if _, _, err := domain.ParseClock(hhmm); err != nil {
		return c.Send(invalidTimeText)
	}

	err := h.limiter.Consume(userID, time.Now(), func() error {
		return h.users.SetTime(userID, hhmm)
	})
	if err != nil {
		if errors.Is(err, domain.ErrLimitExceeded) {
			h.ResetState(userID)
			return c.Send(limitText)
		}
		h.logger.Error("Failed to set time",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return c.Send(genericErrorText)
	}

	h.ResetState(userID)

	if err := h.scheduler.Arm(userID, hhmm); err != nil {
		h.logger.Error("Failed to schedule notification",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	return c.Send(fmt.Sprintf("Your daily weather update time has been set to %s.", hhmm))
}
