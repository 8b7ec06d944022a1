package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if err := h.users.EnsureUser(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(genericErrorText)
	}

	h.ResetState(userID)
	return c.Send(welcomeText)
}

// handleHelp handles /help command. It leaves any in-progress dialog
// untouched.
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send(helpText)
}
