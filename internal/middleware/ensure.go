package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"weatherbot/internal/service"
)

// EnsureUser creates middleware that registers the sender before any handler
// runs, so every update comes from a known user
func EnsureUser(users *service.UserService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if err := users.EnsureUser(sender.ID); err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Int64("user_id", sender.ID),
					zap.Error(err))
			}

			return next(c)
		}
	}
}
