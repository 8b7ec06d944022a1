package handler

import (
	tele "gopkg.in/telebot.v3"
)

// Sender delivers scheduled notifications through the bot
type Sender struct {
	bot *tele.Bot
}

// NewSender wraps the bot for use as a notification sink
func NewSender(bot *tele.Bot) *Sender {
	return &Sender{bot: bot}
}

// Send delivers a text message to the user
func (s *Sender) Send(userID int64, text string) error {
	_, err := s.bot.Send(&tele.User{ID: userID}, text)
	return err
}
