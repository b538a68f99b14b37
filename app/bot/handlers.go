package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackIDPanel = "pn"
)

// Bot describes bot for handlers
type Bot interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// neverPassthorugh implements Passthrough with always false
type neverPassthorugh struct{}

// Passthrough always returns false
func (h neverPassthorugh) Passthrough(u tgbotapi.Update) bool {
	return false
}
