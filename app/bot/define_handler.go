package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefineHandler handles words sent as text, with /define command or /define reply
type DefineHandler struct {
	d *Dispatcher
	neverPassthorugh
}

// Match returns true if message is a text or /define command
func (h DefineHandler) Match(u tgbotapi.Update) bool {
	if u.Message == nil {
		return false
	}
	if u.Message.IsCommand() {
		return u.Message.Command() == defineCommand
	}
	return u.Message.Text != ""
}

// Handle passes selected text to Dispatcher
func (h DefineHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	if h.d.HandleSelection(b, selectedText(u.Message), u.Message.Chat.ID) {
		return
	}
	if u.Message.IsCommand() {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Send /define with a word or reply it to a message"))
	}
}

// selectedText returns command arguments, replied message text or message text
func selectedText(m *tgbotapi.Message) string {
	if !m.IsCommand() {
		return m.Text
	}
	if args := m.CommandArguments(); args != "" {
		return args
	}
	if m.ReplyToMessage != nil {
		if m.ReplyToMessage.Text != "" {
			return m.ReplyToMessage.Text
		}
		return m.ReplyToMessage.Caption
	}
	return ""
}

// NewDefineHandler creates new define handler
func NewDefineHandler(d *Dispatcher) DefineHandler {
	return DefineHandler{d: d}
}
