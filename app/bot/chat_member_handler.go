package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatMemberHandler forgets chats the bot was removed from
type ChatMemberHandler struct {
	d *Dispatcher
	neverPassthorugh
}

// Match returns true if bot left or was blocked in a chat
func (h ChatMemberHandler) Match(u tgbotapi.Update) bool {
	if u.MyChatMember == nil {
		return false
	}
	member := u.MyChatMember.NewChatMember
	return member.HasLeft() || member.WasKicked()
}

func (h ChatMemberHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	h.d.Cleanup(u.MyChatMember.Chat.ID)
}

// NewChatMemberHandler creates new chat member handler
func NewChatMemberHandler(d *Dispatcher) ChatMemberHandler {
	return ChatMemberHandler{d: d}
}
