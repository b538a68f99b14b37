package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// PanelHandler handles panel keyboard callbacks
type PanelHandler struct {
	d *Dispatcher
	neverPassthorugh
}

// Match returns true if update is panel callback
func (h PanelHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil && strings.HasPrefix(u.CallbackQuery.Data, callbackIDPanel+"|")
}

// Handle applies panel action
func (h PanelHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	query := u.CallbackQuery
	panelID, action, idx, err := h.parseQuery(query.Data)
	if err != nil {
		log.Error().Err(err).Str("query", query.Data).Msg("failed to parse callback query")
		_, _ = b.Request(tgbotapi.NewCallback(query.ID, "Unknown action"))
		return
	}
	var r *Renderer
	if query.Message != nil && query.Message.Chat != nil {
		r = h.d.Renderer(query.Message.Chat.ID)
	}
	if r == nil {
		_, _ = b.Request(tgbotapi.NewCallback(query.ID, "This panel is closed"))
		return
	}
	switch action {
	case panelActionMeaning:
		err = r.SelectMeaning(panelID, idx)
	case panelActionAudio:
		err = r.PlayAudio(panelID)
	case panelActionClose:
		err = r.Dismiss(panelID)
	}
	var text string
	switch {
	case err == nil:
	case errors.Is(err, ErrPanelClosed):
		text = "This panel is closed"
	case errors.Is(err, ErrNoAudio):
		text = "No pronunciation available"
	default:
		log.Error().Err(err).Str("panel", panelID).Str("action", action).Msg("failed to apply panel action")
		text = "Error happened"
	}
	_, _ = b.Request(tgbotapi.NewCallback(query.ID, text))
}

func (h PanelHandler) parseQuery(data string) (panelID string, action string, idx int, err error) {
	parts := strings.Split(data, "|")
	if len(parts) < 3 || parts[1] == "" {
		return "", "", 0, errors.New("invalid callback query data")
	}
	panelID, action = parts[1], parts[2]
	switch action {
	case panelActionMeaning:
		if len(parts) != 4 {
			return "", "", 0, errors.New("missing meaning index")
		}
		idx, err = strconv.Atoi(parts[3])
		if err != nil {
			return "", "", 0, fmt.Errorf("parsing meaning index: %w", err)
		}
	case panelActionAudio, panelActionClose:
		if len(parts) != 3 {
			return "", "", 0, errors.New("invalid callback query data")
		}
	default:
		return "", "", 0, fmt.Errorf("unknown panel action %q", action)
	}
	return panelID, action, idx, nil
}

// NewPanelHandler creates new panel handler
func NewPanelHandler(d *Dispatcher) PanelHandler {
	return PanelHandler{d: d}
}
