package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rbhz/tg-define/app/clients/dictionaryapi"
	"github.com/rbhz/tg-define/app/db"
	"github.com/rbhz/tg-define/app/panel"
	"github.com/rs/zerolog/log"
)

// ActionDefine is the only action understood by Renderer
const ActionDefine = "define"

const defaultLookupTimeout = 10 * time.Second

var (
	// ErrPanelClosed is returned for actions on a panel that is no longer shown
	ErrPanelClosed = errors.New("panel is closed")
	// ErrNoAudio is returned when panel has no pronunciation
	ErrNoAudio = errors.New("no audio")
)

// DefineMessage is delivered by Dispatcher to chat Renderer
type DefineMessage struct {
	Action string
	Word   string
}

// LookupClient fetches dictionary entry for a word
type LookupClient interface {
	Lookup(ctx context.Context, word string) (*dictionaryapi.WordResponse, error)
}

type mountedPanel struct {
	id        string
	messageID int
	panel     panel.Panel
}

// Renderer shows definition panels in a single chat.
// At most one panel exists at a time: rendering removes the previous one.
type Renderer struct {
	chatID  int64
	bot     Bot
	lookup  LookupClient
	timeout time.Duration
	// id of the last started lookup
	requests atomic.Int64

	mx      sync.Mutex
	current *mountedPanel
}

// OnWordReceived looks the word up and renders result.
// Responses of lookups superseded by a newer one are dropped.
func (r *Renderer) OnWordReceived(ctx context.Context, msg DefineMessage) {
	if !r.accepts(msg) {
		return
	}
	r.define(ctx, r.begin(), msg.Word)
}

func (r *Renderer) accepts(msg DefineMessage) bool {
	if msg.Action != ActionDefine {
		log.Warn().Str("action", msg.Action).Int64("chat", r.chatID).Msg("unknown renderer action")
		return false
	}
	return true
}

// begin assigns id to a new lookup, it must be called in selection order
func (r *Renderer) begin() int64 {
	return r.requests.Add(1)
}

func (r *Renderer) define(ctx context.Context, requestID int64, word string) {
	entry := r.lookupWord(ctx, word)

	r.mx.Lock()
	defer r.mx.Unlock()
	if requestID != r.requests.Load() {
		staleResponsesTotal.Inc()
		log.Debug().
			Str("word", word).
			Int64("chat", r.chatID).
			Int64("request", requestID).
			Msg("dropping stale lookup response")
		return
	}
	if err := r.render(word, entry); err != nil {
		log.Error().Err(err).Str("word", word).Int64("chat", r.chatID).Msg("failed to render panel")
	}
}

// lookupWord returns nil entry for any failure
func (r *Renderer) lookupWord(ctx context.Context, word string) *dictionaryapi.WordResponse {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	entry, err := r.lookup.Lookup(ctx, word)
	switch {
	case err == nil:
		lookupsTotal.WithLabelValues(lookupResultFound).Inc()
		return entry
	case errors.Is(err, dictionaryapi.ErrNotFound):
		lookupsTotal.WithLabelValues(lookupResultNotFound).Inc()
	default:
		lookupsTotal.WithLabelValues(lookupResultError).Inc()
		log.Error().Err(err).Str("word", word).Msg("failed to fetch definition")
	}
	return nil
}

// Render replaces current panel with a new one for the word
func (r *Renderer) Render(word string, entry *dictionaryapi.WordResponse) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.render(word, entry)
}

func (r *Renderer) render(word string, entry *dictionaryapi.WordResponse) error {
	mounted := mountedPanel{id: db.GenerateID(), panel: panel.Render(word, entry)}
	text, err := GetPanelText(mounted.panel)
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = getPanelKeyboard(mounted.id, mounted.panel)
	sent, err := r.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send panel: %w", err)
	}
	// previous panel goes away only once the new one is shown
	r.removePanel()
	mounted.messageID = sent.MessageID
	r.current = &mounted
	return nil
}

// removePanel deletes current panel message, must be called with lock held
func (r *Renderer) removePanel() {
	if r.current == nil {
		return
	}
	if _, err := r.bot.Request(tgbotapi.NewDeleteMessage(r.chatID, r.current.messageID)); err != nil {
		log.Warn().Err(err).Int64("chat", r.chatID).Int("message", r.current.messageID).Msg("failed to delete panel")
	}
	r.current = nil
}

// getPanel returns current panel if it has given id, must be called with lock held
func (r *Renderer) getPanel(panelID string) (*mountedPanel, error) {
	if r.current == nil || r.current.id != panelID {
		return nil, ErrPanelClosed
	}
	return r.current, nil
}

// SelectMeaning swaps displayed meaning, the rest of the panel stays the same
func (r *Renderer) SelectMeaning(panelID string, idx int) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	mounted, err := r.getPanel(panelID)
	if err != nil {
		return err
	}
	if mounted.panel.Selected == idx {
		return nil
	}
	p := mounted.panel
	if err := p.Select(idx); err != nil {
		return err
	}
	text, err := GetPanelText(p)
	if err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(r.chatID, mounted.messageID, text, getPanelKeyboard(mounted.id, p))
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := r.bot.Send(edit); err != nil {
		return fmt.Errorf("edit panel: %w", err)
	}
	mounted.panel = p
	return nil
}

// PlayAudio sends pronunciation of the panel word
func (r *Renderer) PlayAudio(panelID string) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	mounted, err := r.getPanel(panelID)
	if err != nil {
		return err
	}
	if mounted.panel.AudioURL == "" {
		return ErrNoAudio
	}
	audio := tgbotapi.NewAudio(r.chatID, tgbotapi.FileURL(mounted.panel.AudioURL))
	audio.ReplyToMessageID = mounted.messageID
	if _, err := r.bot.Send(audio); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

// Dismiss removes the panel
func (r *Renderer) Dismiss(panelID string) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	if _, err := r.getPanel(panelID); err != nil {
		return err
	}
	r.removePanel()
	return nil
}

// Panel returns copy of the displayed panel
func (r *Renderer) Panel() (panel.Panel, bool) {
	r.mx.Lock()
	defer r.mx.Unlock()
	if r.current == nil {
		return panel.Panel{}, false
	}
	return r.current.panel, true
}

// NewRenderer creates Renderer for a chat
func NewRenderer(chatID int64, b Bot, lookup LookupClient, timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &Renderer{chatID: chatID, bot: b, lookup: lookup, timeout: timeout}
}
