package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defineCommand            = "define"
	defineCommandDescription = "Define"
)

// PageSessions tracks chats that already have a Renderer
type PageSessions interface {
	HasRendererLoaded(chatID int64) bool
	MarkRendererLoaded(chatID int64, r *Renderer)
	Renderer(chatID int64) *Renderer
	ForgetPage(chatID int64)
}

type pageSessions struct {
	renderers map[int64]*Renderer
	mx        sync.RWMutex
}

func (s *pageSessions) HasRendererLoaded(chatID int64) bool {
	s.mx.RLock()
	defer s.mx.RUnlock()
	_, ok := s.renderers[chatID]
	return ok
}

func (s *pageSessions) MarkRendererLoaded(chatID int64, r *Renderer) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.renderers[chatID] = r
}

func (s *pageSessions) Renderer(chatID int64) *Renderer {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.renderers[chatID]
}

func (s *pageSessions) ForgetPage(chatID int64) {
	s.mx.Lock()
	defer s.mx.Unlock()
	delete(s.renderers, chatID)
}

// NewPageSessions creates empty sessions registry
func NewPageSessions() PageSessions {
	return &pageSessions{renderers: make(map[int64]*Renderer)}
}

// Notifier reports lookups in background
type Notifier interface {
	Notify()
}

// Dispatcher loads chat renderers and delivers selected words to them
type Dispatcher struct {
	sessions    PageSessions
	newRenderer func(chatID int64, b Bot) *Renderer
	notifier    Notifier
	inflight    sync.WaitGroup
}

// Initialize registers define command
func (d *Dispatcher) Initialize(b Bot) error {
	_, err := b.Request(tgbotapi.NewSetMyCommands(tgbotapi.BotCommand{
		Command:     defineCommand,
		Description: defineCommandDescription,
	}))
	if err != nil {
		return errors.Wrap(err, "failed to register commands")
	}
	return nil
}

// HandleSelection delivers selected text to chat renderer, loading it first if needed.
// Returns false when there is nothing to define.
func (d *Dispatcher) HandleSelection(b Bot, selectedText string, chatID int64) bool {
	word := strings.TrimSpace(selectedText)
	if word == "" {
		return false
	}
	// handlers run one at a time, so check and mark can't interleave
	if !d.sessions.HasRendererLoaded(chatID) {
		d.sessions.MarkRendererLoaded(chatID, d.newRenderer(chatID, b))
		rendererLoadsTotal.Inc()
		log.Debug().Int64("chat", chatID).Msg("renderer loaded")
	}
	d.deliver(d.sessions.Renderer(chatID), DefineMessage{Action: ActionDefine, Word: word})
	if d.notifier != nil {
		d.notifier.Notify()
	}
	return true
}

func (d *Dispatcher) deliver(r *Renderer, msg DefineMessage) {
	if !r.accepts(msg) {
		return
	}
	requestID := r.begin()
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		r.define(context.Background(), requestID, msg.Word)
	}()
}

// Cleanup forgets chat renderer
func (d *Dispatcher) Cleanup(chatID int64) {
	d.sessions.ForgetPage(chatID)
	log.Debug().Int64("chat", chatID).Msg("chat forgotten")
}

// Renderer returns renderer loaded for the chat
func (d *Dispatcher) Renderer(chatID int64) *Renderer {
	return d.sessions.Renderer(chatID)
}

// Wait blocks until delivered words are rendered
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// NewDispatcher creates Dispatcher, nil notifier disables lookup counting
func NewDispatcher(lookup LookupClient, lookupTimeout time.Duration, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		sessions: NewPageSessions(),
		newRenderer: func(chatID int64, b Bot) *Renderer {
			return NewRenderer(chatID, b, lookup, lookupTimeout)
		},
		notifier: notifier,
	}
}
