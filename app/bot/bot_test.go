package bot

import (
	"context"
	"sort"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rbhz/tg-define/app/clients/dictionaryapi"
)

const testChatID = int64(100)

type chatMessage struct {
	chatID int64
	text   string
	markup *tgbotapi.InlineKeyboardMarkup
}

// testBot keeps sent messages like a chat would
type testBot struct {
	mx        sync.Mutex
	lastID    int
	messages  map[int]chatMessage
	sent      []tgbotapi.MessageConfig
	edits     []tgbotapi.EditMessageTextConfig
	audios    []tgbotapi.AudioConfig
	deleted   []int
	callbacks []tgbotapi.CallbackConfig
	commands  []tgbotapi.SetMyCommandsConfig
	sendErr   error
}

func newTestBot() *testBot {
	return &testBot{messages: make(map[int]chatMessage)}
}

func (b *testBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	switch c := c.(type) {
	case tgbotapi.MessageConfig:
		b.lastID++
		b.sent = append(b.sent, c)
		msg := chatMessage{chatID: c.ChatID, text: c.Text}
		if markup, ok := c.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); ok {
			msg.markup = &markup
		}
		b.messages[b.lastID] = msg
		return tgbotapi.Message{MessageID: b.lastID, Chat: &tgbotapi.Chat{ID: c.ChatID}, Text: c.Text}, nil
	case tgbotapi.EditMessageTextConfig:
		b.edits = append(b.edits, c)
		msg := b.messages[c.MessageID]
		msg.text = c.Text
		msg.markup = c.ReplyMarkup
		b.messages[c.MessageID] = msg
		return tgbotapi.Message{MessageID: c.MessageID, Text: c.Text}, nil
	case tgbotapi.AudioConfig:
		b.audios = append(b.audios, c)
		b.lastID++
		return tgbotapi.Message{MessageID: b.lastID}, nil
	}
	return tgbotapi.Message{}, nil
}

func (b *testBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	switch c := c.(type) {
	case tgbotapi.DeleteMessageConfig:
		b.deleted = append(b.deleted, c.MessageID)
		delete(b.messages, c.MessageID)
	case tgbotapi.CallbackConfig:
		b.callbacks = append(b.callbacks, c)
	case tgbotapi.SetMyCommandsConfig:
		b.commands = append(b.commands, c)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// panels returns ids of panel messages present in the chat
func (b *testBot) panels(chatID int64) []int {
	b.mx.Lock()
	defer b.mx.Unlock()
	ids := make([]int, 0)
	for id, msg := range b.messages {
		if msg.chatID == chatID && msg.markup != nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (b *testBot) message(id int) chatMessage {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.messages[id]
}

type testLookup struct {
	mx    sync.Mutex
	words []string
	fn    func(ctx context.Context, word string) (*dictionaryapi.WordResponse, error)
}

func (l *testLookup) Lookup(ctx context.Context, word string) (*dictionaryapi.WordResponse, error) {
	l.mx.Lock()
	l.words = append(l.words, word)
	l.mx.Unlock()
	if l.fn == nil {
		return getEntry(word), nil
	}
	return l.fn(ctx, word)
}

func (l *testLookup) calls() []string {
	l.mx.Lock()
	defer l.mx.Unlock()
	return append([]string(nil), l.words...)
}

func getEntry(word string) *dictionaryapi.WordResponse {
	return &dictionaryapi.WordResponse{
		Word: word,
		Phonetics: []dictionaryapi.Phonetic{
			{Text: "/bæŋk/"},
			{Audio: "https://example.com/bank-us.mp3"},
		},
		Meanings: []dictionaryapi.Meaning{
			{
				PartOfSpeech: "noun",
				Definitions: []dictionaryapi.Definition{
					{Definition: "the land alongside a river", Example: "willows by the bank", Synonyms: []string{"shore"}},
					{Definition: "a financial establishment"},
				},
			},
			{
				PartOfSpeech: "verb",
				Definitions:  []dictionaryapi.Definition{{Definition: "deposit money"}},
				Antonyms:     []string{"withdraw"},
			},
		},
	}
}

// buttonTexts returns keyboard button labels by rows
func buttonTexts(markup *tgbotapi.InlineKeyboardMarkup) [][]string {
	rows := make([][]string, 0, len(markup.InlineKeyboard))
	for _, row := range markup.InlineKeyboard {
		labels := make([]string, 0, len(row))
		for _, button := range row {
			labels = append(labels, button.Text)
		}
		rows = append(rows, labels)
	}
	return rows
}
