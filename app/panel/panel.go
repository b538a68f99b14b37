// Package panel builds the content of a definition panel from a dictionary entry.
// It does no I/O: mounting the panel is up to the caller.
package panel

import (
	"errors"
	"strings"

	"github.com/rbhz/tg-define/app/clients/dictionaryapi"
)

// NotFoundMessage is shown when no definition is available
const NotFoundMessage = "Definition not found."

// ErrNoSuchMeaning is returned when selecting a meaning outside of the panel
var ErrNoSuchMeaning = errors.New("no such meaning")

// Panel describes everything shown for a single lookup
type Panel struct {
	Word     string
	Phonetic string
	AudioURL string
	NotFound bool
	Meanings []Section
	Selected int
}

// Section holds a single meaning of the word
type Section struct {
	PartOfSpeech string
	Definition   string
	Example      string
	Synonyms     []string
	Antonyms     []string
}

// Render builds panel for the word, nil entry means definition is unavailable
func Render(word string, entry *dictionaryapi.WordResponse) Panel {
	p := Panel{Word: word}
	if entry == nil {
		p.NotFound = true
		return p
	}
	p.Phonetic, p.AudioURL = phonetics(entry)
	p.Meanings = make([]Section, 0, len(entry.Meanings))
	for _, m := range entry.Meanings {
		p.Meanings = append(p.Meanings, section(m))
	}
	return p
}

// phonetics scans entries in order and returns the first text and the first audio found
func phonetics(entry *dictionaryapi.WordResponse) (text string, audio string) {
	for _, ph := range entry.Phonetics {
		if audio == "" && ph.Audio != "" {
			audio = ph.Audio
		}
		if text == "" && ph.Text != "" {
			text = ph.Text
		}
		if audio != "" && text != "" {
			break
		}
	}
	if text == "" {
		text = entry.Phonetic
	}
	if strings.HasPrefix(audio, "//") {
		audio = "https:" + audio
	}
	return text, audio
}

func section(m dictionaryapi.Meaning) Section {
	s := Section{
		PartOfSpeech: m.PartOfSpeech,
		Synonyms:     m.Synonyms,
		Antonyms:     m.Antonyms,
	}
	// only the first definition to keep the panel compact
	if len(m.Definitions) > 0 {
		d := m.Definitions[0]
		s.Definition = d.Definition
		s.Example = d.Example
		if len(s.Synonyms) == 0 {
			s.Synonyms = d.Synonyms
		}
		if len(s.Antonyms) == 0 {
			s.Antonyms = d.Antonyms
		}
	}
	return s
}

// Message returns the not found text, empty for found words
func (p Panel) Message() string {
	if p.NotFound {
		return NotFoundMessage
	}
	return ""
}

// Selector returns part of speech labels when there is more than one meaning
func (p Panel) Selector() []string {
	if len(p.Meanings) < 2 {
		return nil
	}
	labels := make([]string, 0, len(p.Meanings))
	for _, m := range p.Meanings {
		labels = append(labels, m.PartOfSpeech)
	}
	return labels
}

// Current returns displayed meaning
func (p Panel) Current() *Section {
	if p.Selected < 0 || p.Selected >= len(p.Meanings) {
		return nil
	}
	return &p.Meanings[p.Selected]
}

// Select switches displayed meaning
func (p *Panel) Select(idx int) error {
	if idx < 0 || idx >= len(p.Meanings) {
		return ErrNoSuchMeaning
	}
	p.Selected = idx
	return nil
}
