package panel

import (
	"fmt"
	"testing"

	"github.com/rbhz/tg-define/app/clients/dictionaryapi"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func drawEntry(rt *rapid.T) *dictionaryapi.WordResponse {
	optional := rapid.SampledFrom([]string{"", "x", "y", "z"})
	phoneticsCount := rapid.IntRange(0, 6).Draw(rt, "phonetics")
	entry := &dictionaryapi.WordResponse{}
	for i := 0; i < phoneticsCount; i++ {
		entry.Phonetics = append(entry.Phonetics, dictionaryapi.Phonetic{
			Text:  optional.Draw(rt, fmt.Sprintf("text_%d", i)),
			Audio: optional.Draw(rt, fmt.Sprintf("audio_%d", i)),
		})
	}
	meaningsCount := rapid.IntRange(0, 5).Draw(rt, "meanings")
	for i := 0; i < meaningsCount; i++ {
		entry.Meanings = append(entry.Meanings, dictionaryapi.Meaning{
			PartOfSpeech: rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, fmt.Sprintf("pos_%d", i)),
			Definitions:  []dictionaryapi.Definition{{Definition: fmt.Sprintf("def %d", i)}},
		})
	}
	return entry
}

func TestProperty_Render_FirstPhoneticWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entry := drawEntry(rt)
		p := Render("word", entry)

		var audio, text string
		for _, ph := range entry.Phonetics {
			if audio == "" {
				audio = ph.Audio
			}
			if text == "" {
				text = ph.Text
			}
		}
		assert.Equal(t, audio, p.AudioURL)
		assert.Equal(t, text, p.Phonetic)
	})
}

func TestProperty_Render_SelectorKeepsOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entry := drawEntry(rt)
		word := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(rt, "word")
		p := Render(word, entry)

		assert.Equal(t, word, p.Word)
		assert.False(t, p.NotFound)
		if len(entry.Meanings) < 2 {
			assert.Nil(t, p.Selector())
			return
		}
		labels := p.Selector()
		assert.Len(t, labels, len(entry.Meanings))
		for i, m := range entry.Meanings {
			assert.Equal(t, m.PartOfSpeech, labels[i])
		}
	})
}

func TestProperty_Select_ChangesOnlySelection(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		entry := drawEntry(rt)
		p := Render("word", entry)
		before := Render("word", entry)
		idx := rapid.IntRange(-1, len(entry.Meanings)).Draw(rt, "idx")

		err := p.Select(idx)
		if idx < 0 || idx >= len(entry.Meanings) {
			assert.ErrorIs(t, err, ErrNoSuchMeaning)
			assert.Equal(t, before, p)
			return
		}
		assert.NoError(t, err)
		before.Selected = idx
		assert.Equal(t, before, p)
	})
}
