package bot

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rbhz/tg-define/app/panel"
)

const (
	panelActionMeaning = "m"
	panelActionAudio   = "a"
	panelActionClose   = "x"
)

// maxTitleLength keeps panel text under Telegram message limit for any selected text
const maxTitleLength = 256

const panelHeaderTemplate = `<b>{{ title .Word }}</b>
{{- if .Phonetic }}
<i>{{ .Phonetic }}</i>
{{- end }}`

const panelSectionTemplate = `
{{- if .NotFound }}{{ .Message }}
{{- else }}{{ with .Current }}<u>{{ .PartOfSpeech }}</u>
{{ .Definition }}
{{- if .Example }}
<i>"{{ .Example }}"</i>
{{- end }}
{{- if .Synonyms }}
<b>Synonyms</b>: {{ join .Synonyms }}
{{- end }}
{{- if .Antonyms }}
<b>Antonyms</b>: {{ join .Antonyms }}
{{- end }}
{{- end }}{{- end }}`

var panelTemplates = template.Must(
	template.New("header").
		Funcs(template.FuncMap{
			"join":  func(items []string) string { return strings.Join(items, ", ") },
			"title": clampTitle,
		}).
		Parse(panelHeaderTemplate),
)

func init() {
	template.Must(panelTemplates.New("section").Parse(panelSectionTemplate))
}

// clampTitle shortens displayed word, lookup still uses the whole word
func clampTitle(word string) string {
	runes := []rune(word)
	if len(runes) <= maxTitleLength {
		return word
	}
	return string(runes[:maxTitleLength-1]) + "…"
}

// GetPanelText executes panel templates, header and meaning section are separated by an empty line
func GetPanelText(p panel.Panel) (string, error) {
	header := &bytes.Buffer{}
	if err := panelTemplates.ExecuteTemplate(header, "header", p); err != nil {
		return "", fmt.Errorf("executing header template: %w", err)
	}
	section := &bytes.Buffer{}
	if err := panelTemplates.ExecuteTemplate(section, "section", p); err != nil {
		return "", fmt.Errorf("executing section template: %w", err)
	}
	if section.Len() == 0 {
		return header.String(), nil
	}
	return header.String() + "\n\n" + section.String(), nil
}

// getPanelKeyboard returns meaning selector and panel controls
func getPanelKeyboard(panelID string, p panel.Panel) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 2)
	if labels := p.Selector(); labels != nil {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(labels))
		for idx, label := range labels {
			if label == "" {
				label = fmt.Sprintf("meaning %d", idx+1)
			}
			if idx == p.Selected {
				label = "• " + label
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
				label,
				fmt.Sprintf("%v|%v|%v|%d", callbackIDPanel, panelID, panelActionMeaning, idx)),
			)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	controls := make([]tgbotapi.InlineKeyboardButton, 0, 2)
	if p.AudioURL != "" {
		controls = append(controls, tgbotapi.NewInlineKeyboardButtonData(
			"🔊", fmt.Sprintf("%v|%v|%v", callbackIDPanel, panelID, panelActionAudio),
		))
	}
	controls = append(controls, tgbotapi.NewInlineKeyboardButtonData(
		"✖", fmt.Sprintf("%v|%v|%v", callbackIDPanel, panelID, panelActionClose),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(controls...))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
