package util

import (
	"github.com/go-telegram/bot/models"
)

// CreateInlineMarkup lays buttons out in rows of perRow.
func CreateInlineMarkup(perRow int, buttons ...models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	if perRow <= 0 {
		perRow = 1
	}

	rows := make([][]models.InlineKeyboardButton, 0, (len(buttons)+perRow-1)/perRow)
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		rows = append(rows, buttons[start:end])
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

func CreateDefaultButton(idButton, text string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: idButton,
	}
}

func CreateUrlButton(url, text string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

func CreateDefaultButtonsReplay(perRow int, textButton ...string) *models.ReplyKeyboardMarkup {
	if perRow <= 0 {
		perRow = 1
	}

	rows := make([][]models.KeyboardButton, 0, (len(textButton)+perRow-1)/perRow)
	for start := 0; start < len(textButton); start += perRow {
		end := min(start+perRow, len(textButton))
		row := make([]models.KeyboardButton, 0, end-start)
		for _, text := range textButton[start:end] {
			row = append(row, models.KeyboardButton{Text: text})
		}
		rows = append(rows, row)
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

// GenerateNextBackMenu appends a navigation row to the list buttons. The back
// button is shown past the first page, next before the last one.
func GenerateNextBackMenu(page, totalPages int, nextId, backId, closeId string, items ...models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	markup := CreateInlineMarkup(1, items...)

	nav := make([]models.InlineKeyboardButton, 0, 3)
	if page > 0 {
		nav = append(nav, CreateDefaultButton(backId, "⬅️"))
	}
	nav = append(nav, CreateDefaultButton(closeId, "❌"))
	if page+1 < totalPages {
		nav = append(nav, CreateDefaultButton(nextId, "➡️"))
	}

	markup.InlineKeyboard = append(markup.InlineKeyboard, nav)
	return markup
}
