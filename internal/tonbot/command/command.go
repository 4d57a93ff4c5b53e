package command

import (
	"strings"
	"telemora/internal/config"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
)

var log = config.InitLogger()

const numberElementPage = 5

// args returns the words after a slash command. Menu button texts carry no arguments.
func args(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return nil
	}
	return fields[1:]
}

func reply(b *bot.Bot, chatId int64, text string) {
	if _, err := util.SendTextMessage(b, chatId, text); err != nil {
		log.Error(err)
	}
}
