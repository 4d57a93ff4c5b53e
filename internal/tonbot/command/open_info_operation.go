package command

import (
	"context"
	"strconv"
	"strings"
	"telemora/internal/services"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type OpenInfoOperation struct {
	b  *bot.Bot
	cs *services.ContractService
}

func NewOpenInfoOperation(b *bot.Bot, cs *services.ContractService) *OpenInfoOperation {
	return &OpenInfoOperation{
		b:  b,
		cs: cs,
	}
}

func (c *OpenInfoOperation) Execute(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.b, callback); err != nil {
		return
	}

	msg := callback.Message.Message
	chatId := msg.Chat.ID

	_, idStr, ok := strings.Cut(callback.Data, ":")
	if !ok {
		reply(c.b, chatId, "❌ Cannot handle this button.")
		return
	}

	opId, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		reply(c.b, chatId, "❌ Cannot open this operation.")
		return
	}

	op, err := c.cs.Operation(opId)
	if err != nil {
		reply(c.b, chatId, "❌ Operation not found.")
		return
	}

	markup := util.CreateInlineMarkup(1, util.CreateDefaultButton(buttons.BackHistoryListId, buttons.BackHistoryList))
	if err := util.EditTextMessageMarkup(
		ctx,
		c.b,
		chatId,
		msg.ID,
		util.OperationInfo(op, services.OperationName(op.Kind)),
		markup,
	); err != nil {
		log.Error(err)
	}
}
