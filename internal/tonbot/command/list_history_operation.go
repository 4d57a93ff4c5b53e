package command

import (
	"context"
	"telemora/internal/services"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const historyHeader = "<b>Operations</b>\n\nPick an operation to see the details."

var currentPageOperation = util.NewPages()

type ListHistoryOperation struct {
	b  *bot.Bot
	cs *services.ContractService
}

func NewListHistoryOperation(b *bot.Bot, cs *services.ContractService) *ListHistoryOperation {
	return &ListHistoryOperation{
		b:  b,
		cs: cs,
	}
}

func (c *ListHistoryOperation) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	markup, err := c.generateOperationList(chatId)
	if err != nil {
		log.Error(err)
		reply(c.b, chatId, "❌ Could not load the operations.")
		return
	}

	if err := util.EditMessageMarkup(ctx, c.b, chatId, msg.ID, markup); err != nil {
		if _, err := util.SendTextMessageMarkup(
			c.b,
			chatId,
			historyHeader,
			markup); err != nil {
			log.Error(err)
		}
	}
}

func (c *ListHistoryOperation) generateOperationList(chatId int64) (*models.InlineKeyboardMarkup, error) {
	page := currentPageOperation.Current(chatId)
	totalPage := util.TotalPages(c.cs.CountHistory(), numberElementPage)

	operations, err := c.cs.History(page*numberElementPage, numberElementPage)
	if err != nil {
		return nil, err
	}

	return util.GenerateNextBackMenu(
		page,
		totalPage,
		buttons.NextPageHistory,
		buttons.BackPageHistory,
		buttons.CloseListHistory,
		util.GenerateOperationButtons(buttons.OpenOperationHistory, operations, services.OperationName)...,
	), nil
}

func (c *ListHistoryOperation) NextPage(ctx context.Context, callback *models.CallbackQuery) {
	totalPage := util.TotalPages(c.cs.CountHistory(), numberElementPage)
	util.NextPage(ctx, callback, currentPageOperation, totalPage, c.b, c)
}

func (c *ListHistoryOperation) BackPage(ctx context.Context, callback *models.CallbackQuery) {
	totalPage := util.TotalPages(c.cs.CountHistory(), numberElementPage)
	util.BackPage(ctx, callback, currentPageOperation, totalPage, c.b, c)
}

func (c *ListHistoryOperation) CloseListHistory(ctx context.Context, callback *models.CallbackQuery) {
	util.CloseList(ctx, callback, currentPageOperation, c.b)
}

// BackToList replaces an opened operation with the list it was picked from.
func (c *ListHistoryOperation) BackToList(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.b, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	markup, err := c.generateOperationList(msg.Chat.ID)
	if err != nil {
		log.Error(err)
		reply(c.b, msg.Chat.ID, "❌ Could not load the operations.")
		return
	}

	if err := util.EditTextMessageMarkup(ctx, c.b, msg.Chat.ID, msg.ID, historyHeader, markup); err != nil {
		log.Error(err)
	}
}
