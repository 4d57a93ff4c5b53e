package tonbot

import (
	"context"
	"strings"
	"telemora/internal/config"
	"telemora/internal/services"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/tonbot/command"
	"telemora/internal/tonbot/userstate"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/xssnick/tonutils-go/tlb"
)

var log = config.InitLogger()

type TgBot struct {
	token       string
	cs          *services.ContractService
	tcs         *services.TonConnectService
	admins      map[int64]bool
	callValue   tlb.Coins
	deployValue tlb.Coins
	prices      command.PriceSource
}

func NewTgBot(token string, cs *services.ContractService, tcs *services.TonConnectService,
	adminIds []int64, callValue, deployValue tlb.Coins) *TgBot {
	admins := make(map[int64]bool, len(adminIds))
	for _, id := range adminIds {
		admins[id] = true
	}

	return &TgBot{
		token:       token,
		cs:          cs,
		tcs:         tcs,
		admins:      admins,
		callValue:   callValue,
		deployValue: deployValue,
	}
}

// WithPrices enables the USD estimate in /info.
func (t *TgBot) WithPrices(prices command.PriceSource) *TgBot {
	t.prices = prices
	return t
}

// StartBot polls updates until ctx is done. Messages from notify are sent to every admin.
func (t *TgBot) StartBot(ctx context.Context, notify <-chan string) error {
	opts := []bot.Option{
		bot.WithDefaultHandler(t.handler),
	}

	tgbot, err := bot.New(t.token, opts...)
	if err != nil {
		log.Error("Failed to start bot: ", err)
		return err
	}

	if notify != nil {
		go t.notifyAdmins(ctx, tgbot, notify)
	}

	log.Infoln("Telegram bot started")
	tgbot.Start(ctx)

	return nil
}

func (t *TgBot) isAdmin(chatId int64) bool {
	return t.admins[chatId]
}

func (t *TgBot) handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil {
		return
	}

	if update.Message != nil {
		t.handleMessage(ctx, b, update.Message)
	}

	if update.CallbackQuery != nil {
		callback := update.CallbackQuery

		t.handleCallback(ctx, b, callback)

		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
		}); err != nil {
			log.Error("AnswerCallbackQuery: ", err)
		}
	}
}

func (t *TgBot) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if msg.Chat.Type != models.ChatTypePrivate {
		return
	}

	text := strings.TrimSpace(msg.Text)
	chatId := msg.Chat.ID

	switch {
	case strings.HasPrefix(text, "/start"):
		userstate.ResetState(chatId)
		command.NewStartCommand(b, t.isAdmin(chatId)).Execute(ctx, msg)
		return

	case strings.HasPrefix(text, "/info"), text == buttons.ContractInfo:
		userstate.ResetState(chatId)
		command.NewContractInfoCommand(b, t.cs, t.prices).Execute(ctx, msg)
		return

	case strings.HasPrefix(text, "/history"), text == buttons.HistoryOperation:
		userstate.ResetState(chatId)
		command.NewListHistoryOperation(b, t.cs).Execute(ctx, msg)
		return

	case strings.HasPrefix(text, "/connect"), text == buttons.ConnectWallet:
		userstate.ResetState(chatId)
		command.NewConnectWalletCommand(b, t.tcs).Execute(ctx, msg)
		return

	case strings.HasPrefix(text, "/pay"), text == buttons.Pay:
		userstate.ResetState(chatId)
		command.NewPayCommand(b, t.cs, t.tcs).Execute(ctx, msg)
		return

	case strings.HasPrefix(text, "/withdraw"), text == buttons.Withdraw:
		userstate.ResetState(chatId)
		if !t.requireAdmin(b, chatId) {
			return
		}
		command.NewWithdrawCommand(b, t.cs, t.callValue).Execute(ctx, msg)
		return

	case strings.HasPrefix(text, "/deploy"), text == buttons.Deploy:
		userstate.ResetState(chatId)
		if !t.requireAdmin(b, chatId) {
			return
		}
		command.NewDeployCommand(b, t.cs, t.deployValue).Execute(ctx, msg)
		return
	}

	if state := userstate.Current(chatId); state != userstate.None {
		t.handleState(ctx, state, b, msg)
	}
}

func (t *TgBot) handleCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	data := callback.Data

	switch {
	case strings.HasPrefix(data, buttons.OpenOperationHistory):
		command.NewOpenInfoOperation(b, t.cs).Execute(ctx, callback)
	case data == buttons.BackHistoryListId:
		command.NewListHistoryOperation(b, t.cs).BackToList(ctx, callback)
	case data == buttons.NextPageHistory:
		command.NewListHistoryOperation(b, t.cs).NextPage(ctx, callback)
	case data == buttons.BackPageHistory:
		command.NewListHistoryOperation(b, t.cs).BackPage(ctx, callback)
	case data == buttons.CloseListHistory:
		command.NewListHistoryOperation(b, t.cs).CloseListHistory(ctx, callback)
	case data == buttons.RefreshInfoId:
		command.NewContractInfoCommand(b, t.cs, t.prices).Refresh(ctx, callback)
	case data == buttons.LinkTonConnectId:
		command.NewConnectWalletCommand(b, t.tcs).Reconnect(ctx, callback)
	case data == buttons.DisconnectId:
		command.NewConnectWalletCommand(b, t.tcs).Disconnect(ctx, callback)
	case data == buttons.ConfirmPayId:
		command.NewPayCommand(b, t.cs, t.tcs).Confirm(ctx, callback)
	case data == buttons.CancelPayId:
		command.NewPayCommand(b, t.cs, t.tcs).Cancel(ctx, callback)
	case data == buttons.DefCloseId:
		if err := util.CheckTypeMessage(b, callback); err != nil {
			log.Error("CheckTypeMessage: ", err)
			return
		}
		msg := callback.Message.Message
		if err := util.DeleteMessage(ctx, b, msg.Chat.ID, msg.ID); err != nil {
			log.Error("DeleteMessage: ", err)
			return
		}
		userstate.ResetState(msg.Chat.ID)
	}
}

func (t *TgBot) handleState(ctx context.Context, state int, b *bot.Bot, msg *models.Message) {
	switch state {
	case userstate.EnterSellerAddr, userstate.EnterPayAmount:
		command.NewPayCommand(b, t.cs, t.tcs).Execute(ctx, msg)
	case userstate.EnterWithdrawAddr, userstate.EnterWithdrawAmount:
		if !t.requireAdmin(b, msg.Chat.ID) {
			userstate.ResetState(msg.Chat.ID)
			return
		}
		command.NewWithdrawCommand(b, t.cs, t.callValue).Execute(ctx, msg)
	default:
		log.Error("Unknown state: ", state)
	}
}

func (t *TgBot) requireAdmin(b *bot.Bot, chatId int64) bool {
	if t.isAdmin(chatId) {
		return true
	}
	if _, err := util.SendTextMessage(b, chatId, "⛔ This command is for admins only."); err != nil {
		log.Error(err)
	}
	return false
}

func (t *TgBot) notifyAdmins(ctx context.Context, b *bot.Bot, notify <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case text, ok := <-notify:
			if !ok {
				log.Infoln("Notification channel is closed")
				return
			}
			for id := range t.admins {
				if _, err := util.SendTextMessage(b, id, text); err != nil {
					log.Error("Failed to notify admin: ", err)
				}
			}
		}
	}
}
