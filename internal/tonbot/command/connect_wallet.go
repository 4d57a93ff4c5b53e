package command

import (
	"context"
	"fmt"
	"sort"
	"telemora/internal/services"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/util"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const connectTimeout = 5 * time.Minute

type ConnectWalletCommand struct {
	b   *bot.Bot
	tcs *services.TonConnectService
}

func NewConnectWalletCommand(b *bot.Bot, tcs *services.TonConnectService) *ConnectWalletCommand {
	return &ConnectWalletCommand{
		b:   b,
		tcs: tcs,
	}
}

func (c *ConnectWalletCommand) Execute(ctx context.Context, msg *models.Message) {
	if err := c.connect(ctx, msg.Chat.ID); err != nil {
		log.Error("TonConnect failed: ", err)
		if _, err := util.SendTextMessageMarkup(
			c.b,
			msg.Chat.ID,
			"❌ The wallet was not connected. Try again.",
			util.CreateInlineMarkup(1, util.CreateDefaultButton(buttons.LinkTonConnectId, buttons.LinkTonConnect)),
		); err != nil {
			log.Error(err)
		}
	}
}

func (c *ConnectWalletCommand) Reconnect(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.b, callback); err != nil {
		return
	}
	c.Execute(ctx, callback.Message.Message)
}

func (c *ConnectWalletCommand) Disconnect(_ context.Context, callback *models.CallbackQuery) {
	chatId := callback.From.ID
	if err := c.tcs.DeleteSession(services.SessionKey(chatId)); err != nil {
		log.Error("Failed to delete session: ", err)
		reply(c.b, chatId, "❌ Could not disconnect the wallet.")
		return
	}
	reply(c.b, chatId, "✅ Wallet disconnected.")
}

func (c *ConnectWalletCommand) connect(ctx context.Context, chatId int64) error {
	session, err := c.tcs.CreateSession()
	if err != nil {
		return err
	}

	urls, err := c.tcs.GenerateConnectUrls(session)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(urls))
	for name := range urls {
		names = append(names, name)
	}
	sort.Strings(names)

	btns := make([]models.InlineKeyboardButton, 0, len(names))
	for _, name := range names {
		btns = append(btns, util.CreateUrlButton(urls[name], name))
	}

	if _, err := util.SendTextMessageMarkup(
		c.b,
		chatId,
		fmt.Sprintf("🔗 Open your wallet and approve the connection within %d minutes.", int(connectTimeout.Minutes())),
		util.CreateInlineMarkup(1, btns...),
	); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	res, err := c.tcs.Connect(ctx, session)
	if err != nil {
		return err
	}

	if err := c.tcs.SaveSession(services.SessionKey(chatId), session); err != nil {
		return err
	}

	if _, err := util.SendTextMessageMarkup(
		c.b,
		chatId,
		fmt.Sprintf("✅ %s connected (%s)\n<code>%s</code>", res.WalletName, res.Network, res.Addr),
		util.CreateInlineMarkup(1, util.CreateDefaultButton(buttons.DisconnectId, buttons.Disconnect)),
	); err != nil {
		log.Error(err)
	}

	return nil
}
