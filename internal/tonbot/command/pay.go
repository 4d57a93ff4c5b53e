package command

import (
	"context"
	"fmt"
	"telemora/internal/services"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/tonbot/userstate"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

const (
	keySeller = "seller"
	keyAmount = "amount"
)

type PayCommand struct {
	b   *bot.Bot
	cs  *services.ContractService
	tcs *services.TonConnectService
}

func NewPayCommand(b *bot.Bot, cs *services.ContractService, tcs *services.TonConnectService) *PayCommand {
	return &PayCommand{
		b:   b,
		cs:  cs,
		tcs: tcs,
	}
}

// Execute handles /pay, with or without arguments, and the answers to its questions.
func (c *PayCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	switch userstate.Current(chatId) {
	case userstate.EnterSellerAddr:
		seller, err := address.ParseAddr(msg.Text)
		if err != nil {
			reply(c.b, chatId, "❌ This is not a valid address. Send the seller address again.")
			return
		}
		userstate.SetValue(chatId, keySeller, seller.String())
		userstate.SetState(chatId, userstate.EnterPayAmount)
		reply(c.b, chatId, "💰 How much TON to pay?")
		return

	case userstate.EnterPayAmount:
		amount, err := util.ParseTON(msg.Text)
		if err != nil || amount.Nano().Sign() == 0 {
			reply(c.b, chatId, "❌ Enter a positive amount, e.g. <code>1.5</code>.")
			return
		}
		seller, _ := userstate.Value(chatId, keySeller)
		c.confirm(chatId, seller, amount)
		return
	}

	a := args(msg.Text)
	if len(a) == 0 {
		userstate.ResetState(chatId)
		userstate.SetState(chatId, userstate.EnterSellerAddr)
		reply(c.b, chatId, "🏪 Send the seller address.")
		return
	}
	if len(a) != 2 {
		reply(c.b, chatId, "Usage: /pay &lt;seller&gt; &lt;amount&gt;")
		return
	}

	seller, err := address.ParseAddr(a[0])
	if err != nil {
		reply(c.b, chatId, "❌ This is not a valid seller address.")
		return
	}
	amount, err := util.ParseTON(a[1])
	if err != nil || amount.Nano().Sign() == 0 {
		reply(c.b, chatId, "❌ Enter a positive amount, e.g. <code>1.5</code>.")
		return
	}

	userstate.ResetState(chatId)
	userstate.SetValue(chatId, keySeller, seller.String())
	c.confirm(chatId, seller.String(), amount)
}

func (c *PayCommand) confirm(chatId int64, seller string, amount tlb.Coins) {
	userstate.SetValue(chatId, keyAmount, amount.Nano().String())
	userstate.SetState(chatId, userstate.None)

	markup := util.CreateInlineMarkup(
		2,
		util.CreateDefaultButton(buttons.ConfirmPayId, buttons.ConfirmPay),
		util.CreateDefaultButton(buttons.CancelPayId, buttons.CancelPay),
	)
	if _, err := util.SendTextMessageMarkup(
		c.b,
		chatId,
		fmt.Sprintf("Pay <b>%s TON</b> to <code>%s</code>?", util.FormatTON(amount), seller),
		markup,
	); err != nil {
		log.Error(err)
	}
}

// Confirm sends the drafted payment through the connected wallet.
func (c *PayCommand) Confirm(ctx context.Context, callback *models.CallbackQuery) {
	chatId := callback.From.ID
	defer userstate.ResetState(chatId)

	sellerStr, okSeller := userstate.Value(chatId, keySeller)
	amountStr, okAmount := userstate.Value(chatId, keyAmount)
	if !okSeller || !okAmount {
		reply(c.b, chatId, "❌ Nothing to pay. Start again with /pay.")
		return
	}

	seller, err := address.ParseAddr(sellerStr)
	if err != nil {
		reply(c.b, chatId, "❌ Nothing to pay. Start again with /pay.")
		return
	}
	amount, err := util.ParseNano(amountStr)
	if err != nil {
		reply(c.b, chatId, "❌ Nothing to pay. Start again with /pay.")
		return
	}

	key := services.SessionKey(chatId)
	session, err := c.tcs.LoadSession(key)
	if err != nil || session == nil {
		if _, err := util.SendTextMessageMarkup(
			c.b,
			chatId,
			"🔗 Connect a wallet first.",
			util.CreateInlineMarkup(1, util.CreateDefaultButton(buttons.LinkTonConnectId, buttons.LinkTonConnect)),
		); err != nil {
			log.Error(err)
		}
		return
	}

	reply(c.b, chatId, "📲 Confirm the transaction in your wallet.")

	sender := services.NewTonConnectSender(c.tcs, session, key)
	if _, err := c.cs.Pay(ctx, sender, chatId, amount, seller); err != nil {
		log.Error("Payment failed: ", err)
		reply(c.b, chatId, "❌ The payment was not sent.")
		return
	}

	reply(c.b, chatId, fmt.Sprintf("✅ Payment of %s TON sent.", util.FormatTON(amount)))
}

func (c *PayCommand) Cancel(_ context.Context, callback *models.CallbackQuery) {
	userstate.ResetState(callback.From.ID)
	reply(c.b, callback.From.ID, "Payment cancelled.")
}
