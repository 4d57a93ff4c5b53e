package command

import (
	"context"
	"fmt"
	"telemora/internal/services"
	"telemora/internal/tonbot/userstate"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

const keyWithdrawTo = "withdraw_to"

// WithdrawCommand sends admin_withdraw from the operator wallet.
type WithdrawCommand struct {
	b         *bot.Bot
	cs        *services.ContractService
	callValue tlb.Coins
}

func NewWithdrawCommand(b *bot.Bot, cs *services.ContractService, callValue tlb.Coins) *WithdrawCommand {
	return &WithdrawCommand{
		b:         b,
		cs:        cs,
		callValue: callValue,
	}
}

func (c *WithdrawCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	switch userstate.Current(chatId) {
	case userstate.EnterWithdrawAddr:
		to, err := address.ParseAddr(msg.Text)
		if err != nil {
			reply(c.b, chatId, "❌ This is not a valid address. Send the receiver address again.")
			return
		}
		userstate.SetValue(chatId, keyWithdrawTo, to.String())
		userstate.SetState(chatId, userstate.EnterWithdrawAmount)
		reply(c.b, chatId, "💰 How much TON to withdraw?")
		return

	case userstate.EnterWithdrawAmount:
		amount, err := util.ParseTON(msg.Text)
		if err != nil {
			reply(c.b, chatId, "❌ Enter an amount, e.g. <code>1.5</code>.")
			return
		}
		toStr, _ := userstate.Value(chatId, keyWithdrawTo)
		userstate.ResetState(chatId)

		to, err := address.ParseAddr(toStr)
		if err != nil {
			reply(c.b, chatId, "❌ Start again with /withdraw.")
			return
		}
		c.withdraw(ctx, chatId, to, amount)
		return
	}

	a := args(msg.Text)
	if len(a) == 0 {
		userstate.ResetState(chatId)
		userstate.SetState(chatId, userstate.EnterWithdrawAddr)
		reply(c.b, chatId, "🏦 Send the receiver address.")
		return
	}
	if len(a) != 2 {
		reply(c.b, chatId, "Usage: /withdraw &lt;address&gt; &lt;amount&gt;")
		return
	}

	to, err := address.ParseAddr(a[0])
	if err != nil {
		reply(c.b, chatId, "❌ This is not a valid address.")
		return
	}
	amount, err := util.ParseTON(a[1])
	if err != nil {
		reply(c.b, chatId, "❌ Enter an amount, e.g. <code>1.5</code>.")
		return
	}

	userstate.ResetState(chatId)
	c.withdraw(ctx, chatId, to, amount)
}

func (c *WithdrawCommand) withdraw(ctx context.Context, chatId int64, to *address.Address, amount tlb.Coins) {
	op, err := c.cs.Withdraw(ctx, chatId, c.callValue, to, amount)
	if err != nil {
		log.Error("Withdraw failed: ", err)
		reply(c.b, chatId, "❌ The withdrawal was not sent.")
		return
	}

	reply(c.b, chatId, fmt.Sprintf(
		"✅ Withdrawal of %s TON to <code>%s</code> sent (operation #%d).",
		util.FormatTON(amount), to.String(), op.Id.Int64,
	))
}
