package command

import (
	"context"
	"fmt"
	"telemora/internal/services"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/tonfi"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/tlb"
)

// PriceSource quotes the USD price of one TON.
type PriceSource interface {
	UsdPrice(ctx context.Context, addr string) (decimal.Decimal, error)
}

type ContractInfoCommand struct {
	b      *bot.Bot
	cs     *services.ContractService
	prices PriceSource
}

// NewContractInfoCommand builds the /info view. prices may be nil.
func NewContractInfoCommand(b *bot.Bot, cs *services.ContractService, prices PriceSource) *ContractInfoCommand {
	return &ContractInfoCommand{
		b:      b,
		cs:     cs,
		prices: prices,
	}
}

func (c *ContractInfoCommand) Execute(ctx context.Context, msg *models.Message) {
	text, err := c.generateInfo(ctx)
	if err != nil {
		log.Error("Failed to load contract info: ", err)
		reply(c.b, msg.Chat.ID, "❌ Could not read the contract state. Try again later.")
		return
	}

	if _, err := util.SendTextMessageMarkup(c.b, msg.Chat.ID, text, infoMarkup()); err != nil {
		log.Error(err)
	}
}

func (c *ContractInfoCommand) Refresh(ctx context.Context, callback *models.CallbackQuery) {
	if err := util.CheckTypeMessage(c.b, callback); err != nil {
		return
	}
	msg := callback.Message.Message

	text, err := c.generateInfo(ctx)
	if err != nil {
		log.Error("Failed to load contract info: ", err)
		reply(c.b, msg.Chat.ID, "❌ Could not read the contract state. Try again later.")
		return
	}

	if err := util.EditTextMessageMarkup(ctx, c.b, msg.Chat.ID, msg.ID, text, infoMarkup()); err != nil {
		log.Error(err)
	}
}

func (c *ContractInfoCommand) generateInfo(ctx context.Context) (string, error) {
	info, err := c.cs.Info(ctx)
	if err != nil {
		return "", err
	}

	balance := util.FormatTON(info.Balance) + " TON" + c.usdEstimate(ctx, info.Balance)

	if !info.Deployed {
		return fmt.Sprintf(
			"<b>📊 Contract</b> <code>%s</code>\n\n⏳ Not deployed yet.\n<b>Balance</b>: %s",
			info.Address.String(), balance,
		), nil
	}

	admin := "not set"
	if info.Admin.Set {
		admin = fmt.Sprintf("<code>%s</code>", info.Admin.String())
	}

	return fmt.Sprintf(
		"<b>📊 Contract</b> <code>%s</code>\n\n<b>Balance</b>: %s\n<b>Admin</b>: %s\n<b>Commission</b>: %d",
		info.Address.String(), balance, admin, info.CommissionBps,
	), nil
}

// usdEstimate returns " (≈ $x.xx)" or "" when no price is available.
func (c *ContractInfoCommand) usdEstimate(ctx context.Context, balance tlb.Coins) string {
	if c.prices == nil {
		return ""
	}

	price, err := c.prices.UsdPrice(ctx, tonfi.NativeTon)
	if err != nil {
		log.Warn("Failed to get TON price: ", err)
		return ""
	}
	return fmt.Sprintf(" (≈ $%s)", util.FormatUsd(balance, price))
}

func infoMarkup() *models.InlineKeyboardMarkup {
	return util.CreateInlineMarkup(
		2,
		util.CreateDefaultButton(buttons.RefreshInfoId, buttons.RefreshInfo),
		util.CreateDefaultButton(buttons.DefCloseId, buttons.DefCloseText),
	)
}
