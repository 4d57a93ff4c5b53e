package command

import (
	"context"
	"fmt"
	"telemora/internal/services"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/xssnick/tonutils-go/tlb"
)

type DeployCommand struct {
	b     *bot.Bot
	cs    *services.ContractService
	value tlb.Coins
}

func NewDeployCommand(b *bot.Bot, cs *services.ContractService, value tlb.Coins) *DeployCommand {
	return &DeployCommand{
		b:     b,
		cs:    cs,
		value: value,
	}
}

func (c *DeployCommand) Execute(ctx context.Context, msg *models.Message) {
	chatId := msg.Chat.ID

	deployed, err := c.cs.IsDeployed(ctx)
	if err != nil {
		log.Error("Failed to read contract state: ", err)
		reply(c.b, chatId, "❌ Could not read the contract state.")
		return
	}
	if deployed {
		reply(c.b, chatId, "ℹ️ The contract is already deployed.")
		return
	}

	if _, err := c.cs.Deploy(ctx, chatId, c.value); err != nil {
		log.Error("Deploy failed: ", err)
		reply(c.b, chatId, "❌ Deploy was not sent.")
		return
	}

	reply(c.b, chatId, fmt.Sprintf(
		"🚀 Deploy sent with %s TON to <code>%s</code>.",
		util.FormatTON(c.value), c.cs.Address().String(),
	))
}
