package command

import (
	"context"
	"telemora/internal/tonbot/buttons"
	"telemora/internal/util"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type StartCommand struct {
	b     *bot.Bot
	admin bool
}

func NewStartCommand(b *bot.Bot, admin bool) *StartCommand {
	return &StartCommand{
		b:     b,
		admin: admin,
	}
}

func (c *StartCommand) Execute(ctx context.Context, msg *models.Message) {
	menu := []string{buttons.ContractInfo, buttons.Pay, buttons.HistoryOperation, buttons.ConnectWallet}
	if c.admin {
		menu = append(menu, buttons.Withdraw, buttons.Deploy)
	}

	if _, err := util.SendTextMessageMarkup(
		c.b,
		msg.Chat.ID,
		generateStartResponse(c.admin),
		util.CreateDefaultButtonsReplay(2, menu...),
	); err != nil {
		log.Error(err)
	}
}

func generateStartResponse(admin bool) string {
	text := `<b>👋 Telemora payments</b>

Pay a seller through the Telemora contract with your own wallet.

/info - contract balance, admin and commission
/pay &lt;seller&gt; &lt;amount&gt; - pay a seller in TON
/history - recent operations
/connect - connect a wallet with TonConnect`

	if admin {
		text += `

<b>Admin</b>
/withdraw &lt;address&gt; &lt;amount&gt; - withdraw from the contract
/deploy - deploy the contract`
	}

	return text
}
