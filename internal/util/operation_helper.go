package util

import (
	"fmt"
	"html"
	appModel "telemora/internal/models"

	"github.com/go-telegram/bot/models"
)

const DateTimeLayout = "02.01.2006 15:04:05"

var operationIcons = map[string]string{
	appModel.STATUS_SENT:   "✅",
	appModel.STATUS_FAILED: "❌",
}

// GenerateOperationButtons builds one button per stored operation; the callback
// data is prefix:id.
func GenerateOperationButtons(prefix string, operations []appModel.Operation, name func(kind string) string) []models.InlineKeyboardButton {
	res := make([]models.InlineKeyboardButton, 0, len(operations))
	for _, op := range operations {
		if !op.Id.Valid {
			continue
		}
		text := fmt.Sprintf("%s %s %s", operationIcons[op.Status], name(op.Kind), op.CreatedAt.Format(DateTimeLayout))
		res = append(res, CreateDefaultButton(fmt.Sprintf("%s:%d", prefix, op.Id.Int64), text))
	}

	return res
}

// OperationInfo renders the details of a stored operation as HTML.
func OperationInfo(op *appModel.Operation, name string) string {
	text := fmt.Sprintf(
		"<b>%s</b>\n\n<b>Status</b>: %s\n<b>Contract</b>: <code>%s</code>\n",
		name, op.Status, op.Contract,
	)
	if op.Target.Valid {
		text += fmt.Sprintf("<b>Address</b>: <code>%s</code>\n", op.Target.String)
	}
	if !op.AmountNano.IsZero() {
		text += fmt.Sprintf("<b>Amount</b>: %s TON\n", FormatNano(op.AmountNano))
	}
	text += fmt.Sprintf("<b>Attached</b>: %s TON\n", FormatNano(op.ValueNano))
	text += fmt.Sprintf("<b>Query id</b>: %s\n", op.QueryId.String())
	if op.Error.Valid {
		text += fmt.Sprintf("<b>Error</b>: %s\n", html.EscapeString(op.Error.String))
	}
	text += fmt.Sprintf("<b>Time</b>: %s", op.CreatedAt.Format(DateTimeLayout))

	return text
}
