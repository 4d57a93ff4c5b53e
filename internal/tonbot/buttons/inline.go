package buttons

const (
	//operation menu
	OpenOperationHistory = "OPEN_OPERATION"
	NextPageHistory      = "NEXT_PAGE_HISTORY"
	BackPageHistory      = "BACK_PAGE_HISTORY"
	BackHistoryList      = "⏮️ Back to operations"
	BackHistoryListId    = "BACK_LIST_HISTORY"
	CloseListHistory     = "CLOSE_LIST_HISTORY"

	//contract info
	RefreshInfo   = "🔄 Refresh"
	RefreshInfoId = "REFRESH_INFO"

	//default button
	DefCloseId   = "DEF_CLOSE_ID"
	DefCloseText = "Close ❌"

	//tonconnect
	LinkTonConnect   = "🔁 Reconnect wallet"
	LinkTonConnectId = "LINK_TON_CONNECT"
	Disconnect       = "⛔ Disconnect wallet"
	DisconnectId     = "DISCONNECT_TON_CONNECT"

	//pay confirmation
	ConfirmPay   = "✅ Confirm"
	ConfirmPayId = "CONFIRM_PAY"
	CancelPay    = "✖️ Cancel"
	CancelPayId  = "CANCEL_PAY"
)
