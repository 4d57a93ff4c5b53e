package buttons

const (
	//main menu
	ContractInfo     = "📊 Contract"
	Pay              = "💳 Pay"
	HistoryOperation = "📃 History"
	ConnectWallet    = "🔗 Connect wallet"

	//admin menu
	Withdraw = "🏦 Withdraw"
	Deploy   = "🚀 Deploy"
)
