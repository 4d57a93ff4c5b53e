package models

type TonConnectResult struct {
	WalletName string
	Version    string
	Addr       string
	Platform   string
	Network    string
}
