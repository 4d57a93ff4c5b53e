package services

import (
	"context"
	"fmt"
	"telemora/internal/config"

	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

// InitApi connects to the liteservers listed in the global config at cfg.ConfigUrl.
func InitApi(ctx context.Context, cfg *config.TonClientConfig) (ton.APIClientWrapped, error) {
	client := liteclient.NewConnectionPool()

	netCfg, err := liteclient.GetConfigFromUrl(ctx, cfg.ConfigUrl)
	if err != nil {
		log.Error("Failed to get ton config: ", err)
		return nil, fmt.Errorf("get ton config: %w", err)
	}

	if err := client.AddConnectionsFromConfig(ctx, netCfg); err != nil {
		log.Error("Failed to add connections to config server: ", err)
		return nil, fmt.Errorf("add liteserver connections: %w", err)
	}

	api := ton.NewAPIClient(client, ton.ProofCheckPolicyFast).WithRetry()
	api.SetTrustedBlockFromConfig(netCfg)

	return api, nil
}

// GetWallet opens the operator wallet from its seed phrase.
func GetWallet(api ton.APIClientWrapped, cfg *config.TonClientConfig) (*wallet.Wallet, error) {
	if len(cfg.Seed) == 0 {
		return nil, fmt.Errorf("%w: WALLET_SEED", config.ErrMissingEnv)
	}

	w, err := wallet.FromSeed(api, cfg.Seed, cfg.WalletVersion)
	if err != nil {
		log.Error("Failed to open wallet: ", err)
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	log.Infof("Operator wallet %s (%s)", w.WalletAddress().String(), cfg.WalletVersion.String())

	return w, nil
}
