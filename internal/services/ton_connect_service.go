package services

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"telemora/internal/models"
	"time"

	"github.com/cameo-engineering/tonconnect"
	"github.com/redis/go-redis/v9"
)

var ErrWalletNotFound = errors.New("wallet not found")

const (
	sessionKeyPrefix = "telemora:tonconnect:"
	sessionTTL       = 30 * 24 * time.Hour
	// wallets offered to the buyer
	walletTonkeeper = "tonkeeper"
	walletTonhub    = "tonhub"
)

type TonConnectService struct {
	redisCli    *redis.Client
	manifestUrl string
}

func NewTonConnectService(redis *redis.Client, manifestUrl string) *TonConnectService {
	return &TonConnectService{
		redisCli:    redis,
		manifestUrl: manifestUrl,
	}
}

func SessionKey(chatId int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, chatId)
}

// LoadSession returns nil without error when there is no stored session.
func (s *TonConnectService) LoadSession(key string) (*tonconnect.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := s.redisCli.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		log.Error("Error loading session: ", err)
		return nil, err
	}

	var session tonconnect.Session
	if err := session.UnmarshalJSON([]byte(result)); err != nil {
		log.Error("Error decoding session: ", err)
		return nil, err
	}
	return &session, nil
}

func (s *TonConnectService) SaveSession(key string, session *tonconnect.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	data, err := session.MarshalJSON()
	if err != nil {
		log.Error("Error marshaling session json: ", err)
		return err
	}
	return s.redisCli.Set(ctx, key, data, sessionTTL).Err()
}

func (s *TonConnectService) DeleteSession(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	return s.redisCli.Del(ctx, key).Err()
}

func (s *TonConnectService) CreateSession() (*tonconnect.Session, error) {
	return tonconnect.NewSession()
}

// GenerateConnectUrls returns universal links keyed by wallet name.
func (s *TonConnectService) GenerateConnectUrls(session *tonconnect.Session) (map[string]string, error) {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		log.Error("Error generating proof payload: ", err)
		return nil, err
	}

	connreq, err := tonconnect.NewConnectRequest(
		s.manifestUrl,
		tonconnect.WithProofRequest(base32.StdEncoding.EncodeToString(data)),
	)
	if err != nil {
		log.Error("Error creating connect request: ", err)
		return nil, err
	}

	result := make(map[string]string)
	for _, name := range []string{walletTonkeeper, walletTonhub} {
		w, err := s.GetWallet(name)
		if err != nil {
			continue
		}
		link, err := session.GenerateUniversalLink(*w, *connreq)
		if err != nil {
			log.Error("Error generating universal link: ", err)
			return nil, err
		}
		log.Debugln("Generated link: ", link)
		result[w.Name] = link
	}

	return result, nil
}

func (s *TonConnectService) GetWallet(name string) (*tonconnect.Wallet, error) {
	for _, w := range tonconnect.Wallets {
		if strings.ToLower(w.Name) == name {
			return &w, nil
		}
	}

	return nil, ErrWalletNotFound
}

// Connect waits for the user to approve the connection in their wallet.
func (s *TonConnectService) Connect(ctx context.Context, session *tonconnect.Session) (*models.TonConnectResult, error) {
	res, err := session.Connect(ctx, tonconnect.Wallets[walletTonkeeper], tonconnect.Wallets[walletTonhub])
	if err != nil {
		log.Error("Error connecting wallet: ", err)
		return nil, err
	}

	result := &models.TonConnectResult{
		WalletName: res.Device.AppName,
		Version:    res.Device.AppVersion,
		Platform:   res.Device.Platform,
		Network:    "mainnet",
	}
	for _, item := range res.Items {
		if item.Name == "ton_addr" {
			result.Addr = item.Address
			if item.Network == -3 {
				result.Network = "testnet"
			}
		}
	}

	log.Infof("%s %s for %s is connected to %s with %s address",
		result.WalletName, result.Version, result.Platform, result.Network, result.Addr)

	return result, nil
}

// SendMessage asks the connected wallet to sign and send msg.
func (s *TonConnectService) SendMessage(ctx context.Context, session *tonconnect.Session, msg tonconnect.Message) ([]byte, error) {
	tx, err := tonconnect.NewTransaction(
		tonconnect.WithTimeout(5*time.Minute),
		tonconnect.WithMessage(msg),
	)
	if err != nil {
		log.Error("Error creating transaction: ", err)
		return nil, err
	}

	boc, err := session.SendTransaction(ctx, *tx)
	if err != nil {
		log.Error("Error sending transaction: ", err)
		return nil, err
	}
	return boc, nil
}
