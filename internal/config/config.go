package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

const (
	CONFIG_TON_TESTNET_URL string = "https://ton-blockchain.github.io/testnet-global.config.json"
	CONFIG_TON_MAINNET_URL string = "https://ton.org/global.config.json"
)

var ErrMissingEnv = errors.New("required environment variable is not set")

var log = InitLogger()

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type TonClientConfig struct {
	ConfigUrl     string
	Seed          []string
	WalletVersion wallet.Version
}

type ContractConfig struct {
	// Address of an already deployed contract. Empty means derive it from the fields below.
	Address       *address.Address
	CodePath      string
	AdminAddress  *address.Address
	CommissionBps int16
	Workchain     int
	DeployValue   tlb.Coins
	CallValue     tlb.Coins
}

type AppConfig struct {
	Ton            TonClientConfig
	Contract       ContractConfig
	Postgres       *PostgresConfig
	RedisUrl       string
	GetterCacheTTL time.Duration
	SnapshotCron   string
	BotToken       string
	AdminChatIds   []int64
	ManifestUrl    string
	ManifestPath   string
	App            AppInfo
	HttpAddr       string
	// PriceApiUrl is the ston.fi API used for the USD estimate in the bot. Empty disables it.
	PriceApiUrl string
}

// AppInfo describes the app to TonConnect wallets.
type AppInfo struct {
	Name    string
	Url     string
	IconUrl string
}

var walletVersions = map[string]wallet.Version{
	"v3r2":       wallet.V3R2,
	"v4r2":       wallet.V4R2,
	"highloadv2": wallet.HighloadV2Verified,
}

func InitConfig() error {
	err := godotenv.Load()
	if err != nil {
		log.Error("Error loading .env file")
	}

	return nil
}

// Load reads .env and the environment into an AppConfig.
func Load() (*AppConfig, error) {
	if err := InitConfig(); err != nil {
		return nil, err
	}

	ton, err := loadTonClientConfig()
	if err != nil {
		return nil, err
	}

	contract, err := loadContractConfig()
	if err != nil {
		return nil, err
	}

	ttl, err := envDuration("GETTER_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	admins, err := parseChatIds(os.Getenv("TELEGRAM_ADMIN_IDS"))
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Ton:            *ton,
		Contract:       *contract,
		Postgres:       LoadPostgresConfig(),
		RedisUrl:       envOr("REDIS_URL", "redis://localhost:6379/0"),
		GetterCacheTTL: ttl,
		SnapshotCron:   envOr("SNAPSHOT_CRON", "@every 5m"),
		BotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminChatIds:   admins,
		ManifestUrl:    os.Getenv("TONCONNECT_MANIFEST_URL"),
		ManifestPath:   envOr("TONCONNECT_MANIFEST_PATH", "tonconnect-manifest.json"),
		App: AppInfo{
			Name:    envOr("APP_NAME", "Telemora"),
			Url:     os.Getenv("APP_URL"),
			IconUrl: os.Getenv("APP_ICON_URL"),
		},
		HttpAddr:    envOr("HTTP_ADDR", ":8080"),
		PriceApiUrl: priceApiUrl(),
	}, nil
}

func LoadPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		DBName:   os.Getenv("DB_NAME"),
	}
}

func loadTonClientConfig() (*TonClientConfig, error) {
	seed := strings.Fields(os.Getenv("WALLET_SEED"))

	versionName := strings.ToLower(envOr("WALLET_VERSION", "v4r2"))
	version, ok := walletVersions[versionName]
	if !ok {
		return nil, fmt.Errorf("unknown WALLET_VERSION %q", versionName)
	}

	return &TonClientConfig{
		ConfigUrl:     envOr("TON_CONFIG_URL", CONFIG_TON_MAINNET_URL),
		Seed:          seed,
		WalletVersion: version,
	}, nil
}

func loadContractConfig() (*ContractConfig, error) {
	cfg := &ContractConfig{
		CodePath: os.Getenv("TELEMORA_CODE_BOC"),
	}

	var err error
	if cfg.Address, err = envAddr("TELEMORA_ADDRESS"); err != nil {
		return nil, err
	}
	if cfg.AdminAddress, err = envAddr("TELEMORA_ADMIN_ADDRESS"); err != nil {
		return nil, err
	}

	if cfg.Address == nil && (cfg.CodePath == "" || cfg.AdminAddress == nil) {
		return nil, fmt.Errorf("%w: TELEMORA_ADDRESS or TELEMORA_CODE_BOC with TELEMORA_ADMIN_ADDRESS", ErrMissingEnv)
	}

	bps, err := strconv.ParseInt(envOr("TELEMORA_COMMISSION_BPS", "0"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEMORA_COMMISSION_BPS: %w", err)
	}
	cfg.CommissionBps = int16(bps)

	wc, err := strconv.ParseInt(envOr("TELEMORA_WORKCHAIN", "0"), 10, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEMORA_WORKCHAIN: %w", err)
	}
	cfg.Workchain = int(wc)

	if cfg.DeployValue, err = tlb.FromTON(envOr("DEPLOY_VALUE", "0.05")); err != nil {
		return nil, fmt.Errorf("invalid DEPLOY_VALUE: %w", err)
	}
	if cfg.CallValue, err = tlb.FromTON(envOr("CALL_VALUE", "0.05")); err != nil {
		return nil, fmt.Errorf("invalid CALL_VALUE: %w", err)
	}

	return cfg, nil
}

func priceApiUrl() string {
	v := envOr("PRICE_API_URL", "https://api.ston.fi/v1")
	if strings.EqualFold(v, "off") {
		return ""
	}
	return v
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envAddr(key string) (*address.Address, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil, nil
	}
	addr, err := address.ParseAddr(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return addr, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseChatIds(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
