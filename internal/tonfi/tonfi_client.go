package tonfi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"telemora/internal/config"
	"time"

	"github.com/shopspring/decimal"
)

var log = config.InitLogger()

const (
	TonfiBaseUrl = "https://api.ston.fi/v1"
	TonfiAsset   = "/assets"

	// NativeTon is the address ston.fi lists native TON under.
	NativeTon = "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAM9c"
)

var ErrNoPrice = errors.New("asset has no usd price")

type AssetInfo struct {
	Asset Asset `json:"asset"`
}

type Asset struct {
	ContractAddress string `json:"contract_address"`
	Symbol          string `json:"symbol"`
	DisplayName     string `json:"display_name"`
	Decimals        int    `json:"decimals"`
	Kind            string `json:"kind"`
	Deprecated      bool   `json:"deprecated"`
	DexUsdPrice     string `json:"dex_usd_price"`
	DexPriceUsd     string `json:"dex_price_usd"`
}

type Client struct {
	baseUrl string
	http    *http.Client
}

func NewClient(baseUrl string) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetAssetByAddr(ctx context.Context, addr string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+TonfiAsset+"/"+addr, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Failed to get asset: ", err)
		return nil, fmt.Errorf("get asset %s: %w", addr, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get asset %s: unexpected status %d", addr, resp.StatusCode)
	}

	var res AssetInfo
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		log.Error("Failed to decode asset: ", err)
		return nil, fmt.Errorf("decode asset %s: %w", addr, err)
	}
	return &res.Asset, nil
}

// UsdPrice returns the dex price of one whole unit of the asset.
func (c *Client) UsdPrice(ctx context.Context, addr string) (decimal.Decimal, error) {
	asset, err := c.GetAssetByAddr(ctx, addr)
	if err != nil {
		return decimal.Zero, err
	}

	raw := asset.DexPriceUsd
	if raw == "" {
		raw = asset.DexUsdPrice
	}
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoPrice, addr)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return price, nil
}
