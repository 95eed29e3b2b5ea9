package solscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/songzhibin97/tokenguard/internal/utils/request"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// SolscanProvider collects on-chain token data from a Solscan-compatible API.
type SolscanProvider struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

func NewSolscanProvider(baseURL, apiKey string) *SolscanProvider {
	if baseURL == "" {
		baseURL = "https://pro-api.solscan.io"
	}
	return &SolscanProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: request.Request,
	}
}

func (s *SolscanProvider) Name() string {
	return "solscan"
}

func (s *SolscanProvider) get(ctx context.Context, url string, out interface{}) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("token", s.apiKey).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// TokenInfo implements ChainDataProvider interface
func (s *SolscanProvider) TokenInfo(ctx context.Context, address string) (*models.TokenInfo, error) {
	url := fmt.Sprintf("%s/v2.0/token/meta?address=%s", s.baseURL, address)

	var result struct {
		Data struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	return &models.TokenInfo{
		Address: address,
		Name:    result.Data.Name,
		Symbol:  result.Data.Symbol,
	}, nil
}

// Holders implements ChainDataProvider interface
func (s *SolscanProvider) Holders(ctx context.Context, address string) ([]models.HolderInfo, error) {
	url := fmt.Sprintf("%s/v2.0/token/holders?address=%s&page_size=100", s.baseURL, address)

	var result struct {
		Data struct {
			Items []struct {
				Owner        string  `json:"owner"`
				Amount       float64 `json:"amount"`
				FirstSeen    int64   `json:"first_seen,omitempty"`
				LastActivity int64   `json:"last_activity,omitempty"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	holders := make([]models.HolderInfo, 0, len(result.Data.Items))
	for _, item := range result.Data.Items {
		holder := models.HolderInfo{
			Address: item.Owner,
			Balance: item.Amount,
		}
		if item.FirstSeen > 0 {
			t := time.Unix(item.FirstSeen, 0)
			holder.FirstSeen = &t
		}
		if item.LastActivity > 0 {
			t := time.Unix(item.LastActivity, 0)
			holder.LastActivity = &t
		}
		holders = append(holders, holder)
	}

	return holders, nil
}

// IsContract implements ChainDataProvider interface
func (s *SolscanProvider) IsContract(ctx context.Context, address string) (bool, error) {
	url := fmt.Sprintf("%s/v2.0/account/detail?address=%s", s.baseURL, address)

	var result struct {
		Data struct {
			Type       string `json:"type"`
			Executable bool   `json:"executable"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return false, err
	}

	return result.Data.Executable || result.Data.Type == "program", nil
}

// Liquidity implements ChainDataProvider interface
func (s *SolscanProvider) Liquidity(ctx context.Context, address string) (*models.LiquidityInfo, error) {
	url := fmt.Sprintf("%s/v2.0/token/liquidity?address=%s", s.baseURL, address)

	var result struct {
		Data struct {
			TotalLiquidity   float64  `json:"total_liquidity"`
			LockedLiquidity  float64  `json:"locked_liquidity"`
			LockedPercentage float64  `json:"locked_percentage"`
			LockDuration     int64    `json:"lock_duration"`
			LockExpiry       int64    `json:"lock_expiry"`
			LPHolders        []string `json:"lp_holders"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	liquidity := &models.LiquidityInfo{
		TotalLiquidity:   result.Data.TotalLiquidity,
		LockedLiquidity:  result.Data.LockedLiquidity,
		LockedPercentage: result.Data.LockedPercentage,
		LockDuration:     result.Data.LockDuration,
		LPTokenHolders:   result.Data.LPHolders,
	}
	if result.Data.LockExpiry > 0 {
		t := time.Unix(result.Data.LockExpiry, 0)
		liquidity.LockExpiry = &t
	}
	if liquidity.LPTokenHolders == nil {
		liquidity.LPTokenHolders = []string{}
	}

	return liquidity, nil
}

// Volume implements ChainDataProvider interface
func (s *SolscanProvider) Volume(ctx context.Context, address string) (*models.VolumeInfo, error) {
	url := fmt.Sprintf("%s/v2.0/token/volume?address=%s", s.baseURL, address)

	var result struct {
		Data struct {
			TotalVolume24h       float64 `json:"total_volume_24h"`
			UniqueTraders        int     `json:"unique_traders"`
			WashTradingScore     float64 `json:"wash_trading_score"`
			VolumeAuthenticity   float64 `json:"volume_authenticity"`
			TopTradersPercentage float64 `json:"top_traders_percentage"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	return &models.VolumeInfo{
		TotalVolume24h:       result.Data.TotalVolume24h,
		UniqueTraders:        result.Data.UniqueTraders,
		WashTradingScore:     result.Data.WashTradingScore,
		VolumeAuthenticity:   result.Data.VolumeAuthenticity,
		TopTradersPercentage: result.Data.TopTradersPercentage,
	}, nil
}

// SecurityIssues implements ChainDataProvider interface
func (s *SolscanProvider) SecurityIssues(ctx context.Context, address string) ([]string, error) {
	url := fmt.Sprintf("%s/v2.0/token/security?address=%s", s.baseURL, address)

	var result struct {
		Data struct {
			Issues []string `json:"issues"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	return result.Data.Issues, nil
}

// PriceHistory implements ChainDataProvider interface
func (s *SolscanProvider) PriceHistory(ctx context.Context, address string) ([]models.PricePoint, error) {
	url := fmt.Sprintf("%s/v2.0/token/price?address=%s&days=1", s.baseURL, address)

	var result struct {
		Data []struct {
			Price float64 `json:"price"`
			Time  int64   `json:"time"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	prices := make([]models.PricePoint, 0, len(result.Data))
	for _, item := range result.Data {
		prices = append(prices, models.PricePoint{
			Price:     item.Price,
			Timestamp: time.Unix(item.Time, 0),
		})
	}

	return prices, nil
}

// TradingPatterns implements ChainDataProvider interface
func (s *SolscanProvider) TradingPatterns(ctx context.Context, address string) (*models.TradingPatterns, error) {
	url := fmt.Sprintf("%s/v2.0/token/trading-patterns?address=%s", s.baseURL, address)

	var result struct {
		Data struct {
			RapidTrading      bool `json:"rapid_trading"`
			CoordinatedBuying bool `json:"coordinated_buying"`
			WashTrading       bool `json:"wash_trading"`
		} `json:"data"`
	}
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	return &models.TradingPatterns{
		RapidTrading:      result.Data.RapidTrading,
		CoordinatedBuying: result.Data.CoordinatedBuying,
		WashTrading:       result.Data.WashTrading,
	}, nil
}
