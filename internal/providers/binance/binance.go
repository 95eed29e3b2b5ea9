package binance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// MarketProvider is a fallback chain data source for tokens that are listed
// on Binance. It serves token metadata, volume statistics and price history
// from exchange market data; on-chain surfaces (holders, liquidity, contract
// findings) are not available here and return errors so a failover provider
// can move on.
type MarketProvider struct {
	client  *binance.Client
	symbols map[string]string // token address -> exchange symbol, e.g. "SOLUSDT"
}

// NewMarketProvider creates a provider over the public market data API.
// No API key is required for the endpoints used.
func NewMarketProvider(symbols map[string]string) *MarketProvider {
	return &MarketProvider{
		client:  binance.NewClient("", ""),
		symbols: symbols,
	}
}

func (p *MarketProvider) Name() string {
	return "binance"
}

func (p *MarketProvider) symbol(address string) (string, error) {
	sym, ok := p.symbols[address]
	if !ok {
		return "", fmt.Errorf("no exchange symbol mapped for %s", address)
	}
	return sym, nil
}

// TokenInfo implements ChainDataProvider interface
func (p *MarketProvider) TokenInfo(ctx context.Context, address string) (*models.TokenInfo, error) {
	sym, err := p.symbol(address)
	if err != nil {
		return nil, err
	}

	info, err := p.client.NewExchangeInfoService().Symbol(sym).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange info: %w", err)
	}

	if len(info.Symbols) == 0 {
		return nil, fmt.Errorf("symbol not found: %s", sym)
	}

	return &models.TokenInfo{
		Address: address,
		Name:    info.Symbols[0].BaseAsset,
		Symbol:  info.Symbols[0].BaseAsset,
	}, nil
}

// Holders implements ChainDataProvider interface
func (p *MarketProvider) Holders(ctx context.Context, address string) ([]models.HolderInfo, error) {
	return nil, fmt.Errorf("holder data not available from exchange market data")
}

// IsContract implements ChainDataProvider interface
func (p *MarketProvider) IsContract(ctx context.Context, address string) (bool, error) {
	return false, fmt.Errorf("account classification not available from exchange market data")
}

// Liquidity implements ChainDataProvider interface
func (p *MarketProvider) Liquidity(ctx context.Context, address string) (*models.LiquidityInfo, error) {
	return nil, fmt.Errorf("liquidity data not available from exchange market data")
}

// Volume implements ChainDataProvider interface
func (p *MarketProvider) Volume(ctx context.Context, address string) (*models.VolumeInfo, error) {
	sym, err := p.symbol(address)
	if err != nil {
		return nil, err
	}

	stats, err := p.client.NewListPriceChangeStatsService().Symbol(sym).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get 24h stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("no 24h stats for symbol: %s", sym)
	}

	volume, err := strconv.ParseFloat(stats[0].QuoteVolume, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse volume: %w", err)
	}

	// 交易所撮合的成交量视为真实成交
	return &models.VolumeInfo{
		TotalVolume24h:     volume,
		UniqueTraders:      int(stats[0].Count),
		WashTradingScore:   0,
		VolumeAuthenticity: 1,
	}, nil
}

// SecurityIssues implements ChainDataProvider interface
func (p *MarketProvider) SecurityIssues(ctx context.Context, address string) ([]string, error) {
	return nil, fmt.Errorf("contract findings not available from exchange market data")
}

// PriceHistory implements ChainDataProvider interface
func (p *MarketProvider) PriceHistory(ctx context.Context, address string) ([]models.PricePoint, error) {
	sym, err := p.symbol(address)
	if err != nil {
		return nil, err
	}

	klines, err := p.client.NewKlinesService().
		Symbol(sym).
		Interval("1h").
		Limit(24).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get klines: %w", err)
	}

	prices := make([]models.PricePoint, 0, len(klines))
	for _, k := range klines {
		price, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse close price: %w", err)
		}
		prices = append(prices, models.PricePoint{
			Price:     price,
			Timestamp: time.UnixMilli(k.CloseTime),
		})
	}

	return prices, nil
}

// TradingPatterns implements ChainDataProvider interface
func (p *MarketProvider) TradingPatterns(ctx context.Context, address string) (*models.TradingPatterns, error) {
	return nil, fmt.Errorf("trading pattern detection not available from exchange market data")
}
