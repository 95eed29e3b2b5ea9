package failover

import (
	"context"
	"fmt"

	"github.com/songzhibin97/tokenguard/internal/models"
	"github.com/songzhibin97/tokenguard/internal/providers"
)

// Source is a named chain data provider. A source may support only part of
// the provider surface and return errors for the rest; the failover provider
// moves on to the next source.
type Source interface {
	providers.ChainDataProvider
	Name() string
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// ChainProvider implements ChainDataProvider by trying multiple sources in
// order. The first source to answer wins.
type ChainProvider struct {
	sources []Source
	logger  Logger
}

func NewChainProvider(sources []Source, logger Logger) *ChainProvider {
	return &ChainProvider{
		sources: sources,
		logger:  logger,
	}
}

// TokenInfo implements ChainDataProvider interface
func (p *ChainProvider) TokenInfo(ctx context.Context, address string) (*models.TokenInfo, error) {
	for _, src := range p.sources {
		info, err := src.TokenInfo(ctx, address)
		if err == nil && info != nil {
			return info, nil
		}
		p.logger.Error("failed to collect token info", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect token info from all sources")
}

// Holders implements ChainDataProvider interface
func (p *ChainProvider) Holders(ctx context.Context, address string) ([]models.HolderInfo, error) {
	for _, src := range p.sources {
		holders, err := src.Holders(ctx, address)
		if err == nil {
			return holders, nil
		}
		p.logger.Error("failed to collect holders", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect holders from all sources")
}

// IsContract implements ChainDataProvider interface
func (p *ChainProvider) IsContract(ctx context.Context, address string) (bool, error) {
	for _, src := range p.sources {
		isContract, err := src.IsContract(ctx, address)
		if err == nil {
			return isContract, nil
		}
		p.logger.Error("failed to classify address", "source", src.Name(), "address", address, "error", err)
	}
	return false, fmt.Errorf("failed to classify address from all sources")
}

// Liquidity implements ChainDataProvider interface
func (p *ChainProvider) Liquidity(ctx context.Context, address string) (*models.LiquidityInfo, error) {
	for _, src := range p.sources {
		liquidity, err := src.Liquidity(ctx, address)
		if err == nil && liquidity != nil {
			return liquidity, nil
		}
		p.logger.Error("failed to collect liquidity", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect liquidity from all sources")
}

// Volume implements ChainDataProvider interface
func (p *ChainProvider) Volume(ctx context.Context, address string) (*models.VolumeInfo, error) {
	for _, src := range p.sources {
		volume, err := src.Volume(ctx, address)
		if err == nil && volume != nil {
			return volume, nil
		}
		p.logger.Error("failed to collect volume", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect volume from all sources")
}

// SecurityIssues implements ChainDataProvider interface
func (p *ChainProvider) SecurityIssues(ctx context.Context, address string) ([]string, error) {
	for _, src := range p.sources {
		issues, err := src.SecurityIssues(ctx, address)
		if err == nil {
			return issues, nil
		}
		p.logger.Error("failed to collect security issues", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect security issues from all sources")
}

// PriceHistory implements ChainDataProvider interface
func (p *ChainProvider) PriceHistory(ctx context.Context, address string) ([]models.PricePoint, error) {
	for _, src := range p.sources {
		prices, err := src.PriceHistory(ctx, address)
		if err == nil {
			return prices, nil
		}
		p.logger.Error("failed to collect price history", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect price history from all sources")
}

// TradingPatterns implements ChainDataProvider interface
func (p *ChainProvider) TradingPatterns(ctx context.Context, address string) (*models.TradingPatterns, error) {
	for _, src := range p.sources {
		patterns, err := src.TradingPatterns(ctx, address)
		if err == nil && patterns != nil {
			return patterns, nil
		}
		p.logger.Error("failed to collect trading patterns", "source", src.Name(), "token", address, "error", err)
	}
	return nil, fmt.Errorf("failed to collect trading patterns from all sources")
}
