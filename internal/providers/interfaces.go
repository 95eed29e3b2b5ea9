package providers

import (
	"context"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// ChainDataProvider 负责从链上数据源收集单个代币的数据
type ChainDataProvider interface {
	// TokenInfo retrieves basic token metadata
	TokenInfo(ctx context.Context, address string) (*models.TokenInfo, error)

	// Holders retrieves the token holder list with raw balances
	Holders(ctx context.Context, address string) ([]models.HolderInfo, error)

	// IsContract reports whether an address is a contract account
	IsContract(ctx context.Context, address string) (bool, error)

	// Liquidity retrieves pool liquidity and lock state
	Liquidity(ctx context.Context, address string) (*models.LiquidityInfo, error)

	// Volume retrieves 24h volume statistics
	Volume(ctx context.Context, address string) (*models.VolumeInfo, error)

	// SecurityIssues retrieves detected contract-level security findings
	SecurityIssues(ctx context.Context, address string) ([]string, error)

	// PriceHistory retrieves recent price samples, oldest first
	PriceHistory(ctx context.Context, address string) ([]models.PricePoint, error)

	// TradingPatterns retrieves coordinated-trading detection flags
	TradingPatterns(ctx context.Context, address string) (*models.TradingPatterns, error)
}

// SocialDataProvider 负责收集代币的社交媒体指标
type SocialDataProvider interface {
	// SocialStats retrieves social presence metrics for a token
	SocialStats(ctx context.Context, address string) (*models.SocialInfo, error)
}
