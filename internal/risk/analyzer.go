package risk

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/songzhibin97/tokenguard/internal/models"
	"github.com/songzhibin97/tokenguard/internal/providers"
)

// Logger is the minimal logging surface the risk package needs.
// *slog.Logger satisfies it.
type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// Analyzer runs the seven-factor risk pipeline for a single token.
//
// Each sub-computation is independently fault tolerant: a failing data source
// degrades that factor to a neutral or maximal-risk result instead of
// aborting the others. Only the top-level metadata fetch is fatal to a call.
type Analyzer struct {
	chain  providers.ChainDataProvider
	social providers.SocialDataProvider
	logger Logger
}

// NewAnalyzer creates an Analyzer over the given data providers.
func NewAnalyzer(chain providers.ChainDataProvider, social providers.SocialDataProvider, logger Logger) *Analyzer {
	return &Analyzer{
		chain:  chain,
		social: social,
		logger: logger,
	}
}

// AnalyzeToken performs a full risk analysis of one token.
func (a *Analyzer) AnalyzeToken(ctx context.Context, address string) (*models.TokenAnalysis, error) {
	a.logger.Info("starting analysis", "token", address)
	start := time.Now()

	info, err := a.chain.TokenInfo(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token info for %s: %w", address, err)
	}

	// 各项数据采集相互独立，失败时退化为空结构
	holders := a.collectHolders(ctx, address)
	liquidity := a.collectLiquidity(ctx, address)
	volume := a.collectVolume(ctx, address)
	social := a.collectSocial(ctx, address)

	factors := a.riskFactors(ctx, address, holders, liquidity, volume, social)
	score, level := AggregateScore(factors)

	now := time.Now()
	analysis := &models.TokenAnalysis{
		TokenAddress:      address,
		TokenName:         info.Name,
		TokenSymbol:       info.Symbol,
		RiskLevel:         level,
		RiskScore:         score,
		Confidence:        Confidence(factors),
		Holders:           holders,
		Liquidity:         liquidity,
		Volume:            volume,
		Social:            social,
		RiskFactors:       factors,
		AnalysisTimestamp: now,
		CreatedAt:         now,
	}

	a.logger.Info("analysis completed", "token", address, "risk_level", level, "elapsed", time.Since(start))
	return analysis, nil
}

// QuickCheck computes a cheap two-factor risk snapshot for the monitoring
// loop: holder concentration and liquidity security only. The two weighted
// scores are summed without renormalizing, which caps the result at 0.45
// under the fixed weights and keeps quick checks conservative. Confidence is
// a fixed 0.7.
func (a *Analyzer) QuickCheck(ctx context.Context, address string) *models.TokenRisk {
	holders := a.collectHolders(ctx, address)
	liquidity := a.collectLiquidity(ctx, address)

	hc := holderConcentrationFactor(holders)
	ls := liquiditySecurityFactor(liquidity)

	score := hc.Score*hc.Weight + ls.Score*ls.Weight

	now := time.Now()
	return &models.TokenRisk{
		TokenAddress: address,
		RiskLevel:    LevelForScore(score),
		RiskScore:    score,
		Confidence:   0.7,
		Factors: map[string]models.RiskFactor{
			FactorHolderConcentration: hc,
			FactorLiquiditySecurity:   ls,
		},
		LastUpdated: now,
		CreatedAt:   now,
	}
}

// riskFactors computes all seven factors for a token.
func (a *Analyzer) riskFactors(
	ctx context.Context,
	address string,
	holders []models.HolderInfo,
	liquidity models.LiquidityInfo,
	volume models.VolumeInfo,
	social models.SocialInfo,
) map[string]models.RiskFactor {
	factors := map[string]models.RiskFactor{
		FactorHolderConcentration: holderConcentrationFactor(holders),
		FactorLiquiditySecurity:   liquiditySecurityFactor(liquidity),
		FactorVolumeAuthenticity:  volumeAuthenticityFactor(volume),
		FactorSocialCredibility:   socialCredibilityFactor(social),
	}
	factors[FactorContractSecurity] = a.contractSecurityFactor(ctx, address)
	factors[FactorPriceStability] = a.priceStabilityFactor(ctx, address)
	factors[FactorTradingPatterns] = a.tradingPatternsFactor(ctx, address)
	return factors
}

func (a *Analyzer) contractSecurityFactor(ctx context.Context, address string) models.RiskFactor {
	issues, err := a.chain.SecurityIssues(ctx, address)
	if err != nil {
		a.logger.Error("failed to check contract security", "token", address, "error", err)
		return neutralFactor(FactorContractSecurity, "contract security")
	}
	return contractSecurityFactor(issues)
}

func (a *Analyzer) priceStabilityFactor(ctx context.Context, address string) models.RiskFactor {
	prices, err := a.chain.PriceHistory(ctx, address)
	if err != nil {
		a.logger.Error("failed to get price history", "token", address, "error", err)
		return neutralFactor(FactorPriceStability, "price stability")
	}
	return priceStabilityFactor(prices)
}

func (a *Analyzer) tradingPatternsFactor(ctx context.Context, address string) models.RiskFactor {
	patterns, err := a.chain.TradingPatterns(ctx, address)
	if err != nil {
		a.logger.Error("failed to get trading patterns", "token", address, "error", err)
		return neutralFactor(FactorTradingPatterns, "trading patterns")
	}
	return tradingPatternsFactor(*patterns)
}

// collectHolders fetches the holder list and derives supply percentages.
// Returns nil on provider failure; the concentration factor treats the
// absence of holders as maximal risk.
func (a *Analyzer) collectHolders(ctx context.Context, address string) []models.HolderInfo {
	raw, err := a.chain.Holders(ctx, address)
	if err != nil {
		a.logger.Error("failed to analyze holders", "token", address, "error", err)
		return nil
	}

	var totalSupply float64
	for _, h := range raw {
		totalSupply += h.Balance
	}

	holders := make([]models.HolderInfo, 0, len(raw))
	for _, h := range raw {
		if totalSupply > 0 {
			h.Percentage = h.Balance / totalSupply * 100
		} else {
			h.Percentage = 0
		}
		if !h.IsContract {
			isContract, err := a.chain.IsContract(ctx, h.Address)
			if err != nil {
				a.logger.Error("failed to classify holder address", "address", h.Address, "error", err)
			} else {
				h.IsContract = isContract
			}
		}
		holders = append(holders, h)
	}

	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Balance > holders[j].Balance
	})
	return holders
}

// collectLiquidity fetches liquidity state, zero-valued on failure.
func (a *Analyzer) collectLiquidity(ctx context.Context, address string) models.LiquidityInfo {
	liquidity, err := a.chain.Liquidity(ctx, address)
	if err != nil {
		a.logger.Error("failed to analyze liquidity", "token", address, "error", err)
		return models.LiquidityInfo{LPTokenHolders: []string{}}
	}
	return *liquidity
}

// collectVolume fetches volume statistics, zero-valued on failure.
func (a *Analyzer) collectVolume(ctx context.Context, address string) models.VolumeInfo {
	volume, err := a.chain.Volume(ctx, address)
	if err != nil {
		a.logger.Error("failed to analyze volume", "token", address, "error", err)
		return models.VolumeInfo{}
	}
	return *volume
}

// collectSocial fetches social metrics, zero-valued on failure.
func (a *Analyzer) collectSocial(ctx context.Context, address string) models.SocialInfo {
	social, err := a.social.SocialStats(ctx, address)
	if err != nil {
		a.logger.Error("failed to analyze social presence", "token", address, "error", err)
		return models.SocialInfo{}
	}
	return *social
}
