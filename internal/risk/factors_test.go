package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/tokenguard/internal/models"
)

func TestHolderConcentrationFactor(t *testing.T) {
	tests := []struct {
		name      string
		holders   []models.HolderInfo
		wantScore float64
	}{
		{
			name: "single dominant holder",
			holders: []models.HolderInfo{
				{Address: "h1", Balance: 90, Percentage: 90},
				{Address: "h2", Balance: 2.5, Percentage: 2.5},
				{Address: "h3", Balance: 2.5, Percentage: 2.5},
				{Address: "h4", Balance: 2.5, Percentage: 2.5},
				{Address: "h5", Balance: 2.5, Percentage: 2.5},
			},
			wantScore: 1.0,
		},
		{
			name: "moderate concentration",
			holders: []models.HolderInfo{
				{Address: "h1", Balance: 30, Percentage: 30},
				{Address: "h2", Balance: 20, Percentage: 20},
				{Address: "h3", Balance: 15, Percentage: 15},
				{Address: "h4", Balance: 10, Percentage: 10},
				{Address: "h5", Balance: 5, Percentage: 5},
				{Address: "h6", Balance: 20, Percentage: 20},
			},
			wantScore: 0.8, // top5 = 80%, falls in the >60 band
		},
		{
			name: "mild concentration",
			holders: []models.HolderInfo{
				{Address: "h1", Balance: 10, Percentage: 10},
				{Address: "h2", Balance: 10, Percentage: 10},
				{Address: "h3", Balance: 10, Percentage: 10},
				{Address: "h4", Balance: 10, Percentage: 10},
				{Address: "h5", Balance: 10, Percentage: 10},
				{Address: "h6", Balance: 10, Percentage: 10},
				{Address: "h7", Balance: 10, Percentage: 10},
				{Address: "h8", Balance: 10, Percentage: 10},
				{Address: "h9", Balance: 10, Percentage: 10},
				{Address: "h10", Balance: 10, Percentage: 10},
			},
			wantScore: 0.6, // top5 = 50%, falls in the >40 band
		},
		{
			name: "well distributed",
			holders: []models.HolderInfo{
				{Address: "h1", Balance: 8, Percentage: 8},
				{Address: "h2", Balance: 8, Percentage: 8},
				{Address: "h3", Balance: 8, Percentage: 8},
				{Address: "h4", Balance: 8, Percentage: 8},
				{Address: "h5", Balance: 8, Percentage: 8},
				{Address: "h6", Balance: 8, Percentage: 8},
			},
			wantScore: 0.3, // top5 = 40%, 不超过 40，落在最低档
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := holderConcentrationFactor(tt.holders)
			assert.Equal(t, FactorHolderConcentration, factor.Name)
			assert.Equal(t, 0.25, factor.Weight)
			assert.NotEmpty(t, factor.Evidence)
			assert.InDelta(t, tt.wantScore, factor.Score, 1e-9)
		})
	}
}

func TestHolderConcentrationFactor_NoData(t *testing.T) {
	factor := holderConcentrationFactor(nil)

	assert.Equal(t, 1.0, factor.Score)
	require.NotEmpty(t, factor.Evidence)
	assert.Equal(t, "No holder data found", factor.Evidence[0])
}

func TestLiquiditySecurityFactor(t *testing.T) {
	tests := []struct {
		name      string
		liquidity models.LiquidityInfo
		wantScore float64
	}{
		{
			name:      "mostly unlocked",
			liquidity: models.LiquidityInfo{TotalLiquidity: 1000, LockedPercentage: 15},
			wantScore: 1.0,
		},
		{
			name:      "partially locked",
			liquidity: models.LiquidityInfo{TotalLiquidity: 1000, LockedPercentage: 45},
			wantScore: 0.8,
		},
		{
			name:      "mostly locked",
			liquidity: models.LiquidityInfo{TotalLiquidity: 1000, LockedPercentage: 70},
			wantScore: 0.5,
		},
		{
			name:      "well locked",
			liquidity: models.LiquidityInfo{TotalLiquidity: 1000, LockedPercentage: 85},
			wantScore: 0.2,
		},
		{
			name:      "no liquidity at all",
			liquidity: models.LiquidityInfo{},
			wantScore: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := liquiditySecurityFactor(tt.liquidity)
			assert.Equal(t, tt.wantScore, factor.Score)
			assert.Equal(t, 0.20, factor.Weight)
			assert.NotEmpty(t, factor.Evidence)
		})
	}
}

func TestLiquiditySecurityFactor_LockExpiryEvidence(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	factor := liquiditySecurityFactor(models.LiquidityInfo{
		TotalLiquidity:   500,
		LockedPercentage: 90,
		LockExpiry:       &expiry,
	})

	assert.Contains(t, factor.Evidence, "Lock expires: 2026-06-01 00:00:00")
}

func TestVolumeAuthenticityFactor(t *testing.T) {
	tests := []struct {
		name      string
		wash      float64
		wantScore float64
	}{
		{name: "heavy wash trading", wash: 0.9, wantScore: 1.0},
		{name: "elevated wash trading", wash: 0.7, wantScore: 0.8},
		{name: "some wash trading", wash: 0.5, wantScore: 0.5},
		{name: "organic volume", wash: 0.3, wantScore: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := volumeAuthenticityFactor(models.VolumeInfo{
				TotalVolume24h:   1000,
				UniqueTraders:    50,
				WashTradingScore: tt.wash,
			})
			assert.Equal(t, tt.wantScore, factor.Score)
			assert.Equal(t, 0.15, factor.Weight)
		})
	}
}

func TestSocialCredibilityFactor(t *testing.T) {
	tests := []struct {
		name      string
		social    models.SocialInfo
		wantScore float64
	}{
		{
			name: "full social presence",
			social: models.SocialInfo{
				TwitterMentions: 150,
				TelegramMembers: 1500,
				WebsiteExists:   true,
				DomainAgeDays:   60,
			},
			wantScore: 0, // 0.3+0.3+0.2+0.2 = 1.0 presence
		},
		{
			name: "partial presence",
			social: models.SocialInfo{
				TwitterMentions: 50,
				TelegramMembers: 500,
				WebsiteExists:   true,
			},
			wantScore: 0.6, // 0.1+0.1+0.2 = 0.4 presence
		},
		{
			name:      "no presence",
			social:    models.SocialInfo{},
			wantScore: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := socialCredibilityFactor(tt.social)
			assert.InDelta(t, tt.wantScore, factor.Score, 1e-9)
			assert.Equal(t, 0.10, factor.Weight)
		})
	}
}

func TestContractSecurityFactor(t *testing.T) {
	tests := []struct {
		name      string
		issues    []string
		wantScore float64
	}{
		{name: "many findings", issues: []string{"a", "b", "c", "d", "e", "f"}, wantScore: 1.0},
		{name: "several findings", issues: []string{"a", "b", "c", "d"}, wantScore: 0.8},
		{name: "a couple of findings", issues: []string{"a", "b"}, wantScore: 0.5},
		{name: "single finding", issues: []string{"a"}, wantScore: 0.2},
		{name: "clean contract", issues: nil, wantScore: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := contractSecurityFactor(tt.issues)
			assert.Equal(t, tt.wantScore, factor.Score)
			assert.NotEmpty(t, factor.Evidence)
		})
	}
}

func TestPriceStabilityFactor(t *testing.T) {
	prices := func(values ...float64) []models.PricePoint {
		points := make([]models.PricePoint, len(values))
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, v := range values {
			points[i] = models.PricePoint{Price: v, Timestamp: base.Add(time.Duration(i) * time.Hour)}
		}
		return points
	}

	t.Run("insufficient data", func(t *testing.T) {
		factor := priceStabilityFactor(prices(1.0))
		assert.Equal(t, 0.5, factor.Score)
		assert.Contains(t, factor.Evidence, "Not enough price history")
	})

	t.Run("stable price", func(t *testing.T) {
		factor := priceStabilityFactor(prices(1.0, 1.01, 0.99, 1.0))
		assert.Equal(t, 0.2, factor.Score)
	})

	t.Run("volatile price", func(t *testing.T) {
		// stdev/mean well above 0.5
		factor := priceStabilityFactor(prices(1.0, 3.0, 0.2, 2.5))
		assert.Equal(t, 1.0, factor.Score)
	})
}

func TestTradingPatternsFactor(t *testing.T) {
	tests := []struct {
		name      string
		patterns  models.TradingPatterns
		wantScore float64
	}{
		{
			name:      "all flags",
			patterns:  models.TradingPatterns{RapidTrading: true, CoordinatedBuying: true, WashTrading: true},
			wantScore: 1.0,
		},
		{
			name:      "two flags",
			patterns:  models.TradingPatterns{RapidTrading: true, WashTrading: true},
			wantScore: 0.8,
		},
		{
			name:      "one flag",
			patterns:  models.TradingPatterns{CoordinatedBuying: true},
			wantScore: 0.5,
		},
		{
			name:      "clean",
			patterns:  models.TradingPatterns{},
			wantScore: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := tradingPatternsFactor(tt.patterns)
			assert.Equal(t, tt.wantScore, factor.Score)
			assert.Equal(t, 0.05, factor.Weight)
		})
	}
}

func TestGiniCoefficient(t *testing.T) {
	t.Run("equal balances", func(t *testing.T) {
		gini := giniCoefficient([]float64{20, 20, 20, 20, 20})
		assert.InDelta(t, 0.0, gini, 1e-9)
	})

	t.Run("single dominant holder", func(t *testing.T) {
		// 接近上界 (n-1)/n = 0.8
		gini := giniCoefficient([]float64{1, 1, 1, 1, 96})
		assert.InDelta(t, 0.76, gini, 1e-9)
		assert.Greater(t, gini, 0.7)
	})

	t.Run("fewer than two holders", func(t *testing.T) {
		assert.Equal(t, 0.0, giniCoefficient([]float64{100}))
		assert.Equal(t, 0.0, giniCoefficient(nil))
	})
}

func TestRelativeVolatility(t *testing.T) {
	t.Run("constant series", func(t *testing.T) {
		assert.InDelta(t, 0.0, relativeVolatility([]float64{2, 2, 2}), 1e-9)
	})

	t.Run("non-positive mean", func(t *testing.T) {
		assert.Equal(t, 1.0, relativeVolatility([]float64{0, 0}))
	})
}
