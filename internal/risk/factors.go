package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/songzhibin97/tokenguard/internal/models"
)

// Factor names. Each maps to a fixed weight in riskWeights.
const (
	FactorHolderConcentration = "holder_concentration"
	FactorLiquiditySecurity   = "liquidity_security"
	FactorVolumeAuthenticity  = "volume_authenticity"
	FactorSocialCredibility   = "social_credibility"
	FactorContractSecurity    = "contract_security"
	FactorPriceStability      = "price_stability"
	FactorTradingPatterns     = "trading_patterns"
)

// riskWeights 风险因子权重表，总和必须为 1.0
var riskWeights = map[string]float64{
	FactorHolderConcentration: 0.25,
	FactorLiquiditySecurity:   0.20,
	FactorVolumeAuthenticity:  0.15,
	FactorSocialCredibility:   0.10,
	FactorContractSecurity:    0.15,
	FactorPriceStability:      0.10,
	FactorTradingPatterns:     0.05,
}

// Weight returns the fixed weight for a factor name, 0 for unknown names.
func Weight(name string) float64 {
	return riskWeights[name]
}

// holderConcentrationFactor scores top-5 holder concentration.
// Holders must be sorted by balance descending.
func holderConcentrationFactor(holders []models.HolderInfo) models.RiskFactor {
	if len(holders) == 0 {
		return models.RiskFactor{
			Name:        FactorHolderConcentration,
			Description: "No holder data available",
			Score:       1.0,
			Weight:      riskWeights[FactorHolderConcentration],
			Evidence:    []string{"No holder data found"},
		}
	}

	balances := make([]float64, len(holders))
	for i, h := range holders {
		balances[i] = h.Balance
	}
	gini := giniCoefficient(balances)

	var top5 float64
	for i, h := range holders {
		if i >= 5 {
			break
		}
		top5 += h.Percentage
	}

	var score float64
	var level string
	switch {
	case top5 > 80:
		score, level = 1.0, "CRITICAL"
	case top5 > 60:
		score, level = 0.8, "HIGH"
	case top5 > 40:
		score, level = 0.6, "MEDIUM"
	default:
		score, level = 0.3, "LOW"
	}

	evidence := []string{
		fmt.Sprintf("Top 5 holders control %.1f%% of supply", top5),
		fmt.Sprintf("Gini coefficient: %.3f", gini),
		fmt.Sprintf("Total holders: %d", len(holders)),
	}

	recommendation := "Holder distribution looks healthy"
	if score > 0.6 {
		recommendation = "Consider diversifying token distribution"
	}

	return models.RiskFactor{
		Name:           FactorHolderConcentration,
		Description:    fmt.Sprintf("Token holder concentration analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorHolderConcentration],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// liquiditySecurityFactor scores the locked share of pool liquidity.
func liquiditySecurityFactor(liquidity models.LiquidityInfo) models.RiskFactor {
	if liquidity.TotalLiquidity == 0 {
		return models.RiskFactor{
			Name:        FactorLiquiditySecurity,
			Description: "No liquidity data available",
			Score:       1.0,
			Weight:      riskWeights[FactorLiquiditySecurity],
			Evidence:    []string{"No liquidity found"},
		}
	}

	var score float64
	var level string
	switch {
	case liquidity.LockedPercentage < 20:
		score, level = 1.0, "CRITICAL"
	case liquidity.LockedPercentage < 50:
		score, level = 0.8, "HIGH"
	case liquidity.LockedPercentage < 80:
		score, level = 0.5, "MEDIUM"
	default:
		score, level = 0.2, "LOW"
	}

	evidence := []string{
		fmt.Sprintf("Total liquidity: %.2f SOL", liquidity.TotalLiquidity),
		fmt.Sprintf("Locked percentage: %.1f%%", liquidity.LockedPercentage),
		fmt.Sprintf("LP token holders: %d", len(liquidity.LPTokenHolders)),
	}
	if liquidity.LockExpiry != nil {
		evidence = append(evidence, fmt.Sprintf("Lock expires: %s", liquidity.LockExpiry.Format("2006-01-02 15:04:05")))
	}

	recommendation := "Liquidity security looks good"
	if score > 0.6 {
		recommendation = "Ensure liquidity is properly locked"
	}

	return models.RiskFactor{
		Name:           FactorLiquiditySecurity,
		Description:    fmt.Sprintf("Liquidity security analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorLiquiditySecurity],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// volumeAuthenticityFactor scores the wash-trading share of reported volume.
func volumeAuthenticityFactor(volume models.VolumeInfo) models.RiskFactor {
	var score float64
	var level string
	switch {
	case volume.WashTradingScore > 0.8:
		score, level = 1.0, "CRITICAL"
	case volume.WashTradingScore > 0.6:
		score, level = 0.8, "HIGH"
	case volume.WashTradingScore > 0.4:
		score, level = 0.5, "MEDIUM"
	default:
		score, level = 0.2, "LOW"
	}

	evidence := []string{
		fmt.Sprintf("24h volume: %.2f SOL", volume.TotalVolume24h),
		fmt.Sprintf("Unique traders: %d", volume.UniqueTraders),
		fmt.Sprintf("Wash trading score: %.3f", volume.WashTradingScore),
		fmt.Sprintf("Volume authenticity: %.3f", volume.VolumeAuthenticity),
	}

	recommendation := "Volume appears organic"
	if score > 0.6 {
		recommendation = "Volume appears artificial - exercise caution"
	}

	return models.RiskFactor{
		Name:           FactorVolumeAuthenticity,
		Description:    fmt.Sprintf("Volume authenticity analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorVolumeAuthenticity],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// socialCredibilityFactor scores social presence additively; the risk score is
// 1 minus the accumulated presence score, floored at 0.
func socialCredibilityFactor(social models.SocialInfo) models.RiskFactor {
	var socialScore float64

	switch {
	case social.TwitterMentions > 100:
		socialScore += 0.3
	case social.TwitterMentions > 10:
		socialScore += 0.1
	}

	switch {
	case social.TelegramMembers > 1000:
		socialScore += 0.3
	case social.TelegramMembers > 100:
		socialScore += 0.1
	}

	if social.WebsiteExists {
		socialScore += 0.2
	}
	if social.DomainAgeDays > 30 {
		socialScore += 0.2
	}

	score := math.Max(0, 1-socialScore)

	var level string
	switch {
	case score > 0.8:
		level = "HIGH"
	case score > 0.5:
		level = "MEDIUM"
	default:
		level = "LOW"
	}

	domainAge := "Unknown"
	if social.DomainAgeDays > 0 {
		domainAge = fmt.Sprintf("%d", social.DomainAgeDays)
	}
	evidence := []string{
		fmt.Sprintf("Twitter mentions: %d", social.TwitterMentions),
		fmt.Sprintf("Telegram members: %d", social.TelegramMembers),
		fmt.Sprintf("Website exists: %t", social.WebsiteExists),
		fmt.Sprintf("Domain age: %s days", domainAge),
	}

	recommendation := "Social credibility looks good"
	if score > 0.6 {
		recommendation = "Build stronger social media presence"
	}

	return models.RiskFactor{
		Name:           FactorSocialCredibility,
		Description:    fmt.Sprintf("Social credibility analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorSocialCredibility],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// contractSecurityFactor scores the number of detected contract findings.
func contractSecurityFactor(issues []string) models.RiskFactor {
	var score float64
	var level string
	switch {
	case len(issues) > 5:
		score, level = 1.0, "CRITICAL"
	case len(issues) > 3:
		score, level = 0.8, "HIGH"
	case len(issues) > 1:
		score, level = 0.5, "MEDIUM"
	default:
		score, level = 0.2, "LOW"
	}

	evidence := issues
	if len(evidence) == 0 {
		evidence = []string{"No security issues detected"}
	}

	recommendation := "Contract security looks good"
	if score > 0.6 {
		recommendation = "Address security concerns before trading"
	}

	return models.RiskFactor{
		Name:           FactorContractSecurity,
		Description:    fmt.Sprintf("Contract security analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorContractSecurity],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// priceStabilityFactor scores relative price volatility (stdev/mean).
func priceStabilityFactor(prices []models.PricePoint) models.RiskFactor {
	if len(prices) < 2 {
		return models.RiskFactor{
			Name:        FactorPriceStability,
			Description: "Insufficient price data",
			Score:       0.5,
			Weight:      riskWeights[FactorPriceStability],
			Evidence:    []string{"Not enough price history"},
		}
	}

	values := make([]float64, len(prices))
	for i, p := range prices {
		values[i] = p.Price
	}
	volatility := relativeVolatility(values)

	var score float64
	var level string
	switch {
	case volatility > 0.5:
		score, level = 1.0, "CRITICAL"
	case volatility > 0.3:
		score, level = 0.8, "HIGH"
	case volatility > 0.1:
		score, level = 0.5, "MEDIUM"
	default:
		score, level = 0.2, "LOW"
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	evidence := []string{
		fmt.Sprintf("Price volatility: %.3f", volatility),
		fmt.Sprintf("Price range: %.6f - %.6f", lo, hi),
		fmt.Sprintf("Data points: %d", len(prices)),
	}

	recommendation := "Price appears stable"
	if score > 0.6 {
		recommendation = "High volatility - trade with caution"
	}

	return models.RiskFactor{
		Name:           FactorPriceStability,
		Description:    fmt.Sprintf("Price stability analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorPriceStability],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// tradingPatternsFactor scores the number of suspicious pattern flags set.
func tradingPatternsFactor(patterns models.TradingPatterns) models.RiskFactor {
	var suspicious []string
	if patterns.RapidTrading {
		suspicious = append(suspicious, "Rapid trading detected")
	}
	if patterns.CoordinatedBuying {
		suspicious = append(suspicious, "Coordinated buying detected")
	}
	if patterns.WashTrading {
		suspicious = append(suspicious, "Wash trading detected")
	}

	var score float64
	var level string
	switch {
	case len(suspicious) > 2:
		score, level = 1.0, "CRITICAL"
	case len(suspicious) > 1:
		score, level = 0.8, "HIGH"
	case len(suspicious) > 0:
		score, level = 0.5, "MEDIUM"
	default:
		score, level = 0.2, "LOW"
	}

	evidence := suspicious
	if len(evidence) == 0 {
		evidence = []string{"No suspicious patterns detected"}
	}

	recommendation := "Trading patterns appear normal"
	if score > 0.6 {
		recommendation = "Suspicious trading patterns detected"
	}

	return models.RiskFactor{
		Name:           FactorTradingPatterns,
		Description:    fmt.Sprintf("Trading patterns analysis (%s)", level),
		Score:          score,
		Weight:         riskWeights[FactorTradingPatterns],
		Evidence:       evidence,
		Recommendation: recommendation,
	}
}

// neutralFactor is the degraded result when a factor's data source fails.
func neutralFactor(name, what string) models.RiskFactor {
	return models.RiskFactor{
		Name:        name,
		Description: fmt.Sprintf("%s analysis failed", what),
		Score:       0.5,
		Weight:      riskWeights[name],
		Evidence:    []string{fmt.Sprintf("Unable to analyze %s", what)},
	}
}

// giniCoefficient measures inequality over holder balances.
// 0 means perfectly equal, (n-1)/n is the maximal bound for n values.
// Returns 0 for fewer than 2 values.
func giniCoefficient(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var cumsum, total float64
	for i, v := range sorted {
		cumsum += v * float64(i+1)
		total += v
	}
	if total == 0 {
		return 0
	}

	return (2*cumsum)/(n*total) - (n+1)/n
}

// relativeVolatility is the population standard deviation divided by the mean.
// Returns 1.0 when the mean is not positive.
func relativeVolatility(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean <= 0 {
		return 1.0
	}

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return math.Sqrt(variance) / mean
}
