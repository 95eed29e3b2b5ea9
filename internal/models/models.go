package models

import "time"

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Rank returns the ordinal position of the level, low < medium < high < critical.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelLow:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return -1
	}
}

// AlertType 预警类型
type AlertType string

const (
	AlertHolderConcentration AlertType = "holder_concentration"
	AlertLiquidityRemoval    AlertType = "liquidity_removal"
	AlertWashTrading         AlertType = "wash_trading"
	AlertHoneypot            AlertType = "honeypot"
	AlertBundlerActivity     AlertType = "bundler_activity"
	AlertPriceManipulation   AlertType = "price_manipulation"
	AlertSuspiciousActivity  AlertType = "suspicious_activity"
	AlertHighRisk            AlertType = "high_risk"
)

// RiskFactor 单项风险因子评分结果
type RiskFactor struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Score          float64  `json:"score"`  // 0-1, higher is riskier
	Weight         float64  `json:"weight"` // 0-1, fixed per factor name
	Evidence       []string `json:"evidence"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// HolderInfo 持有人信息
type HolderInfo struct {
	Address      string     `json:"address"`
	Balance      float64    `json:"balance"`
	Percentage   float64    `json:"percentage"` // 0-100, share of total supply
	IsContract   bool       `json:"is_contract"`
	FirstSeen    *time.Time `json:"first_seen,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// LiquidityInfo 流动性信息
type LiquidityInfo struct {
	TotalLiquidity   float64    `json:"total_liquidity"`
	LockedLiquidity  float64    `json:"locked_liquidity"`
	LockedPercentage float64    `json:"locked_percentage"` // 0-100
	LockDuration     int64      `json:"lock_duration,omitempty"` // seconds
	LockExpiry       *time.Time `json:"lock_expiry,omitempty"`
	LPTokenHolders   []string   `json:"lp_token_holders"`
}

// VolumeInfo 成交量分析信息
type VolumeInfo struct {
	TotalVolume24h       float64 `json:"total_volume_24h"`
	UniqueTraders        int     `json:"unique_traders"`
	WashTradingScore     float64 `json:"wash_trading_score"` // 0-1
	VolumeAuthenticity   float64 `json:"volume_authenticity"` // 0-1
	TopTradersPercentage float64 `json:"top_traders_percentage"`
}

// SocialInfo 社交媒体信息
type SocialInfo struct {
	TwitterMentions int      `json:"twitter_mentions"`
	TelegramMembers int      `json:"telegram_members"`
	DiscordMembers  int      `json:"discord_members"`
	WebsiteExists   bool     `json:"website_exists"`
	DomainAgeDays   int      `json:"domain_age_days,omitempty"`
	Sentiment       *float64 `json:"sentiment,omitempty"` // -1..1 when available
}

// PricePoint 价格历史采样点
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// TradingPatterns 交易模式检测标志
type TradingPatterns struct {
	RapidTrading      bool `json:"rapid_trading"`
	CoordinatedBuying bool `json:"coordinated_buying"`
	WashTrading       bool `json:"wash_trading"`
}

// TokenInfo 代币基本信息
type TokenInfo struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
}

// TokenAnalysis 完整的代币风险分析结果
type TokenAnalysis struct {
	TokenAddress string    `json:"token_address"`
	TokenName    string    `json:"token_name,omitempty"`
	TokenSymbol  string    `json:"token_symbol,omitempty"`
	RiskLevel    RiskLevel `json:"risk_level"`
	RiskScore    float64   `json:"risk_score"` // 0-1
	Confidence   float64   `json:"confidence"` // 0-1

	Holders   []HolderInfo  `json:"holders"`
	Liquidity LiquidityInfo `json:"liquidity"`
	Volume    VolumeInfo    `json:"volume"`
	Social    SocialInfo    `json:"social"`

	RiskFactors map[string]RiskFactor `json:"risk_factors"`

	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
	CreatedAt         time.Time `json:"created_at"`
}

// TokenRisk 监控循环产出的轻量风险快照
type TokenRisk struct {
	TokenAddress string                `json:"token_address"`
	RiskLevel    RiskLevel             `json:"risk_level"`
	RiskScore    float64               `json:"risk_score"`
	Confidence   float64               `json:"confidence"`
	Factors      map[string]RiskFactor `json:"factors"`
	LastUpdated  time.Time             `json:"last_updated"`
	CreatedAt    time.Time             `json:"created_at"`
}

// Alert 风险预警记录
type Alert struct {
	ID           int64      `json:"id,omitempty"`
	TokenAddress string     `json:"token_address"`
	AlertType    AlertType  `json:"alert_type"`
	RiskLevel    RiskLevel  `json:"risk_level"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Severity     int        `json:"severity"` // 1-5
	FactorName   string     `json:"factor_name,omitempty"`
	FactorScore  float64    `json:"factor_score,omitempty"`
	Note         string     `json:"note,omitempty"`
	IsResolved   bool       `json:"is_resolved"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}
