package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/songzhibin97/tokenguard/internal/utils/request"

	"github.com/songzhibin97/tokenguard/internal/ai"
	"github.com/songzhibin97/tokenguard/internal/models"
)

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// Provider collects social presence metrics from an aggregator API and
// optionally enriches them with an AI sentiment score.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
	sentiment  ai.SentimentAnalyzer // may be nil
	logger     Logger
}

// NewProvider creates a social data provider. sentiment may be nil, in which
// case SocialInfo.Sentiment stays unset.
func NewProvider(baseURL, apiKey string, sentiment ai.SentimentAnalyzer, logger Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: request.Request,
		sentiment:  sentiment,
		logger:     logger,
	}
}

// SocialStats implements SocialDataProvider interface
func (p *Provider) SocialStats(ctx context.Context, address string) (*models.SocialInfo, error) {
	url := fmt.Sprintf("%s/v1/token/%s/social", p.baseURL, address)

	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", p.apiKey).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result struct {
		TwitterMentions int  `json:"twitter_mentions"`
		TelegramMembers int  `json:"telegram_members"`
		DiscordMembers  int  `json:"discord_members"`
		WebsiteExists   bool `json:"website_exists"`
		DomainAgeDays   int  `json:"domain_age_days"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	info := &models.SocialInfo{
		TwitterMentions: result.TwitterMentions,
		TelegramMembers: result.TelegramMembers,
		DiscordMembers:  result.DiscordMembers,
		WebsiteExists:   result.WebsiteExists,
		DomainAgeDays:   result.DomainAgeDays,
	}

	// 情绪分析失败只降级，不影响其余社交指标
	if p.sentiment != nil {
		score, err := p.sentiment.AnalyzeSentiment(ctx, map[string]string{
			"twitter_mentions": fmt.Sprintf("%d", info.TwitterMentions),
			"telegram_members": fmt.Sprintf("%d", info.TelegramMembers),
			"discord_members":  fmt.Sprintf("%d", info.DiscordMembers),
		})
		if err != nil {
			p.logger.Error("sentiment analysis failed", "token", address, "error", err)
		} else {
			info.Sentiment = &score
		}
	}

	return info, nil
}
