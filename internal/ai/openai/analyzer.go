package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAnalyzer implements the SentimentAnalyzer interface using OpenAI
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates a new OpenAI analyzer instance
func NewOpenAIAnalyzer(apiKey string, model string) *OpenAIAnalyzer {
	client := openai.NewClient(apiKey)
	if model == "" {
		model = openai.GPT4 // 默认使用GPT-4
	}
	return &OpenAIAnalyzer{
		client: client,
		model:  model,
	}
}

// AnalyzeSentiment implements the SentimentAnalyzer interface
func (a *OpenAIAnalyzer) AnalyzeSentiment(ctx context.Context, socialData map[string]string) (float64, error) {
	socialDataText := ""
	for platform, content := range socialData {
		socialDataText += fmt.Sprintf("%s: %s\n", platform, content)
	}

	prompt := fmt.Sprintf(`分析以下代币社交媒体数据的市场情绪:
%s

请评估整体市场情绪，给出-1到1之间的分数：
-1表示极度负面
0表示中性
1表示极度正面

输出格式为JSON:
{
    "sentiment_score": float
}`, socialDataText)

	resp, err := a.createChatCompletion(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to analyze sentiment: %w", err)
	}

	var sentiment struct {
		Score float64 `json:"sentiment_score"`
	}

	if err := json.Unmarshal([]byte(resp), &sentiment); err != nil {
		return 0, fmt.Errorf("failed to parse sentiment results: %w", err)
	}

	return sentiment.Score, nil
}

// createChatCompletion is a helper function to make OpenAI API calls
func (a *OpenAIAnalyzer) createChatCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "你是一个专业的加密货币分析师，擅长社区情绪与风险评估。请始终以JSON格式返回分析结果。",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3, // 使用较低的temperature以获得更稳定的输出
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
