package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel          = "gemini-2.5-flash"
)

// GeminiConfig はGemini APIクライアントの設定。
type GeminiConfig struct {
	APIKey string

	// テスト用にオーバーライド可能なURL
	BaseURL string
}

// GeminiClient はGoogle Gemini APIによるテキスト生成を提供する。
// 外部APIのレート制限を尊重するため、送信はrate.Limiterでペーシングする。
type GeminiClient struct {
	config  GeminiConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewGeminiClient はGeminiClientを生成する。
// 毎秒2リクエスト、バースト4で送信をペーシングする。
func NewGeminiClient(config GeminiConfig) *GeminiClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultGeminiBaseURL
	}
	return &GeminiClient{
		config:  config,
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// geminiRequest はgenerateContentエンドポイントのリクエストボディ。
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse はgenerateContentエンドポイントのレスポンス。
// 候補のパートを連結したものを生成テキストとして扱う。
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText はプロンプトを送信し、モデルの生テキスト出力を返す。
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.config.BaseURL, geminiModel, c.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed with status %d: %s", resp.StatusCode, string(body))
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse generation response: %w", err)
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("empty candidates in generation response")
	}

	var sb strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty text in generation response")
	}

	return sb.String(), nil
}

// compile-time interface check
var _ TextGenerator = (*GeminiClient)(nil)
