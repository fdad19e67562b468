package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// プレミアム商品の固定条件。
const (
	premiumProductName = "VERONA Premium"
	premiumCurrency    = "czk"
	premiumUnitAmount  = 9900 // 最小通貨単位（haléř）
)

// StripeConfig はStripe APIクライアントの設定。
type StripeConfig struct {
	SecretKey string

	// テスト用にオーバーライド可能なURL
	BaseURL string
}

// StripeClient はStripe Checkout APIによる決済セッション管理を提供する。
// Stripe APIはフォームエンコードされたボディを受け付ける。
type StripeClient struct {
	config StripeConfig
	client *http.Client
}

// NewStripeClient はStripeClientを生成する。
func NewStripeClient(config StripeConfig) *StripeClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultStripeBaseURL
	}
	return &StripeClient{
		config: config,
		client: http.DefaultClient,
	}
}

// stripeCheckoutSession はStripeのチェックアウトセッションレスポンス。
type stripeCheckoutSession struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	PaymentStatus     string `json:"payment_status"`
	ClientReferenceID string `json:"client_reference_id"`
}

// CreateCheckoutSession は固定価格・1点のチェックアウトセッションを作成する。
// client_reference_idにアカウントIDを紐付け、支払い確認時の照合に使用する。
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, accountID, successURL, cancelURL string) (*CheckoutSession, error) {
	data := url.Values{
		"mode":                   {"payment"},
		"payment_method_types[]": {"card"},
		"client_reference_id":    {accountID},
		"success_url":            {successURL},
		"cancel_url":             {cancelURL},

		"line_items[0][quantity]":                       {"1"},
		"line_items[0][price_data][currency]":           {premiumCurrency},
		"line_items[0][price_data][unit_amount]":        {fmt.Sprintf("%d", premiumUnitAmount)},
		"line_items[0][price_data][product_data][name]": {premiumProductName},
	}

	session, err := c.postForm(ctx, "/v1/checkout/sessions", data)
	if err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, fmt.Errorf("empty checkout URL in response")
	}
	return session, nil
}

// GetCheckoutSession は既存セッションの現在の状態を取得する。
func (c *StripeClient) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	return c.do(req)
}

func (c *StripeClient) postForm(ctx context.Context, path string, data url.Values) (*CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *StripeClient) do(req *http.Request) (*CheckoutSession, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var session stripeCheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout response: %w", err)
	}

	return &CheckoutSession{
		ID:                session.ID,
		URL:               session.URL,
		PaymentStatus:     session.PaymentStatus,
		ClientReferenceID: session.ClientReferenceID,
	}, nil
}

// compile-time interface check
var _ CheckoutProcessor = (*StripeClient)(nil)
