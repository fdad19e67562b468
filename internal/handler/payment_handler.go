package handler

import (
	"context"
	"net/http"
	"strings"
)

// PaymentServiceInterface は決済ハンドラーが必要とするサービスインターフェース。
type PaymentServiceInterface interface {
	CreateCheckout(ctx context.Context, accountID, origin string) (string, error)
	ConfirmCheckout(ctx context.Context, accountID, checkoutSessionID string) error
}

// PaymentHandler はプレミアム決済のHTTPハンドラー。
type PaymentHandler struct {
	service PaymentServiceInterface
	baseURL string
}

// NewPaymentHandler はPaymentHandlerを生成する。
// baseURLはOriginヘッダーが無いリクエストのリダイレクト先フォールバック。
func NewPaymentHandler(service PaymentServiceInterface, baseURL string) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		baseURL: baseURL,
	}
}

// CreateCheckout はチェックアウトセッションを作成し、決済ページのURLを返す。
// POST /api/vytvorit-platbu
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = strings.TrimSuffix(h.baseURL, "/")
	}

	url, err := h.service.CreateCheckout(r.Context(), accountID, origin)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"checkoutUrl": url})
}

// ConfirmCheckout は決済完了後の戻りで支払い状態を確認し、
// 支払い済みであればプレミアムを付与する。
// GET /api/platba-potvrzeni?session_id=cs_xxx
func (h *PaymentHandler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if err := h.service.ConfirmCheckout(r.Context(), accountID, sessionID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}
