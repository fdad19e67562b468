// Package payment はプレミアム購入の決済処理を提供する。
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verona/verona/internal/model"
	"github.com/verona/verona/internal/repository"
)

// CheckoutSession は決済プロセッサー側のチェックアウトセッションを表す。
type CheckoutSession struct {
	ID string
	// URL はホスト型決済ページのURL。作成直後のみ有効。
	URL string
	// PaymentStatus は支払い状態（"paid" / "unpaid" など）。
	PaymentStatus string
	// ClientReferenceID は作成時に紐付けたアカウントID。
	ClientReferenceID string
}

// CheckoutProcessor は外部決済プロセッサーへのインターフェース。
// テストではfakeに差し替える。
type CheckoutProcessor interface {
	// CreateCheckoutSession は固定価格・1点のチェックアウトセッションを作成する。
	CreateCheckoutSession(ctx context.Context, accountID, successURL, cancelURL string) (*CheckoutSession, error)
	// GetCheckoutSession は既存セッションの現在の状態を取得する。
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// CheckoutMetrics は決済イベントの記録に必要なインターフェース。
type CheckoutMetrics interface {
	RecordCheckoutCreated()
	RecordPremiumActivated()
}

// Service は決済に関するビジネスロジックを提供する。
type Service struct {
	processor   CheckoutProcessor
	accountRepo repository.AccountRepository
	metrics     CheckoutMetrics
}

// NewService はServiceを生成する。
func NewService(processor CheckoutProcessor, accountRepo repository.AccountRepository, metrics CheckoutMetrics) *Service {
	return &Service{
		processor:   processor,
		accountRepo: accountRepo,
		metrics:     metrics,
	}
}

// CreateCheckout はプレミアム購入のチェックアウトセッションを作成し、
// ホスト型決済ページのURLを返す。
// リダイレクト先は呼び出し元オリジンから導出する。
func (s *Service) CreateCheckout(ctx context.Context, accountID, origin string) (string, error) {
	successURL := origin + "/?platba=uspech&session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/?platba=zrusena"

	session, err := s.processor.CreateCheckoutSession(ctx, accountID, successURL, cancelURL)
	if err != nil {
		slog.Error("checkout session creation failed",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
		return "", model.NewPaymentFailedError(err.Error())
	}

	s.metrics.RecordCheckoutCreated()
	slog.Info("checkout session created",
		slog.String("account_id", accountID),
		slog.String("checkout_session_id", session.ID),
	)
	return session.URL, nil
}

// ConfirmCheckout は決済完了後の戻りで呼ばれ、セッションの支払い状態を
// プロセッサーから再取得して確認する。支払い済みかつセッションが
// 操作者アカウントに紐付いている場合のみプレミアムを付与する。
// クライアントが申告する状態は信用せず、必ずプロセッサーに照会する。
func (s *Service) ConfirmCheckout(ctx context.Context, accountID, checkoutSessionID string) error {
	if checkoutSessionID == "" {
		return model.NewInvalidRequestError("session_id is required")
	}

	session, err := s.processor.GetCheckoutSession(ctx, checkoutSessionID)
	if err != nil {
		return model.NewPaymentFailedError(err.Error())
	}

	if session.PaymentStatus != "paid" {
		return model.NewPaymentFailedError(fmt.Sprintf("payment not completed: %s", session.PaymentStatus))
	}
	if session.ClientReferenceID != accountID {
		// 他人のセッションIDではプレミアムを得られない
		return model.NewForbiddenError()
	}

	if err := s.accountRepo.SetPremium(ctx, accountID, true); err != nil {
		return fmt.Errorf("failed to set premium flag: %w", err)
	}

	s.metrics.RecordPremiumActivated()
	slog.Info("premium activated",
		slog.String("account_id", accountID),
		slog.String("checkout_session_id", checkoutSessionID),
	)
	return nil
}
