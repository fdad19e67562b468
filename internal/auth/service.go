// Package auth はOAuth認証フロー、セッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verona/verona/internal/model"
	"github.com/verona/verona/internal/repository"
)

// OAuthUserInfo はOAuthプロバイダーから取得したユーザー情報を表す。
type OAuthUserInfo struct {
	ProviderUserID string
	Email          string
	GivenName      string
	FamilyName     string
}

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
// テストではfakeに差し替える。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをトークンに交換し、ユーザー情報を取得する。
	ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int    // セッション有効期間（秒）
	AdminEmail    string // 管理者として扱うメールアドレス
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	oauth       OAuthProvider
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	oauth OAuthProvider,
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		oauth:       oauth,
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// GetLoginURL はOAuth認証URLを生成する。
func (s *Service) GetLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

// HandleCallback はOAuthコールバックを処理し、セッションを発行する。
// 未登録ユーザーの場合はaccountsレコードを自動作成する。
// 検証済みメールアドレスが設定済みの管理者アドレスと一致する場合、
// ログインのたびにisAdmin/isPremiumを強制的にtrueへ戻す。
// 手動で降格されても次回ログインで再昇格する（意図された信頼ポリシー）。
func (s *Service) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	// 1. 認可コードをトークンに交換し、ユーザー情報を取得
	userInfo, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	isAdmin := userInfo.Email == s.config.AdminEmail

	// 2. Google IDで既存アカウントを検索
	account, err := s.accountRepo.FindByGoogleID(ctx, userInfo.ProviderUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	var accountID string

	if account == nil {
		// 3a. 新規アカウントを作成
		now := time.Now()
		newAccount := &model.Account{
			ID:         uuid.New().String(),
			GoogleID:   userInfo.ProviderUserID,
			Email:      userInfo.Email,
			GivenName:  userInfo.GivenName,
			FamilyName: userInfo.FamilyName,
			IsAdmin:    isAdmin,
			IsPremium:  isAdmin,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := s.accountRepo.Create(ctx, newAccount); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}

		accountID = newAccount.ID
		slog.Info("new account created",
			slog.String("account_id", accountID),
			slog.Bool("is_admin", isAdmin),
		)
	} else {
		accountID = account.ID

		// 3b. 管理者メールは毎回ログイン時に再昇格する
		if isAdmin && (!account.IsAdmin || !account.IsPremium) {
			if err := s.accountRepo.SetFlags(ctx, accountID, true, true); err != nil {
				return nil, fmt.Errorf("failed to elevate admin account: %w", err)
			}
			slog.Info("admin account re-elevated", slog.String("account_id", accountID))
		}

		slog.Info("existing account logged in", slog.String("account_id", accountID))
	}

	// 4. セッションを発行
	session, err := s.createSession(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Logout はセッションを破棄する。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out", slog.String("session_id", sessionID))
	return nil
}

// GetCurrentAccount はセッションから現在のアカウントを取得する。
// セッションが無効または期限切れの場合はnilを返す（エラーにはしない）。
func (s *Service) GetCurrentAccount(ctx context.Context, sessionID string) (*model.Account, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	account, err := s.accountRepo.FindByID(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return account, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, accountID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		AccountID: accountID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
