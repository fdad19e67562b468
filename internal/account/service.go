// Package account はプロフィール管理のビジネスロジックを提供する。
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verona/verona/internal/model"
	"github.com/verona/verona/internal/repository"
	"github.com/verona/verona/internal/security"
)

// Service はアカウントプロフィールに関するビジネスロジックを提供する。
type Service struct {
	accountRepo repository.AccountRepository
	sanitizer   security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(accountRepo repository.AccountRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		accountRepo: accountRepo,
		sanitizer:   sanitizer,
	}
}

// Get は指定IDのアカウントを取得する。
func (s *Service) Get(ctx context.Context, accountID string) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, model.NewAccountNotFoundError()
	}
	return account, nil
}

// UpdateProfile はプロフィールの部分更新を適用する。
// 更新できるのはProfileUpdateが持つフィールドのみ。isAdmin/isPremiumは
// リクエストに何が含まれていても決して変更されない（型レベルで到達不能）。
// 自己紹介文はサニタイズしてから保存する。
func (s *Service) UpdateProfile(ctx context.Context, accountID string, upd model.ProfileUpdate) error {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return model.NewAccountNotFoundError()
	}

	if upd.Bio != nil {
		cleaned := s.sanitizer.Sanitize(*upd.Bio)
		upd.Bio = &cleaned
	}

	if err := s.accountRepo.UpdateProfile(ctx, accountID, upd); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	slog.Info("profile updated", slog.String("account_id", accountID))
	return nil
}
