// Package trip は旅程の保存・更新・コメントに関するビジネスロジックを提供する。
package trip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verona/verona/internal/model"
	"github.com/verona/verona/internal/repository"
	"github.com/verona/verona/internal/security"
)

// 保存日とコメント時刻の表示フォーマット。
// クライアントはチェコ語ロケールの「日.月.年」表記を期待する。
const (
	savedAtFormat   = "2.1.2006"
	commentAtFormat = "2.1.2006 15:04"
)

// Service は旅程に関するビジネスロジックを提供する。
// 全ての変更操作は操作者アカウントを取得してから認可判定を行う。
type Service struct {
	tripRepo    repository.TripRepository
	accountRepo repository.AccountRepository
	sanitizer   security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	tripRepo repository.TripRepository,
	accountRepo repository.AccountRepository,
	sanitizer security.ContentSanitizerService,
) *Service {
	return &Service{
		tripRepo:    tripRepo,
		accountRepo: accountRepo,
		sanitizer:   sanitizer,
	}
}

// viewer は操作者アカウントを取得する。存在しない場合はエラーを返す。
func (s *Service) viewer(ctx context.Context, viewerID string) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find acting account: %w", err)
	}
	if account == nil {
		return nil, model.NewAccountNotFoundError()
	}
	return account, nil
}

// List は閲覧者が見られる旅程の一覧を返す。
// 管理者は全件、それ以外は自分が所有する旅程のみ。
// 他人の公開旅程はこの一覧には決して含まれない（所有スコープであり可視性スコープではない）。
func (s *Service) List(ctx context.Context, viewerID string) ([]*model.Trip, error) {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if account.IsAdmin {
		return s.tripRepo.ListAll(ctx)
	}
	return s.tripRepo.ListByOwner(ctx, account.ID)
}

// Create は旅程を保存する。所有者IDと保存日はサーバー側で刻印する。
func (s *Service) Create(ctx context.Context, viewerID string, trip *model.Trip) (*model.Trip, error) {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	trip.ID = ""
	trip.OwnerID = account.ID
	trip.SavedAt = time.Now().Format(savedAtFormat)
	if trip.Comments == nil {
		trip.Comments = []model.Comment{}
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	slog.Info("trip created",
		slog.String("trip_id", trip.ID),
		slog.String("owner_id", account.ID),
	)
	return trip, nil
}

// findModifiable は旅程を取得し、操作者に変更権限があることを確認する。
func (s *Service) findModifiable(ctx context.Context, account *model.Account, tripID string) (*model.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	if trip == nil {
		return nil, model.NewTripNotFoundError(tripID)
	}
	if !trip.CanModify(account) {
		return nil, model.NewForbiddenError()
	}
	return trip, nil
}

// Update は旅程の更新可能フィールドを置き換える。
// 所有者本人または管理者のみ実行できる。
func (s *Service) Update(ctx context.Context, viewerID, tripID string, upd model.TripUpdate) error {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return err
	}

	if _, err := s.findModifiable(ctx, account, tripID); err != nil {
		return err
	}

	if err := s.tripRepo.Update(ctx, tripID, upd); err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	slog.Info("trip updated", slog.String("trip_id", tripID), slog.String("account_id", account.ID))
	return nil
}

// Delete は旅程を削除する。所有者本人または管理者のみ実行できる。
func (s *Service) Delete(ctx context.Context, viewerID, tripID string) error {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return err
	}

	if _, err := s.findModifiable(ctx, account, tripID); err != nil {
		return err
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	slog.Info("trip deleted", slog.String("trip_id", tripID), slog.String("account_id", account.ID))
	return nil
}

// SetVisibility は旅程の公開フラグを切り替える。
// 所有者本人または管理者のみ実行できる。
func (s *Service) SetVisibility(ctx context.Context, viewerID, tripID string, public bool) error {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return err
	}

	if _, err := s.findModifiable(ctx, account, tripID); err != nil {
		return err
	}

	if err := s.tripRepo.SetPublic(ctx, tripID, public); err != nil {
		return fmt.Errorf("failed to set trip visibility: %w", err)
	}

	slog.Info("trip visibility changed",
		slog.String("trip_id", tripID),
		slog.Bool("public", public),
	)
	return nil
}

// AddComment は旅程にコメントを追加する。
// コメントIDはuuidで採番し、操作者の表示名とアバターをスナップショットする。
// 旅程が存在しセッションが有効であれば常に成功する（所有者以外でもコメント可能）。
func (s *Service) AddComment(ctx context.Context, viewerID, tripID, text string) (*model.Comment, error) {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	if trip == nil {
		return nil, model.NewTripNotFoundError(tripID)
	}

	comment := model.Comment{
		ID:           uuid.New().String(),
		AuthorID:     account.ID,
		AuthorName:   account.DisplayName(),
		AuthorAvatar: account.Avatar,
		Text:         s.sanitizer.Sanitize(text),
		PostedAt:     time.Now().Format(commentAtFormat),
	}

	if err := s.tripRepo.AddComment(ctx, tripID, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	slog.Info("comment added",
		slog.String("trip_id", tripID),
		slog.String("comment_id", comment.ID),
	)
	return &comment, nil
}

// findModifiableComment はコメントを特定し、操作者に変更権限があることを確認する。
// コメントは投稿者本人または管理者のみ変更できる（旅程の所有者でも不可）。
func (s *Service) findModifiableComment(ctx context.Context, account *model.Account, tripID, commentID string) (*model.Comment, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	if trip == nil {
		return nil, model.NewTripNotFoundError(tripID)
	}

	comment := trip.FindComment(commentID)
	if comment == nil {
		return nil, model.NewCommentNotFoundError(commentID)
	}
	if comment.AuthorID != account.ID && !account.IsAdmin {
		return nil, model.NewForbiddenError()
	}
	return comment, nil
}

// EditComment はコメント本文を置き換える。投稿者本人または管理者のみ実行できる。
func (s *Service) EditComment(ctx context.Context, viewerID, tripID, commentID, text string) error {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return err
	}

	if _, err := s.findModifiableComment(ctx, account, tripID, commentID); err != nil {
		return err
	}

	if err := s.tripRepo.UpdateCommentText(ctx, tripID, commentID, s.sanitizer.Sanitize(text)); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	slog.Info("comment edited",
		slog.String("trip_id", tripID),
		slog.String("comment_id", commentID),
	)
	return nil
}

// DeleteComment はコメントを削除する。投稿者本人または管理者のみ実行できる。
func (s *Service) DeleteComment(ctx context.Context, viewerID, tripID, commentID string) error {
	account, err := s.viewer(ctx, viewerID)
	if err != nil {
		return err
	}

	if _, err := s.findModifiableComment(ctx, account, tripID, commentID); err != nil {
		return err
	}

	if err := s.tripRepo.RemoveComment(ctx, tripID, commentID); err != nil {
		return fmt.Errorf("failed to remove comment: %w", err)
	}

	slog.Info("comment deleted",
		slog.String("trip_id", tripID),
		slog.String("comment_id", commentID),
	)
	return nil
}
