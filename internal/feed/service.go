// Package feed はコミュニティフィードのビジネスロジックを提供する。
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/verona/verona/internal/model"
	"github.com/verona/verona/internal/repository"
	"github.com/verona/verona/internal/security"
)

// feedLimit は一覧で返す投稿の最大件数。
const feedLimit = 50

// 表示用タイムスタンプのフォーマット。旅程コメントと同じ表記。
const postedAtFormat = "2.1.2006 15:04"

// PublishRequest はフィード投稿の作成内容を表す。
// TripID/TripLocationは任意の旅程参照。
type PublishRequest struct {
	Text         string   `json:"text"`
	Photos       []string `json:"photos"`
	TripID       string   `json:"tripId"`
	TripLocation string   `json:"tripLocation"`
}

// Service はフィードに関するビジネスロジックを提供する。
type Service struct {
	postRepo    repository.FeedPostRepository
	accountRepo repository.AccountRepository
	sanitizer   security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	postRepo repository.FeedPostRepository,
	accountRepo repository.AccountRepository,
	sanitizer security.ContentSanitizerService,
) *Service {
	return &Service{
		postRepo:    postRepo,
		accountRepo: accountRepo,
		sanitizer:   sanitizer,
	}
}

// List は最新50件の投稿を作成日時の降順で返す。認証不要。
func (s *Service) List(ctx context.Context) ([]*model.FeedPost, error) {
	posts, err := s.postRepo.ListNewest(ctx, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed posts: %w", err)
	}
	if posts == nil {
		posts = []*model.FeedPost{}
	}
	return posts, nil
}

// Publish は投稿を作成する。
// 操作者の表示名とアバターは投稿時点でスナップショットされる。
// 後からプロフィールを変更しても過去の投稿には反映されない。
func (s *Service) Publish(ctx context.Context, viewerID string, req PublishRequest) (*model.FeedPost, error) {
	account, err := s.accountRepo.FindByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find acting account: %w", err)
	}
	if account == nil {
		return nil, model.NewAccountNotFoundError()
	}

	now := time.Now()
	post := &model.FeedPost{
		AuthorID:     account.ID,
		AuthorName:   account.DisplayName(),
		AuthorAvatar: account.Avatar,
		Text:         s.sanitizer.Sanitize(req.Text),
		Photos:       req.Photos,
		TripID:       req.TripID,
		TripLocation: req.TripLocation,
		PostedAt:     now.Format(postedAtFormat),
		CreatedAt:    now,
	}
	if post.Photos == nil {
		post.Photos = []string{}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create feed post: %w", err)
	}

	slog.Info("feed post published",
		slog.String("post_id", post.ID),
		slog.String("author_id", account.ID),
	)
	return post, nil
}

// findModifiable は投稿を取得し、操作者に変更権限があることを確認する。
func (s *Service) findModifiable(ctx context.Context, viewerID, postID string) (*model.FeedPost, error) {
	account, err := s.accountRepo.FindByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find acting account: %w", err)
	}
	if account == nil {
		return nil, model.NewAccountNotFoundError()
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find feed post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}
	if !post.CanModify(account) {
		return nil, model.NewForbiddenError()
	}
	return post, nil
}

// Edit は投稿本文を置き換える。投稿者本人または管理者のみ実行できる。
func (s *Service) Edit(ctx context.Context, viewerID, postID, text string) error {
	if _, err := s.findModifiable(ctx, viewerID, postID); err != nil {
		return err
	}

	if err := s.postRepo.UpdateText(ctx, postID, s.sanitizer.Sanitize(text)); err != nil {
		return fmt.Errorf("failed to update feed post: %w", err)
	}

	slog.Info("feed post edited", slog.String("post_id", postID))
	return nil
}

// Delete は投稿を削除する。投稿者本人または管理者のみ実行できる。
func (s *Service) Delete(ctx context.Context, viewerID, postID string) error {
	if _, err := s.findModifiable(ctx, viewerID, postID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete feed post: %w", err)
	}

	slog.Info("feed post deleted", slog.String("post_id", postID))
	return nil
}
