// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/verona/verona/internal/model"
)

// AccountRepository はアカウントデータの永続化インターフェース。
type AccountRepository interface {
	// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// FindByGoogleID はGoogleのユーザーIDでアカウントを検索する。
	// 見つからない場合はnilを返す。
	FindByGoogleID(ctx context.Context, googleID string) (*model.Account, error)

	// Create はアカウントを作成する。IDは呼び出し側で採番する。
	Create(ctx context.Context, account *model.Account) error

	// SetFlags は管理者フラグとプレミアムフラグを更新する。
	SetFlags(ctx context.Context, id string, isAdmin, isPremium bool) error

	// SetPremium はプレミアムフラグのみを更新する。決済確定時に使用する。
	SetPremium(ctx context.Context, id string, premium bool) error

	// UpdateProfile はプロフィールの部分更新を適用する。
	// updのnilフィールドは変更しない。フラグ類はこの操作では変更できない。
	UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// TripRepository は旅程データの永続化インターフェース。
// コメントは旅程ドキュメントへの埋め込み配列として保存されるため、
// コメント操作は全体の読み書きではなく対象要素への更新として提供する。
type TripRepository interface {
	// FindByID は指定IDの旅程を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Trip, error)

	// ListAll は全ての旅程を返す。管理者の一覧表示用。
	ListAll(ctx context.Context) ([]*model.Trip, error)

	// ListByOwner は所有者IDが一致する旅程のみを返す。
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Trip, error)

	// Create は旅程を作成し、採番したIDをtrip.IDに設定する。
	Create(ctx context.Context, trip *model.Trip) error

	// Update は更新可能フィールドを置き換える。所有者・保存日・コメントは変更しない。
	Update(ctx context.Context, id string, upd model.TripUpdate) error

	// Delete は指定IDの旅程を削除する。
	Delete(ctx context.Context, id string) error

	// SetPublic は公開フラグを更新する。
	SetPublic(ctx context.Context, id string, public bool) error

	// AddComment はコメントを末尾に追加する。
	AddComment(ctx context.Context, tripID string, comment model.Comment) error

	// RemoveComment は指定IDのコメントを取り除く。
	RemoveComment(ctx context.Context, tripID, commentID string) error

	// UpdateCommentText は指定IDのコメント本文を置き換える。
	UpdateCommentText(ctx context.Context, tripID, commentID, text string) error
}

// FeedPostRepository はフィード投稿の永続化インターフェース。
type FeedPostRepository interface {
	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.FeedPost, error)

	// ListNewest は作成日時の降順で最大limit件の投稿を返す。
	ListNewest(ctx context.Context, limit int) ([]*model.FeedPost, error)

	// Create は投稿を作成し、採番したIDをpost.IDに設定する。
	Create(ctx context.Context, post *model.FeedPost) error

	// UpdateText は投稿本文を置き換える。
	UpdateText(ctx context.Context, id, text string) error

	// Delete は指定IDの投稿を削除する。
	Delete(ctx context.Context, id string) error
}
