package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/verona/verona/internal/database"
	"github.com/verona/verona/internal/model"
)

// MongoAccountRepo はMongoDBを使用したアカウントリポジトリ。
type MongoAccountRepo struct {
	col *mongo.Collection
}

// NewMongoAccountRepo はMongoAccountRepoを生成する。
func NewMongoAccountRepo(db *mongo.Database) *MongoAccountRepo {
	return &MongoAccountRepo{col: db.Collection(database.CollectionAccounts)}
}

// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
func (r *MongoAccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	account := &model.Account{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// FindByGoogleID はGoogleのユーザーIDでアカウントを検索する。見つからない場合はnilを返す。
func (r *MongoAccountRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.Account, error) {
	account := &model.Account{}
	err := r.col.FindOne(ctx, bson.M{"google_id": googleID}).Decode(account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by google id: %w", err)
	}
	return account, nil
}

// Create はアカウントを作成する。
func (r *MongoAccountRepo) Create(ctx context.Context, account *model.Account) error {
	if _, err := r.col.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// SetFlags は管理者フラグとプレミアムフラグを更新する。
func (r *MongoAccountRepo) SetFlags(ctx context.Context, id string, isAdmin, isPremium bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_admin":   isAdmin,
			"is_premium": isPremium,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to set account flags: %w", err)
	}
	return nil
}

// SetPremium はプレミアムフラグのみを更新する。
func (r *MongoAccountRepo) SetPremium(ctx context.Context, id string, premium bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_premium": premium,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to set premium flag: %w", err)
	}
	return nil
}

// UpdateProfile はプロフィールの部分更新を適用する。
// updのnilフィールドは$setに含めないため変更されない。
// フラグ類（is_admin / is_premium）はこの操作では決して更新されない。
func (r *MongoAccountRepo) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Nickname != nil {
		set["nickname"] = *upd.Nickname
	}
	if upd.GivenName != nil {
		set["given_name"] = *upd.GivenName
	}
	if upd.FamilyName != nil {
		set["family_name"] = *upd.FamilyName
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}
	if upd.Interests != nil {
		set["interests"] = *upd.Interests
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// compile-time interface check
var _ AccountRepository = (*MongoAccountRepo)(nil)
