package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/verona/verona/internal/database"
	"github.com/verona/verona/internal/model"
)

// MongoFeedPostRepo はMongoDBを使用したフィード投稿リポジトリ。
type MongoFeedPostRepo struct {
	col *mongo.Collection
}

// NewMongoFeedPostRepo はMongoFeedPostRepoを生成する。
func NewMongoFeedPostRepo(db *mongo.Database) *MongoFeedPostRepo {
	return &MongoFeedPostRepo{col: db.Collection(database.CollectionFeedPosts)}
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *MongoFeedPostRepo) FindByID(ctx context.Context, id string) (*model.FeedPost, error) {
	post := &model.FeedPost{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feed post: %w", err)
	}
	return post, nil
}

// ListNewest は作成日時の降順で最大limit件の投稿を返す。
func (r *MongoFeedPostRepo) ListNewest(ctx context.Context, limit int) ([]*model.FeedPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []*model.FeedPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to read feed posts: %w", err)
	}
	return posts, nil
}

// Create は投稿を作成し、採番したIDをpost.IDに設定する。
func (r *MongoFeedPostRepo) Create(ctx context.Context, post *model.FeedPost) error {
	if post.ID == "" {
		post.ID = bson.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create feed post: %w", err)
	}
	return nil
}

// UpdateText は投稿本文を置き換える。
func (r *MongoFeedPostRepo) UpdateText(ctx context.Context, id, text string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"text": text}},
	)
	if err != nil {
		return fmt.Errorf("failed to update feed post: %w", err)
	}
	return nil
}

// Delete は指定IDの投稿を削除する。
func (r *MongoFeedPostRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete feed post: %w", err)
	}
	return nil
}

// compile-time interface check
var _ FeedPostRepository = (*MongoFeedPostRepo)(nil)
