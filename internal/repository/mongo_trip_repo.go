package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/verona/verona/internal/database"
	"github.com/verona/verona/internal/model"
)

// MongoTripRepo はMongoDBを使用した旅程リポジトリ。
// コメント操作は$push/$pull/位置指定$setで対象要素のみを更新する。
// ドキュメント全体のread-modify-writeを避けることで、同一旅程への
// 並行したコメント操作で更新が失われない。
type MongoTripRepo struct {
	col *mongo.Collection
}

// NewMongoTripRepo はMongoTripRepoを生成する。
func NewMongoTripRepo(db *mongo.Database) *MongoTripRepo {
	return &MongoTripRepo{col: db.Collection(database.CollectionTrips)}
}

// FindByID は指定IDの旅程を取得する。見つからない場合はnilを返す。
func (r *MongoTripRepo) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	trip := &model.Trip{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return trip, nil
}

// ListAll は全ての旅程を返す。
func (r *MongoTripRepo) ListAll(ctx context.Context) ([]*model.Trip, error) {
	return r.list(ctx, bson.M{})
}

// ListByOwner は所有者IDが一致する旅程のみを返す。
func (r *MongoTripRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Trip, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoTripRepo) list(ctx context.Context, filter bson.M) ([]*model.Trip, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cur.Close(ctx)

	var trips []*model.Trip
	if err := cur.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to read trips: %w", err)
	}
	return trips, nil
}

// Create は旅程を作成し、採番したIDをtrip.IDに設定する。
func (r *MongoTripRepo) Create(ctx context.Context, trip *model.Trip) error {
	if trip.ID == "" {
		trip.ID = bson.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// Update は更新可能フィールドを置き換える。
func (r *MongoTripRepo) Update(ctx context.Context, id string, upd model.TripUpdate) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"location":    upd.Location,
			"description": upd.Description,
			"difficulty":  upd.Difficulty,
			"type":        upd.Type,
			"stages":      upd.Stages,
			"completed":   upd.Completed,
			"photos":      upd.Photos,
			"rating":      upd.Rating,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

// Delete は指定IDの旅程を削除する。
func (r *MongoTripRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// SetPublic は公開フラグを更新する。
func (r *MongoTripRepo) SetPublic(ctx context.Context, id string, public bool) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"public": public}},
	)
	if err != nil {
		return fmt.Errorf("failed to set trip visibility: %w", err)
	}
	return nil
}

// AddComment はコメントを末尾に追加する。
func (r *MongoTripRepo) AddComment(ctx context.Context, tripID string, comment model.Comment) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tripID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// RemoveComment は指定IDのコメントを取り除く。
func (r *MongoTripRepo) RemoveComment(ctx context.Context, tripID, commentID string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tripID},
		bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove comment: %w", err)
	}
	return nil
}

// UpdateCommentText は指定IDのコメント本文を置き換える。
func (r *MongoTripRepo) UpdateCommentText(ctx context.Context, tripID, commentID, text string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tripID, "comments.id": commentID},
		bson.M{"$set": bson.M{"comments.$.text": text}},
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TripRepository = (*MongoTripRepo)(nil)
