// Package database はMongoDBへの接続管理を提供する。
package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// コレクション名。リポジトリ層と共有する。
const (
	CollectionAccounts  = "accounts"
	CollectionTrips     = "trips"
	CollectionFeedPosts = "feed_posts"
	CollectionSessions  = "sessions"
)

// Connect はMongoDBに接続し、疎通確認を行った上でクライアントを返す。
// uriは接続文字列（例: "mongodb://localhost:27017"）を指定する。
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// Disconnect はMongoDBとの接続を切断する。
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes は必要なインデックスを作成する。起動時に1回呼び出す。
//   - accounts.google_id: ユニーク（Googleアカウントごとに1件の不変条件）
//   - sessions.expires_at: TTL（期限切れセッションの自動削除）
//   - feed_posts.created_at: 降順（フィード一覧の並び替え用）
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionAccounts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "google_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create accounts index: %w", err)
	}

	_, err = db.Collection(CollectionSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create sessions index: %w", err)
	}

	_, err = db.Collection(CollectionFeedPosts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create feed_posts index: %w", err)
	}

	return nil
}
