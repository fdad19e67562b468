package model

import "time"

// FeedPost はコミュニティフィードに共有される投稿を表す。
// 投稿者の表示名とアバターは投稿時点でスナップショットされる。
// CreatedAtが並び順の真のキーで、PostedAtは表示用の整形済み文字列。
type FeedPost struct {
	ID           string    `bson:"_id" json:"id"`
	AuthorID     string    `bson:"author_id" json:"authorId"`
	AuthorName   string    `bson:"author_name" json:"authorName"`
	AuthorAvatar string    `bson:"author_avatar" json:"authorAvatar"`
	Text         string    `bson:"text" json:"text"`
	Photos       []string  `bson:"photos" json:"photos"`
	TripID       string    `bson:"trip_id" json:"tripId,omitempty"`
	TripLocation string    `bson:"trip_location" json:"tripLocation,omitempty"`
	PostedAt     string    `bson:"posted_at" json:"postedAt"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// CanModify はaccountがこの投稿を編集・削除できるかを返す。
// 投稿者本人または管理者のみ許可される。
func (p *FeedPost) CanModify(account *Account) bool {
	if account == nil {
		return false
	}
	return p.AuthorID == account.ID || account.IsAdmin
}
