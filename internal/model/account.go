// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// Account はGoogleログイン経由で作成される利用者アカウントを表す。
// googleIdごとに1件のみ存在する（accountsコレクションのユニークインデックスで保証）。
type Account struct {
	ID         string    `bson:"_id" json:"id"`
	GoogleID   string    `bson:"google_id" json:"googleId"`
	Email      string    `bson:"email" json:"email"`
	GivenName  string    `bson:"given_name" json:"givenName"`
	FamilyName string    `bson:"family_name" json:"familyName"`
	Nickname   string    `bson:"nickname" json:"nickname"`
	Age        int       `bson:"age" json:"age"`
	Phone      string    `bson:"phone" json:"phone"`
	Bio        string    `bson:"bio" json:"bio"`
	Avatar     string    `bson:"avatar" json:"avatar"`
	Interests  []string  `bson:"interests" json:"interests"`
	IsPremium  bool      `bson:"is_premium" json:"isPremium"`
	IsAdmin    bool      `bson:"is_admin" json:"isAdmin"`
	CreatedAt  time.Time `bson:"created_at" json:"-"`
	UpdatedAt  time.Time `bson:"updated_at" json:"-"`
}

// DisplayName は表示名を返す。
// ニックネームが設定されていればそれを、なければ「名 姓」を返す。
func (a *Account) DisplayName() string {
	if a.Nickname != "" {
		return a.Nickname
	}
	return strings.TrimSpace(a.GivenName + " " + a.FamilyName)
}

// ProfileUpdate はプロフィールの部分更新を表す。
// nilのフィールドは変更されない。
// isAdmin / isPremium は意図的に含めない。クライアントからフラグを
// 書き換えられないことをこの型のレベルで保証する。
type ProfileUpdate struct {
	Nickname   *string
	GivenName  *string
	FamilyName *string
	Age        *int
	Phone      *string
	Bio        *string
	Avatar     *string
	Interests  *[]string
}

// Session はログインセッションを表す。
// sessionsコレクションに保存され、ExpiresAtを過ぎたものは検索にかからない。
type Session struct {
	ID        string    `bson:"_id"`
	AccountID string    `bson:"account_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
