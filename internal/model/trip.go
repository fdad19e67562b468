package model

// Stage は旅程内の1つの行程（時刻・場所・説明・座標）を表す。
// AI生成のItineraryと保存済みTripの双方で使用する。
type Stage struct {
	Time        string  `bson:"time" json:"time"`
	Place       string  `bson:"place" json:"place"`
	Description string  `bson:"description" json:"description"`
	Lat         float64 `bson:"lat" json:"lat"`
	Lng         float64 `bson:"lng" json:"lng"`
}

// Comment はTripに埋め込まれるコメントを表す。
// 投稿時点の表示名とアバターをスナップショットとして保持する。
// 後からプロフィールを変更しても過去のコメントには反映されない（設計上の選択）。
type Comment struct {
	ID           string `bson:"id" json:"id"`
	AuthorID     string `bson:"author_id" json:"authorId"`
	AuthorName   string `bson:"author_name" json:"authorName"`
	AuthorAvatar string `bson:"author_avatar" json:"authorAvatar"`
	Text         string `bson:"text" json:"text"`
	PostedAt     string `bson:"posted_at" json:"postedAt"`
}

// Trip は保存された旅程を表す。
// 所有者本人または管理者のみが変更・削除できる。
type Trip struct {
	ID          string    `bson:"_id" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	Location    string    `bson:"location" json:"location"`
	Description string    `bson:"description" json:"description"`
	Difficulty  int       `bson:"difficulty" json:"difficulty"`
	Type        string    `bson:"type" json:"type"`
	Stages      []Stage   `bson:"stages" json:"stages"`
	Completed   bool      `bson:"completed" json:"completed"`
	Photos      []string  `bson:"photos" json:"photos"`
	Rating      float64   `bson:"rating" json:"rating"`
	Public      bool      `bson:"public" json:"public"`
	SavedAt     string    `bson:"saved_at" json:"savedAt"`
	Comments    []Comment `bson:"comments" json:"comments"`
}

// TripUpdate はTripの更新可能フィールドの集合を表す。
// 所有者情報（OwnerID）と保存日（SavedAt）、コメントは更新対象に含めない。
type TripUpdate struct {
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Difficulty  int      `json:"difficulty"`
	Type        string   `json:"type"`
	Stages      []Stage  `json:"stages"`
	Completed   bool     `json:"completed"`
	Photos      []string `json:"photos"`
	Rating      float64  `json:"rating"`
}

// CanModify はaccountがこのTripを変更・削除できるかを返す。
// 所有者本人または管理者のみ許可される。
func (t *Trip) CanModify(account *Account) bool {
	if account == nil {
		return false
	}
	return t.OwnerID == account.ID || account.IsAdmin
}

// FindComment は指定IDのコメントを返す。見つからない場合はnilを返す。
func (t *Trip) FindComment(commentID string) *Comment {
	for i := range t.Comments {
		if t.Comments[i].ID == commentID {
			return &t.Comments[i]
		}
	}
	return nil
}
