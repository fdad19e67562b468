package model

// Itinerary はAIが生成した旅程の構造化結果を表す。
// テキスト生成モデルの自由形式出力から抽出・パースされる。
// 各Stageは実在のGPS座標を持つことをプロンプトで要求するが、
// モデルが省略した場合の検証は行わない（パース失敗として扱われる場合を除く）。
type Itinerary struct {
	Location       string  `json:"location"`
	Stages         []Stage `json:"stages"`
	Recommendation string  `json:"recommendation"`
	Type           string  `json:"type"`
	Difficulty     int     `json:"difficulty"`
}
