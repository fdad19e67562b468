// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザー入力テキスト（コメント、フィード投稿、
// プロフィールの自己紹介）をサニタイズし、XSS攻撃などのセキュリティリスクから
// 利用者を保護する。bluemondayライブラリの許可リストベースのポリシーを使用する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はユーザー入力テキストのサニタイズ機能のインターフェースを定義する。
// コメント・投稿・自己紹介の保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力をプレーンテキストとしてサニタイズして返す。
	// 全てのHTMLタグを除去し、前後の空白をトリムする。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// ユーザー投稿はプレーンテキストとして扱うため、タグを一切許可しない
// StrictPolicyを使用する。scriptタグやon*イベント属性もタグごと除去される。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力をプレーンテキストとしてサニタイズして返す。
// bluemondayはタグ除去後の残りをHTMLエンティティとしてエスケープするため、
// 保存用のプレーンテキストに戻すためアンエスケープする。
func (s *contentSanitizer) Sanitize(raw string) string {
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
