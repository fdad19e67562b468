package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// ハンドラー層でHTTPステータスへのマッピングに使用する。
// 認可エラーと未検出エラーはクライアントには同じ {success:false} として
// 返されるが、内部的には別コードとして区別しログに残す。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, authz, validation, upstream, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeAccountNotFound  = "ACCOUNT_NOT_FOUND"
	ErrCodeTripNotFound     = "TRIP_NOT_FOUND"
	ErrCodeCommentNotFound  = "COMMENT_NOT_FOUND"
	ErrCodePostNotFound     = "POST_NOT_FOUND"
	ErrCodeGenerationFailed = "GENERATION_FAILED"
	ErrCodePaymentFailed    = "PAYMENT_FAILED"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "authentication required",
		Category: "auth",
		Action:   "Log in and try again.",
	}
}

// NewForbiddenError は認可エラーを生成する。
// どのエンティティへのアクセスが拒否されたかの詳細は意図的に含めない。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "operation not permitted",
		Category: "authz",
		Action:   "Only the owner or an administrator can do this.",
	}
}

// NewAccountNotFoundError はアカウント未検出エラーを生成する。
func NewAccountNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeAccountNotFound,
		Message:  "account not found",
		Category: "auth",
		Action:   "Log in again.",
	}
}

// NewTripNotFoundError は旅程未検出エラーを生成する。
func NewTripNotFoundError(tripID string) *APIError {
	return &APIError{
		Code:     ErrCodeTripNotFound,
		Message:  fmt.Sprintf("trip not found: %s", tripID),
		Category: "authz",
		Action:   "Check the trip id.",
	}
}

// NewCommentNotFoundError はコメント未検出エラーを生成する。
func NewCommentNotFoundError(commentID string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("comment not found: %s", commentID),
		Category: "authz",
		Action:   "Check the comment id.",
	}
}

// NewPostNotFoundError はフィード投稿未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("feed post not found: %s", postID),
		Category: "authz",
		Action:   "Check the post id.",
	}
}

// NewGenerationFailedError は旅程生成の失敗エラーを生成する。
// ネットワークエラー、JSON抽出失敗、パース失敗のいずれも同じコードに集約する。
func NewGenerationFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeGenerationFailed,
		Message:  fmt.Sprintf("itinerary generation failed: %s", reason),
		Category: "upstream",
		Action:   "Try again with a different place or style.",
	}
}

// NewPaymentFailedError は決済処理の失敗エラーを生成する。
func NewPaymentFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodePaymentFailed,
		Message:  fmt.Sprintf("payment failed: %s", reason),
		Category: "upstream",
		Action:   "Try again later.",
	}
}

// NewInvalidRequestError はリクエスト不正エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("invalid request: %s", reason),
		Category: "validation",
		Action:   "Check the request body.",
	}
}
