// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/verona/verona/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeSuccess は {"success":true} を返す。
func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// 認可エラーと未検出エラーはいずれも {"success":false} に集約し、
// どのエンティティが存在するかを漏らさない。詳細はログにのみ残す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		slog.Error("unexpected service error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal server error",
		})
		return
	}

	slog.Warn("request rejected",
		slog.String("code", apiErr.Code),
		slog.String("message", apiErr.Message),
	)

	switch apiErr.Code {
	case model.ErrCodeUnauthorized, model.ErrCodeAccountNotFound:
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
	case model.ErrCodeForbidden,
		model.ErrCodeTripNotFound,
		model.ErrCodeCommentNotFound,
		model.ErrCodePostNotFound:
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false})
	case model.ErrCodeInvalidRequest:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   apiErr.Message,
		})
	case model.ErrCodeGenerationFailed:
		// 生成失敗はHTTPエラーではなく結果として返す
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   apiErr.Message,
		})
	case model.ErrCodePaymentFailed:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": apiErr.Message,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal server error",
		})
	}
}
