package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verona/verona/internal/middleware"
	"github.com/verona/verona/internal/model"
)

// TripServiceInterface は旅程ハンドラーが必要とするサービスインターフェース。
type TripServiceInterface interface {
	List(ctx context.Context, viewerID string) ([]*model.Trip, error)
	Create(ctx context.Context, viewerID string, trip *model.Trip) (*model.Trip, error)
	Update(ctx context.Context, viewerID, tripID string, upd model.TripUpdate) error
	Delete(ctx context.Context, viewerID, tripID string) error
	SetVisibility(ctx context.Context, viewerID, tripID string, public bool) error
	AddComment(ctx context.Context, viewerID, tripID, text string) (*model.Comment, error)
	EditComment(ctx context.Context, viewerID, tripID, commentID, text string) error
	DeleteComment(ctx context.Context, viewerID, tripID, commentID string) error
}

// TripHandler は旅程管理のHTTPハンドラー。
type TripHandler struct {
	service TripServiceInterface
}

// NewTripHandler はTripHandlerを生成する。
func NewTripHandler(service TripServiceInterface) *TripHandler {
	return &TripHandler{service: service}
}

// viewerID はセッションミドルウェアが注入したアカウントIDを取り出す。
// 取得に失敗した場合はfalseを返し、401を書き込み済みとする。
func viewerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, err := middleware.AccountIDFromContext(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
		return "", false
	}
	return accountID, true
}

// List は閲覧者の旅程一覧を返す。
// GET /api/ulozene-vylety
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	trips, err := h.service.List(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if trips == nil {
		trips = []*model.Trip{}
	}

	writeJSON(w, http.StatusOK, trips)
}

// Create は旅程を保存する。
// POST /api/ulozit-vylet
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var trip model.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}

	if _, err := h.service.Create(r.Context(), accountID, &trip); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// tripUpdateRequest は旅程更新のリクエストボディ。
// IDに加え、更新可能フィールドのみを受け付ける。
type tripUpdateRequest struct {
	ID string `json:"id"`
	model.TripUpdate
}

// Update は旅程を更新する。所有者または管理者のみ。
// POST /api/upravit-vylet
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req tripUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if req.ID == "" {
		handleServiceError(w, model.NewInvalidRequestError("id is required"))
		return
	}

	if err := h.service.Update(r.Context(), accountID, req.ID, req.TripUpdate); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// Delete は旅程を削除する。所有者または管理者のみ。
// DELETE /api/smazat-vylet/{id}
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), accountID, tripID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// visibilityRequest は公開設定のリクエストボディ。
type visibilityRequest struct {
	ID     string `json:"id"`
	Public bool   `json:"public"`
}

// SetVisibility は旅程の公開フラグを切り替える。所有者または管理者のみ。
// POST /api/nastavit-viditelnost
func (h *TripHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if req.ID == "" {
		handleServiceError(w, model.NewInvalidRequestError("id is required"))
		return
	}

	if err := h.service.SetVisibility(r.Context(), accountID, req.ID, req.Public); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// commentRequest はコメント操作のリクエストボディ。
type commentRequest struct {
	TripID    string `json:"tripId"`
	CommentID string `json:"commentId"`
	Text      string `json:"text"`
}

// AddComment は旅程にコメントを追加する。
// POST /api/pridat-komentar
func (h *TripHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if req.TripID == "" {
		handleServiceError(w, model.NewInvalidRequestError("tripId is required"))
		return
	}

	comment, err := h.service.AddComment(r.Context(), accountID, req.TripID, req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"comment": comment,
	})
}

// EditComment はコメント本文を置き換える。投稿者または管理者のみ。
// POST /api/upravit-komentar
func (h *TripHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if req.TripID == "" || req.CommentID == "" {
		handleServiceError(w, model.NewInvalidRequestError("tripId and commentId are required"))
		return
	}

	if err := h.service.EditComment(r.Context(), accountID, req.TripID, req.CommentID, req.Text); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// DeleteComment はコメントを削除する。投稿者または管理者のみ。
// POST /api/smazat-komentar
func (h *TripHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if req.TripID == "" || req.CommentID == "" {
		handleServiceError(w, model.NewInvalidRequestError("tripId and commentId are required"))
		return
	}

	if err := h.service.DeleteComment(r.Context(), accountID, req.TripID, req.CommentID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}
