package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verona/verona/internal/feed"
	"github.com/verona/verona/internal/model"
)

// FeedServiceInterface はフィードハンドラーが必要とするサービスインターフェース。
type FeedServiceInterface interface {
	List(ctx context.Context) ([]*model.FeedPost, error)
	Publish(ctx context.Context, viewerID string, req feed.PublishRequest) (*model.FeedPost, error)
	Edit(ctx context.Context, viewerID, postID, text string) error
	Delete(ctx context.Context, viewerID, postID string) error
}

// FeedHandler はコミュニティフィードのHTTPハンドラー。
type FeedHandler struct {
	service FeedServiceInterface
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(service FeedServiceInterface) *FeedHandler {
	return &FeedHandler{service: service}
}

// List は最新50件の投稿を返す。認証不要。
// GET /api/feed
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Publish は投稿を作成する。
// POST /api/pridat-do-feedu
func (h *FeedHandler) Publish(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req feed.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}

	if _, err := h.service.Publish(r.Context(), accountID, req); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// feedEditRequest は投稿編集のリクエストボディ。
type feedEditRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Edit は投稿本文を置き換える。投稿者または管理者のみ。
// POST /api/upravit-feed
func (h *FeedHandler) Edit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req feedEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewInvalidRequestError("malformed JSON body"))
		return
	}
	if req.ID == "" {
		handleServiceError(w, model.NewInvalidRequestError("id is required"))
		return
	}

	if err := h.service.Edit(r.Context(), accountID, req.ID, req.Text); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}

// Delete は投稿を削除する。投稿者または管理者のみ。
// DELETE /api/smazat-feed/{id}
func (h *FeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := viewerID(w, r)
	if !ok {
		return
	}

	postID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), accountID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w)
}
