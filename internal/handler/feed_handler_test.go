package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/verona/verona/internal/feed"
	"github.com/verona/verona/internal/model"
)

// --- モック定義 ---

type mockFeedService struct {
	listFn    func(ctx context.Context) ([]*model.FeedPost, error)
	publishFn func(ctx context.Context, viewerID string, req feed.PublishRequest) (*model.FeedPost, error)
	editFn    func(ctx context.Context, viewerID, postID, text string) error
	deleteFn  func(ctx context.Context, viewerID, postID string) error
}

func (m *mockFeedService) List(ctx context.Context) ([]*model.FeedPost, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []*model.FeedPost{}, nil
}

func (m *mockFeedService) Publish(ctx context.Context, viewerID string, req feed.PublishRequest) (*model.FeedPost, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, viewerID, req)
	}
	return &model.FeedPost{ID: "post-1"}, nil
}

func (m *mockFeedService) Edit(ctx context.Context, viewerID, postID, text string) error {
	if m.editFn != nil {
		return m.editFn(ctx, viewerID, postID, text)
	}
	return nil
}

func (m *mockFeedService) Delete(ctx context.Context, viewerID, postID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, viewerID, postID)
	}
	return nil
}

// --- テスト ---

func TestFeedList_NoAuthRequired(t *testing.T) {
	svc := &mockFeedService{
		listFn: func(ctx context.Context) ([]*model.FeedPost, error) {
			return []*model.FeedPost{{ID: "post-1", AuthorName: "Petr Svoboda", Text: "výlet"}}, nil
		},
	}
	h := NewFeedHandler(svc)

	// セッションコンテキストなしのリクエスト
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/feed", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var posts []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(posts) != 1 || posts[0]["authorName"] != "Petr Svoboda" {
		t.Errorf("unexpected posts: %v", posts)
	}
}

func TestFeedPublish_PassesRequestToService(t *testing.T) {
	var captured feed.PublishRequest
	svc := &mockFeedService{
		publishFn: func(ctx context.Context, viewerID string, req feed.PublishRequest) (*model.FeedPost, error) {
			if viewerID != "acc-1" {
				t.Errorf("viewerID = %q, want acc-1", viewerID)
			}
			captured = req
			return &model.FeedPost{ID: "post-1"}, nil
		},
	}
	h := NewFeedHandler(svc)

	w := httptest.NewRecorder()
	h.Publish(w, authedRequest(http.MethodPost, "/api/pridat-do-feedu",
		`{"text":"dnes na Sněžce","tripId":"trip-1","tripLocation":"Sněžka"}`, "acc-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if captured.Text != "dnes na Sněžce" || captured.TripID != "trip-1" {
		t.Errorf("captured request = %+v", captured)
	}
}

func TestFeedEdit_Forbidden_ReturnsFailure(t *testing.T) {
	svc := &mockFeedService{
		editFn: func(ctx context.Context, viewerID, postID, text string) error {
			return model.NewForbiddenError()
		},
	}
	h := NewFeedHandler(svc)

	w := httptest.NewRecorder()
	h.Edit(w, authedRequest(http.MethodPost, "/api/upravit-feed",
		`{"id":"post-1","text":"x"}`, "stranger-1"))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestFeedDelete_UsesURLParam(t *testing.T) {
	var gotPostID string
	svc := &mockFeedService{
		deleteFn: func(ctx context.Context, viewerID, postID string) error {
			gotPostID = postID
			return nil
		},
	}

	r := chi.NewRouter()
	r.Delete("/api/smazat-feed/{id}", NewFeedHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodDelete, "/api/smazat-feed/post-42", "", "acc-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotPostID != "post-42" {
		t.Errorf("postID = %q, want post-42", gotPostID)
	}
}
