package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/verona/verona/internal/middleware"
	"github.com/verona/verona/internal/model"
)

// --- モック定義 ---

type mockTripService struct {
	listFn          func(ctx context.Context, viewerID string) ([]*model.Trip, error)
	createFn        func(ctx context.Context, viewerID string, trip *model.Trip) (*model.Trip, error)
	updateFn        func(ctx context.Context, viewerID, tripID string, upd model.TripUpdate) error
	deleteFn        func(ctx context.Context, viewerID, tripID string) error
	setVisibilityFn func(ctx context.Context, viewerID, tripID string, public bool) error
	addCommentFn    func(ctx context.Context, viewerID, tripID, text string) (*model.Comment, error)
	editCommentFn   func(ctx context.Context, viewerID, tripID, commentID, text string) error
	deleteCommentFn func(ctx context.Context, viewerID, tripID, commentID string) error
}

func (m *mockTripService) List(ctx context.Context, viewerID string) ([]*model.Trip, error) {
	if m.listFn != nil {
		return m.listFn(ctx, viewerID)
	}
	return nil, nil
}

func (m *mockTripService) Create(ctx context.Context, viewerID string, trip *model.Trip) (*model.Trip, error) {
	if m.createFn != nil {
		return m.createFn(ctx, viewerID, trip)
	}
	return trip, nil
}

func (m *mockTripService) Update(ctx context.Context, viewerID, tripID string, upd model.TripUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, viewerID, tripID, upd)
	}
	return nil
}

func (m *mockTripService) Delete(ctx context.Context, viewerID, tripID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, viewerID, tripID)
	}
	return nil
}

func (m *mockTripService) SetVisibility(ctx context.Context, viewerID, tripID string, public bool) error {
	if m.setVisibilityFn != nil {
		return m.setVisibilityFn(ctx, viewerID, tripID, public)
	}
	return nil
}

func (m *mockTripService) AddComment(ctx context.Context, viewerID, tripID, text string) (*model.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, viewerID, tripID, text)
	}
	return &model.Comment{ID: "comment-1"}, nil
}

func (m *mockTripService) EditComment(ctx context.Context, viewerID, tripID, commentID, text string) error {
	if m.editCommentFn != nil {
		return m.editCommentFn(ctx, viewerID, tripID, commentID, text)
	}
	return nil
}

func (m *mockTripService) DeleteComment(ctx context.Context, viewerID, tripID, commentID string) error {
	if m.deleteCommentFn != nil {
		return m.deleteCommentFn(ctx, viewerID, tripID, commentID)
	}
	return nil
}

// authedRequest はセッションミドルウェア通過後と同じコンテキストを持つリクエストを作る。
func authedRequest(method, target, body, accountID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.ContextWithAccountID(req.Context(), accountID))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v\nraw: %s", err, w.Body.String())
	}
	return body
}

// --- テスト ---

func TestTripList_ReturnsTripsArray(t *testing.T) {
	svc := &mockTripService{
		listFn: func(ctx context.Context, viewerID string) ([]*model.Trip, error) {
			if viewerID != "acc-1" {
				t.Errorf("viewerID = %q, want acc-1", viewerID)
			}
			return []*model.Trip{{ID: "trip-1", OwnerID: "acc-1", Location: "Šumava"}}, nil
		},
	}
	h := NewTripHandler(svc)

	w := httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/api/ulozene-vylety", "", "acc-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var trips []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &trips); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(trips) != 1 || trips[0]["location"] != "Šumava" {
		t.Errorf("unexpected trips: %v", trips)
	}
}

func TestTripList_Empty_ReturnsEmptyArray(t *testing.T) {
	h := NewTripHandler(&mockTripService{})

	w := httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/api/ulozene-vylety", "", "acc-1"))

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestTripCreate_Success(t *testing.T) {
	var captured *model.Trip
	svc := &mockTripService{
		createFn: func(ctx context.Context, viewerID string, trip *model.Trip) (*model.Trip, error) {
			captured = trip
			return trip, nil
		},
	}
	h := NewTripHandler(svc)

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/api/ulozit-vylet",
		`{"location":"Krkonoše","difficulty":3}`, "acc-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if captured.Location != "Krkonoše" {
		t.Errorf("location = %q, want Krkonoše", captured.Location)
	}
}

func TestTripCreate_MalformedBody_Returns400(t *testing.T) {
	h := NewTripHandler(&mockTripService{})

	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/api/ulozit-vylet", `{not-json`, "acc-1"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTripDelete_NonOwner_ReturnsFailure(t *testing.T) {
	svc := &mockTripService{
		deleteFn: func(ctx context.Context, viewerID, tripID string) error {
			return model.NewForbiddenError()
		},
	}

	r := chi.NewRouter()
	r.Delete("/api/smazat-vylet/{id}", NewTripHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodDelete, "/api/smazat-vylet/trip-1", "", "stranger-1"))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestTripDelete_NotFound_SameFailureShape(t *testing.T) {
	svc := &mockTripService{
		deleteFn: func(ctx context.Context, viewerID, tripID string) error {
			return model.NewTripNotFoundError(tripID)
		},
	}

	r := chi.NewRouter()
	r.Delete("/api/smazat-vylet/{id}", NewTripHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodDelete, "/api/smazat-vylet/ghost", "", "acc-1"))

	// 未検出も認可拒否と同じ失敗レスポンスに集約される
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if _, leaked := body["error"]; leaked {
		t.Error("failure response must not leak entity details")
	}
}

func TestSetVisibility_PassesFlag(t *testing.T) {
	var gotPublic bool
	svc := &mockTripService{
		setVisibilityFn: func(ctx context.Context, viewerID, tripID string, public bool) error {
			if tripID != "trip-1" {
				t.Errorf("tripID = %q, want trip-1", tripID)
			}
			gotPublic = public
			return nil
		},
	}
	h := NewTripHandler(svc)

	w := httptest.NewRecorder()
	h.SetVisibility(w, authedRequest(http.MethodPost, "/api/nastavit-viditelnost",
		`{"id":"trip-1","public":true}`, "acc-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !gotPublic {
		t.Error("expected public=true to be passed")
	}
}

func TestAddComment_ReturnsCreatedComment(t *testing.T) {
	svc := &mockTripService{
		addCommentFn: func(ctx context.Context, viewerID, tripID, text string) (*model.Comment, error) {
			return &model.Comment{ID: "comment-1", AuthorID: viewerID, Text: text}, nil
		},
	}
	h := NewTripHandler(svc)

	w := httptest.NewRecorder()
	h.AddComment(w, authedRequest(http.MethodPost, "/api/pridat-komentar",
		`{"tripId":"trip-1","text":"krásné"}`, "acc-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	comment, ok := body["comment"].(map[string]any)
	if !ok || comment["id"] != "comment-1" {
		t.Errorf("comment = %v", body["comment"])
	}
}

func TestEditComment_MissingIDs_Returns400(t *testing.T) {
	h := NewTripHandler(&mockTripService{})

	w := httptest.NewRecorder()
	h.EditComment(w, authedRequest(http.MethodPost, "/api/upravit-komentar",
		`{"text":"jen text"}`, "acc-1"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteComment_Forbidden_ReturnsFailure(t *testing.T) {
	svc := &mockTripService{
		deleteCommentFn: func(ctx context.Context, viewerID, tripID, commentID string) error {
			return model.NewForbiddenError()
		},
	}
	h := NewTripHandler(svc)

	w := httptest.NewRecorder()
	h.DeleteComment(w, authedRequest(http.MethodPost, "/api/smazat-komentar",
		`{"tripId":"trip-1","commentId":"comment-1"}`, "stranger-1"))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}
