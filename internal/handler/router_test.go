package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verona/verona/internal/model"
)

type mockSessionFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.Session, error)
}

func (m *mockSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func newTestRouter(sessions *mockSessionFinder) http.Handler {
	return NewRouter(&RouterDeps{
		SessionFinder:     sessions,
		CORSAllowedOrigin: "http://localhost:3000",
		Logger:            slog.New(slog.NewJSONHandler(io.Discard, nil)),
		RecordHTTPStatus:  func(statusCode int) {},

		MetricsGatherer: prometheus.NewRegistry(),

		AuthService: &mockAuthService{},
		AuthConfig: AuthHandlerConfig{
			BaseURL:       "http://localhost:3000",
			SessionMaxAge: 86400,
		},
		AccountService:   &mockAccountService{},
		ItineraryService: &mockItineraryService{},
		TripService:      &mockTripService{},
		FeedService:      &mockFeedService{},
		PaymentService:   &mockPaymentService{},
	})
}

func TestRouter_Health_OK(t *testing.T) {
	router := newTestRouter(&mockSessionFinder{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRouter_Metrics_Exposed(t *testing.T) {
	router := newTestRouter(&mockSessionFinder{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRouter_PublicFeed_NoSessionRequired(t *testing.T) {
	router := newTestRouter(&mockSessionFinder{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/feed", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRouter_GatedRoutes_RequireSession(t *testing.T) {
	router := newTestRouter(&mockSessionFinder{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/ulozit-profil"},
		{http.MethodPost, "/api/vylet"},
		{http.MethodGet, "/api/ulozene-vylety"},
		{http.MethodPost, "/api/ulozit-vylet"},
		{http.MethodDelete, "/api/smazat-vylet/trip-1"},
		{http.MethodPost, "/api/pridat-komentar"},
		{http.MethodPost, "/api/pridat-do-feedu"},
		{http.MethodDelete, "/api/smazat-feed/post-1"},
		{http.MethodPost, "/api/vytvorit-platbu"},
		{http.MethodGet, "/api/platba-potvrzeni"},
	}

	for _, rt := range routes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestRouter_ValidSession_ReachesHandler(t *testing.T) {
	sessions := &mockSessionFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			if id != "session-1" {
				t.Errorf("session id = %q, want session-1", id)
			}
			return &model.Session{
				ID:        "session-1",
				AccountID: "acc-1",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	router := newTestRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/ulozene-vylety", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRouter_CORSHeaders_OnAllowedOrigin(t *testing.T) {
	router := newTestRouter(&mockSessionFinder{})

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q", got)
	}
}
