package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/verona/verona/internal/model"
)

// --- モック定義 ---

type mockAuthService struct {
	getLoginURLFn       func(state string) string
	handleCallbackFn    func(ctx context.Context, code string) (*model.Session, error)
	logoutFn            func(ctx context.Context, sessionID string) error
	getCurrentAccountFn func(ctx context.Context, sessionID string) (*model.Account, error)
}

func (m *mockAuthService) GetLoginURL(state string) string {
	if m.getLoginURLFn != nil {
		return m.getLoginURLFn(state)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, code)
	}
	return &model.Session{ID: "session-1", AccountID: "acc-1"}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentAccount(ctx context.Context, sessionID string) (*model.Account, error) {
	if m.getCurrentAccountFn != nil {
		return m.getCurrentAccountFn(ctx, sessionID)
	}
	return nil, nil
}

func newTestAuthHandler(svc *mockAuthService) *AuthHandler {
	return NewAuthHandler(svc, AuthHandlerConfig{
		BaseURL:       "http://localhost:3000",
		SessionMaxAge: 86400,
	})
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- テスト ---

func TestLogin_RedirectsWithStateCookie(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", resp.StatusCode)
	}

	stateCookie := findCookie(resp, "oauth_state")
	if stateCookie == nil || stateCookie.Value == "" {
		t.Fatal("expected oauth_state cookie to be set")
	}
	if !stateCookie.HttpOnly {
		t.Error("state cookie must be HttpOnly")
	}

	location := resp.Header.Get("Location")
	if !strings.Contains(location, "state="+stateCookie.Value) {
		t.Errorf("redirect %q missing state from cookie", location)
	}
}

func TestCallback_Success_SetsSessionCookieAndRedirects(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/oauth2callback?code=auth-code&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	w := httptest.NewRecorder()

	h.Callback(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "http://localhost:3000" {
		t.Errorf("Location = %q, want app root", got)
	}

	sessionCookie := findCookie(resp, "session_id")
	if sessionCookie == nil || sessionCookie.Value != "session-1" {
		t.Fatalf("session cookie = %v, want session-1", sessionCookie)
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestCallback_StateMismatch_ShowsFailurePage(t *testing.T) {
	svc := &mockAuthService{
		handleCallbackFn: func(ctx context.Context, code string) (*model.Session, error) {
			t.Fatal("HandleCallback must not be called on state mismatch")
			return nil, nil
		},
	}
	h := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/oauth2callback?code=c&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	w := httptest.NewRecorder()

	h.Callback(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Přihlášení se nezdařilo") {
		t.Errorf("expected generic failure page, got %q", w.Body.String())
	}
}

func TestCallback_ExchangeFails_ShowsGenericFailurePage(t *testing.T) {
	svc := &mockAuthService{
		handleCallbackFn: func(ctx context.Context, code string) (*model.Session, error) {
			return nil, model.NewUnauthorizedError()
		},
	}
	h := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/oauth2callback?code=bad&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	w := httptest.NewRecorder()

	h.Callback(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	// 失敗理由の詳細はページに含めない
	if strings.Contains(w.Body.String(), "UNAUTHORIZED") {
		t.Error("failure page must not leak error details")
	}
}

func TestStatus_NoSession_ReportsLoggedOut(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	h.Status(w, httptest.NewRequest(http.MethodGet, "/api/auth-status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["loggedIn"] != false {
		t.Errorf("loggedIn = %v, want false", body["loggedIn"])
	}
	if _, ok := body["profile"]; ok {
		t.Error("logged-out status must not include a profile")
	}
}

func TestStatus_ValidSession_ReturnsProfile(t *testing.T) {
	svc := &mockAuthService{
		getCurrentAccountFn: func(ctx context.Context, sessionID string) (*model.Account, error) {
			if sessionID != "session-1" {
				t.Errorf("sessionID = %q, want session-1", sessionID)
			}
			return &model.Account{ID: "acc-1", Email: "user@example.com", IsPremium: true}, nil
		},
	}
	h := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth-status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	w := httptest.NewRecorder()

	h.Status(w, req)

	body := decodeBody(t, w)
	if body["loggedIn"] != true {
		t.Fatalf("loggedIn = %v, want true", body["loggedIn"])
	}
	profile, ok := body["profile"].(map[string]any)
	if !ok || profile["email"] != "user@example.com" {
		t.Errorf("profile = %v", body["profile"])
	}
	if profile["isPremium"] != true {
		t.Errorf("isPremium = %v, want true", profile["isPremium"])
	}
}

func TestLogout_ClearsSessionCookie(t *testing.T) {
	var loggedOut string
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := newTestAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-1"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if loggedOut != "session-1" {
		t.Errorf("logged out session = %q, want session-1", loggedOut)
	}

	cleared := findCookie(w.Result(), "session_id")
	if cleared == nil || cleared.MaxAge != -1 {
		t.Error("expected session cookie to be cleared")
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}
