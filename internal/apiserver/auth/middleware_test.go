package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func identified(t *testing.T, cookie string) *Session {
	t.Helper()
	var got *Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFrom(r.Context())
	})

	r := httptest.NewRequest("GET", "/api/auth/current-user", nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	Identify(testCfg)(next).ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestIdentify(t *testing.T) {
	token, err := GenerateToken(testCfg, "648e10c5453611c8d3c4dc11", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if s := identified(t, token); s == nil || s.UserID != "648e10c5453611c8d3c4dc11" {
		t.Errorf("valid token should establish session, got %+v", s)
	}
	// 无 cookie 和坏令牌都放行，只是不建立身份
	if s := identified(t, ""); s != nil {
		t.Errorf("no cookie should leave session empty, got %+v", s)
	}
	if s := identified(t, "garbage-token"); s != nil {
		t.Errorf("invalid token should leave session empty, got %+v", s)
	}
}

func TestRequireAuth(t *testing.T) {
	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/api/users", nil))
	if called {
		t.Error("handler must not run without a session")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authorized") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	r := httptest.NewRequest("GET", "/api/users", nil)
	r = r.WithContext(WithSession(r.Context(), &Session{UserID: "id", Email: "a@b.com"}))
	w = httptest.NewRecorder()
	handler(w, r)
	if !called {
		t.Error("handler should run with a session present")
	}
}
