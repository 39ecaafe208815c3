package auth

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testCfg = Config{JWTSecret: "test-secret"}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testCfg, "648e10c5453611c8d3c4dc11", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := ParseToken(testCfg, token)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}
	if claims.UserID != "648e10c5453611c8d3c4dc11" {
		t.Errorf("got userId %q", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("got email %q", claims.Email)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testCfg, "id", "test@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if _, err := ParseToken(Config{JWTSecret: "other-secret"}, token); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken(testCfg, "not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

// 登录 cookie 不带 Expires（会话级），登出 cookie 的 Expires 必须在过去
func TestSessionCookieLifecycle(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, "some-token")

	header := w.Header().Get("Set-Cookie")
	if header == "" {
		t.Fatal("expected Set-Cookie header")
	}
	if strings.Contains(strings.ToLower(header), "expires=") {
		t.Errorf("login cookie must not carry Expires: %q", header)
	}
	if !strings.Contains(header, "HttpOnly") {
		t.Errorf("cookie must be HttpOnly: %q", header)
	}

	w = httptest.NewRecorder()
	ClearSessionCookie(w)
	res := w.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if !cookies[0].Expires.Before(time.Now()) {
		t.Errorf("logout cookie Expires must be in the past: %v", cookies[0].Expires)
	}
}
