// Package auth 用户认证：JWT 会话令牌、cookie 管理、HTTP 中间件
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie 会话 cookie 名称
const SessionCookie = "session"

// contextKey context 键类型
type contextKey string

const ctxKeySession contextKey = "session"

// Config 认证配置
type Config struct {
	// JWTSecret 签发会话令牌的服务端密钥
	JWTSecret string
}

// Session 从会话令牌解析出的身份
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Claims JWT 声明：{email, userId}
type Claims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

// GenerateToken 签发会话令牌
// 不设置过期时间——会话由 cookie 生命周期控制，登出时覆写失效
func GenerateToken(cfg Config, userID, email string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Email:  email,
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken 解析并验证会话令牌
func ParseToken(cfg Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ============================================================================
// Cookie
// ============================================================================

// SetSessionCookie 写入会话 cookie
// 不带 Expires 属性，即浏览器会话级 cookie
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSessionCookie 用已过期的 Expires 覆写会话 cookie，立即失效
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithSession 将会话身份注入 context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFrom 从 context 获取会话身份；未认证时返回 nil
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKeySession).(*Session)
	return s
}
